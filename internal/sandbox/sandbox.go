// Package sandbox wires the core together: the entity store, the budget
// manager, the resource cache, the shape deriver, and the embedded physics
// world. One Sandbox owns one scene's lifecycle; construct it explicitly
// and Dispose it when done — there is no package-level state.
package sandbox

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"physics-sandbox/internal/budget"
	"physics-sandbox/internal/collider"
	"physics-sandbox/internal/meshload"
	"physics-sandbox/internal/physics"
	"physics-sandbox/internal/rescache"
	"physics-sandbox/internal/sim"
)

// resetGrace is how long stepping stays suspended around a reset, so the
// physics world never steps a half-torn-down scene.
const resetGrace = 100 * time.Millisecond

// floorExtents is the static ground slab under the grid plane.
var floorExtents = [3]float32{100, 1, 100}

// Options configures a Sandbox. Zero-value fields fall back to defaults;
// Observer and Log are optional.
type Options struct {
	Limits      budget.Limits
	SpawnVolume budget.SpawnVolume
	Observer    sim.Observer
	Log         *zap.Logger
}

// Sandbox is the dependency-injected context owning all simulation state.
type Sandbox struct {
	store  *sim.Store
	mgr    *budget.Manager
	cache  *rescache.Cache
	world  *physics.World
	log    *zap.Logger
	obs    sim.Observer
	bodies map[string]*physics.Body

	pausedUntil time.Time
}

// New constructs a sandbox with an empty world and a static floor slab
// whose top face sits at Y=0 (the grid plane).
func New(opts Options) *Sandbox {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.SpawnVolume == (budget.SpawnVolume{}) {
		opts.SpawnVolume = budget.DefaultSpawnVolume()
	}
	s := &Sandbox{
		store:  sim.NewStore(),
		mgr:    budget.New(opts.Limits, opts.SpawnVolume, log),
		cache:  rescache.New(),
		world:  physics.NewWorld(),
		log:    log,
		obs:    opts.Observer,
		bodies: make(map[string]*physics.Body),
	}
	s.store.OnReset(s.cache.DisposeAll)
	s.store.OnReset(s.resetPhysics)
	s.addFloor()
	return s
}

// Store exposes the entity store for the adapters (snapshot reads only).
func (s *Sandbox) Store() *sim.Store {
	return s.store
}

// Cache exposes the shared resource cache for the rendering adapter.
func (s *Sandbox) Cache() *rescache.Cache {
	return s.cache
}

// Limits returns the active population ceilings.
func (s *Sandbox) Limits() budget.Limits {
	return s.mgr.Limits()
}

// SpawnSphere admits one sphere of the given radius (non-positive radius
// falls back to 0.5) at a random position in the spawn volume.
func (s *Sandbox) SpawnSphere(radius float32) (sim.Entity, error) {
	if radius <= 0 {
		radius = 0.5
	}
	req := budget.SpawnRequest{
		Category: sim.CategorySphere,
		Sphere:   &sim.SphereAttrs{Radius: radius},
	}
	d := radius * 2
	return s.spawn(req, [3]float32{d, d, d})
}

// SpawnBox admits one box of the given dimensions (non-positive dimensions
// fall back to 1).
func (s *Sandbox) SpawnBox(w, h, d float32) (sim.Entity, error) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if d <= 0 {
		d = 1
	}
	req := budget.SpawnRequest{
		Category: sim.CategoryBox,
		Box:      &sim.BoxAttrs{Width: w, Height: h, Depth: d},
	}
	return s.spawn(req, [3]float32{w, h, d})
}

// SpawnModel loads the model file (cached by path), derives its collision
// shape, and admits one imported-model entity. Derivation failures degrade
// to the unit box; only admission denial and a failed file load are
// returned as errors.
func (s *Sandbox) SpawnModel(path string, kind collider.Kind, scale float32) (sim.Entity, error) {
	if scale <= 0 {
		scale = 1
	}
	var loadErr error
	res := s.cache.GetOrCreate(rescache.ModelKey(path), func() rescache.Resource {
		lm, err := meshload.Load(path)
		if err != nil {
			loadErr = err
			return nil
		}
		return lm
	})
	if res == nil {
		if loadErr == nil {
			loadErr = fmt.Errorf("model %s: previous load failed", path)
		}
		return sim.Entity{}, loadErr
	}
	lm := res.(*meshload.LoadedModel)

	scaleVec := [3]float32{scale, scale, scale}
	desc := s.deriveShape(path, lm.Hierarchy, kind, scaleVec)

	req := budget.SpawnRequest{
		Category: sim.CategoryImportedModel,
		Model: &sim.ModelAttrs{
			Source:    path,
			Scale:     scaleVec,
			Collision: desc.Kind,
		},
	}
	return s.spawn(req, bodyExtents(desc, scaleVec))
}

// Reset tears the scene down as one step: empty the store, dispose the
// cache, clear and re-seed the physics world. Stepping is suspended for a
// short grace window so the plugin never observes partial state.
func (s *Sandbox) Reset() {
	s.store.ResetAll()
	s.bodies = make(map[string]*physics.Body)
	s.pausedUntil = time.Now().Add(resetGrace)
	s.log.Info("scene reset")
}

// Step advances physics by dt and writes simulated positions back into the
// store. No-op during the post-reset grace window.
func (s *Sandbox) Step(dt float32) {
	if time.Now().Before(s.pausedUntil) {
		return
	}
	s.maybeEvict()
	s.world.Step(dt)
	for id, body := range s.bodies {
		s.store.UpdatePosition(id, body.Position)
	}
}

// Dispose releases everything the sandbox owns.
func (s *Sandbox) Dispose() {
	s.store.ResetAll()
	s.bodies = nil
}

// spawn is the shared admission path: budget check, store insert, physics
// body creation, observer notification.
func (s *Sandbox) spawn(req budget.SpawnRequest, extents [3]float32) (sim.Entity, error) {
	snap := s.store.Snapshot()
	e, err := s.mgr.Admit(snap, req)
	if err != nil {
		s.log.Info("admission denied", zap.String("category", req.Category.String()))
		return sim.Entity{}, err
	}
	if err := s.store.Insert(e); err != nil {
		// Fresh uuids make this unreachable; treat as a logic error.
		s.log.Error("entity insert rejected", zap.String("id", e.ID), zap.Error(err))
		return sim.Entity{}, err
	}
	s.addBody(e, extents)
	if s.obs != nil {
		s.obs.EntityAdmitted(e)
	}
	s.log.Debug("entity admitted",
		zap.String("id", e.ID),
		zap.String("category", e.Category.String()),
		zap.Int("population", s.store.Len()))
	return e, nil
}

// maybeEvict runs the oldest-first eviction sweep once the population
// crosses the soft threshold, freeing headroom before the hard ceiling
// starts denying admissions.
func (s *Sandbox) maybeEvict() {
	snap := s.store.Snapshot()
	if !s.mgr.NeedsCleanup(snap) {
		return
	}
	excess := len(snap) - s.mgr.Limits().CleanupThreshold + 1
	ids := s.mgr.SelectEvictionCandidates(snap, excess)
	if len(ids) == 0 {
		return
	}
	s.store.RemoveMany(ids)
	s.removeBodies(ids)
	if s.obs != nil {
		s.obs.EntitiesEvicted(ids)
	}
	s.log.Info("evicted oldest entities", zap.Int("count", len(ids)), zap.Int("population", s.store.Len()))
}

// deriveShape runs the deriver and applies the graceful-degradation policy:
// a nil descriptor becomes the unit box, degraded results are reported to
// the observer and logged, never returned as errors.
func (s *Sandbox) deriveShape(source string, root *collider.Node, kind collider.Kind, scale [3]float32) *collider.Descriptor {
	result := collider.Derive(root, kind, scale)
	desc := result.Descriptor
	if desc == nil || !collider.Validate(desc) {
		desc = collider.DefaultBox()
		result.Degraded = true
		if result.Reason == "" {
			result.Reason = "invalid descriptor; using unit box"
		}
	}
	if s.obs != nil {
		s.obs.ShapeDerived(source, result.Degraded, result.Reason)
	}
	if result.Degraded {
		s.log.Warn("collision shape degraded",
			zap.String("source", source),
			zap.String("reason", result.Reason))
	} else {
		s.log.Debug("collision shape derived",
			zap.String("source", source),
			zap.String("kind", desc.Kind.String()))
	}
	return desc
}
