// Package budget gates entity creation: it enforces global and per-category
// population ceilings, assigns validated spawn positions, and selects
// eviction victims under population pressure.
package budget

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"physics-sandbox/internal/sim"
)

// Limits are the population ceilings. The global ceiling dominates: a
// category below its own ceiling is still rejected when the world is full.
type Limits struct {
	GlobalMax        int `yaml:"global_max"`
	MaxSpheres       int `yaml:"max_spheres"`
	MaxBoxes         int `yaml:"max_boxes"`
	MaxModels        int `yaml:"max_models"`
	CleanupThreshold int `yaml:"cleanup_threshold"`
}

// DefaultLimits returns the stock ceilings: 50 total, 25 spheres, 25 boxes,
// 10 models, cleanup at 45.
func DefaultLimits() Limits {
	return Limits{
		GlobalMax:        50,
		MaxSpheres:       25,
		MaxBoxes:         25,
		MaxModels:        10,
		CleanupThreshold: 45,
	}
}

// Normalize clamps nonsense values back to defaults so a bad config file
// cannot disable the ceilings.
func (l *Limits) Normalize() {
	def := DefaultLimits()
	if l.GlobalMax <= 0 {
		l.GlobalMax = def.GlobalMax
	}
	if l.MaxSpheres <= 0 {
		l.MaxSpheres = def.MaxSpheres
	}
	if l.MaxBoxes <= 0 {
		l.MaxBoxes = def.MaxBoxes
	}
	if l.MaxModels <= 0 {
		l.MaxModels = def.MaxModels
	}
	if l.CleanupThreshold <= 0 || l.CleanupThreshold > l.GlobalMax {
		l.CleanupThreshold = l.GlobalMax * def.CleanupThreshold / def.GlobalMax
	}
}

// Ceiling returns the per-category ceiling.
func (l Limits) Ceiling(c sim.Category) int {
	switch c {
	case sim.CategorySphere:
		return l.MaxSpheres
	case sim.CategoryBox:
		return l.MaxBoxes
	case sim.CategoryImportedModel:
		return l.MaxModels
	default:
		return 0
	}
}

// SpawnVolume is the axis-aligned box new entities are dropped into.
type SpawnVolume struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// DefaultSpawnVolume drops objects above the floor plane, centered on the
// origin.
func DefaultSpawnVolume() SpawnVolume {
	return SpawnVolume{
		Min: [3]float32{-6, 6, -6},
		Max: [3]float32{6, 14, 6},
	}
}

// safeFallbackPosition replaces a malformed spawn position.
var safeFallbackPosition = [3]float32{0, 8, 0}

// LimitError reports an admission denied by a population ceiling. Surfaced
// to the user as a hint, never fatal.
type LimitError struct {
	Category sim.Category
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("population limit reached for %s", e.Category)
}

// SpawnRequest carries the category and its creation-time attributes into
// Admit. Exactly one attribute pointer should match Category.
type SpawnRequest struct {
	Category sim.Category
	Sphere   *sim.SphereAttrs
	Box      *sim.BoxAttrs
	Model    *sim.ModelAttrs
}

// Manager decides admission and eviction. It holds no entity state itself;
// every check runs against the caller's current snapshot, re-deriving
// per-category counts by filtering (O(n), fine at ceilings of 50 — an
// incremental counter would pay off only at much larger populations).
type Manager struct {
	limits Limits
	volume SpawnVolume
	rng    *rand.Rand
	now    func() time.Time
	newID  func() string
	log    *zap.Logger
}

// New returns a manager with the given ceilings and spawn volume. A nil
// logger disables the invalid-position warning.
func New(limits Limits, volume SpawnVolume, log *zap.Logger) *Manager {
	limits.Normalize()
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		limits: limits,
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		newID:  uuid.NewString,
		log:    log,
	}
}

// Limits returns the active ceilings.
func (m *Manager) Limits() Limits {
	return m.limits
}

// CanAdmit reports whether one more entity of the category fits. Pure: no
// side effects on the manager or the input.
func (m *Manager) CanAdmit(entities []sim.Entity, category sim.Category) bool {
	if len(entities) >= m.limits.GlobalMax {
		return false
	}
	count := 0
	for _, e := range entities {
		if e.Category == category {
			count++
		}
	}
	return count < m.limits.Ceiling(category)
}

// NeedsCleanup reports whether the population crossed the soft threshold,
// signaling that proactive eviction should run before the hard ceiling
// starts blocking admissions.
func (m *Manager) NeedsCleanup(entities []sim.Entity) bool {
	return len(entities) >= m.limits.CleanupThreshold
}

// SelectEvictionCandidates returns the ids of the count oldest entities by
// CreatedAt, oldest first, ties broken by insertion order. The input is not
// mutated; an empty input yields an empty result.
func (m *Manager) SelectEvictionCandidates(entities []sim.Entity, count int) []string {
	if count <= 0 || len(entities) == 0 {
		return nil
	}
	byAge := make([]sim.Entity, len(entities))
	copy(byAge, entities)
	sort.SliceStable(byAge, func(i, j int) bool {
		return byAge[i].CreatedAt.Before(byAge[j].CreatedAt)
	})
	if count > len(byAge) {
		count = len(byAge)
	}
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = byAge[i].ID
	}
	return ids
}

// Admit runs the composed admission: ceiling check, fresh id, creation
// timestamp, and a validated random position inside the spawn volume. On
// denial it returns a LimitError and nothing is created, so the caller's
// store is untouched. A malformed generated position is replaced by the
// safe fallback and logged, never propagated.
func (m *Manager) Admit(entities []sim.Entity, req SpawnRequest) (sim.Entity, error) {
	if !m.CanAdmit(entities, req.Category) {
		return sim.Entity{}, &LimitError{Category: req.Category}
	}
	pos, valid := m.randomPosition()
	if !valid {
		m.log.Warn("invalid spawn position generated, using fallback",
			zap.String("category", req.Category.String()))
	}
	return sim.Entity{
		ID:        m.newID(),
		Category:  req.Category,
		Position:  pos,
		CreatedAt: m.now(),
		Sphere:    req.Sphere,
		Box:       req.Box,
		Model:     req.Model,
	}, nil
}

// randomPosition samples the spawn volume uniformly per axis. valid is
// false when any coordinate came out non-finite (degenerate volume bounds)
// and the fallback was substituted.
func (m *Manager) randomPosition() (pos [3]float32, valid bool) {
	for i := 0; i < 3; i++ {
		lo, hi := m.volume.Min[i], m.volume.Max[i]
		pos[i] = lo + m.rng.Float32()*(hi-lo)
		if math32.IsNaN(pos[i]) || math32.IsInf(pos[i], 0) {
			return safeFallbackPosition, false
		}
	}
	return pos, true
}
