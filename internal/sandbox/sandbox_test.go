package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-sandbox/internal/budget"
	"physics-sandbox/internal/collider"
	"physics-sandbox/internal/rescache"
	"physics-sandbox/internal/sim"
)

// recordingObserver captures lifecycle notifications.
type recordingObserver struct {
	admitted []sim.Entity
	evicted  [][]string
	shapes   []string
	degraded []bool
}

func (r *recordingObserver) EntityAdmitted(e sim.Entity) {
	r.admitted = append(r.admitted, e)
}

func (r *recordingObserver) EntitiesEvicted(ids []string) {
	r.evicted = append(r.evicted, ids)
}

func (r *recordingObserver) ShapeDerived(source string, degraded bool, reason string) {
	r.shapes = append(r.shapes, source)
	r.degraded = append(r.degraded, degraded)
}

func newTestSandbox(obs sim.Observer) *Sandbox {
	return New(Options{Observer: obs})
}

func TestSpawnSphereCeiling(t *testing.T) {
	s := newTestSandbox(nil)
	for i := 0; i < 25; i++ {
		_, err := s.SpawnSphere(0.5)
		require.NoError(t, err)
	}
	require.Equal(t, 25, s.Store().Len())

	_, err := s.SpawnSphere(0.5)
	var limitErr *budget.LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, sim.CategorySphere, limitErr.Category)
	// Denial is all-or-nothing: population unchanged.
	assert.Equal(t, 25, s.Store().Len())
}

func TestSpawnNeverExceedsGlobalCeiling(t *testing.T) {
	s := newTestSandbox(nil)
	for i := 0; i < 40; i++ {
		s.SpawnSphere(0.5)
		s.SpawnBox(1, 1, 1)
		require.LessOrEqual(t, s.Store().Len(), s.Limits().GlobalMax)
	}
	assert.Equal(t, s.Limits().GlobalMax, s.Store().Len())
}

func TestSpawnCreatesPhysicsBody(t *testing.T) {
	s := newTestSandbox(nil)
	e, err := s.SpawnBox(2, 1, 3)
	require.NoError(t, err)
	body, ok := s.bodies[e.ID]
	require.True(t, ok)
	assert.Equal(t, [3]float32{2, 1, 3}, body.Extents)
	assert.Equal(t, e.Position, body.Position)
}

func TestSpawnNotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSandbox(obs)
	e, err := s.SpawnSphere(0.7)
	require.NoError(t, err)
	require.Len(t, obs.admitted, 1)
	assert.Equal(t, e.ID, obs.admitted[0].ID)
}

func TestResetClearsStoreAndCache(t *testing.T) {
	s := newTestSandbox(nil)
	for i := 0; i < 10; i++ {
		_, err := s.SpawnBox(1, 1, 1)
		require.NoError(t, err)
	}
	// Seed some cache entries the way the renderer would.
	s.Cache().GetOrCreate("box-1.000x1.000x1.000", fakeFactory())
	s.Cache().GetOrCreate("sphere-r0.500", fakeFactory())
	s.Cache().GetOrCreate("mat-6a9ccdff", fakeFactory())
	s.Cache().GetOrCreate("mat-cd8555ff", fakeFactory())
	require.Equal(t, 4, s.Cache().Len())

	s.Reset()

	assert.Zero(t, s.Store().Len())
	assert.Empty(t, s.bodies)
	for kind, n := range s.Cache().Stats() {
		assert.Zero(t, n, "cache kind %s must be empty after reset", kind)
	}
	// The floor survives as the only body, so new spawns land on ground.
	assert.Equal(t, 1, s.world.Len())
}

func TestResetSuspendsStepping(t *testing.T) {
	s := newTestSandbox(nil)
	e, err := s.SpawnSphere(0.5)
	require.NoError(t, err)
	s.Reset()
	// Within the grace window Step must not touch physics. Respawn and
	// check the new body does not integrate.
	e2, err := s.SpawnSphere(0.5)
	require.NoError(t, err)
	before := s.bodies[e2.ID].Position
	s.Step(0.1)
	assert.Equal(t, before, s.bodies[e2.ID].Position)
	_ = e
}

func TestEvictionSweepRemovesOldestFirst(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSandbox(obs)
	var order []string
	for i := 0; i < 45; i++ {
		var e sim.Entity
		var err error
		if i%2 == 0 {
			e, err = s.SpawnSphere(0.5)
		} else {
			e, err = s.SpawnBox(1, 1, 1)
		}
		require.NoError(t, err)
		order = append(order, e.ID)
	}
	require.True(t, s.mgr.NeedsCleanup(s.Store().Snapshot()))

	s.maybeEvict()

	// Down to one below the threshold, oldest spawn gone, newest alive.
	assert.Equal(t, 44, s.Store().Len())
	require.Len(t, obs.evicted, 1)
	assert.Contains(t, obs.evicted[0], order[0])
	ids := make(map[string]bool)
	for _, e := range s.Store().Snapshot() {
		ids[e.ID] = true
	}
	assert.False(t, ids[order[0]])
	assert.True(t, ids[order[len(order)-1]])
}

func TestDeriveShapePolicyFallsBackAndNotifies(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSandbox(obs)
	empty := &collider.Node{Transform: collider.Identity()}

	desc := s.deriveShape("empty.glb", empty, collider.KindConvexApprox, [3]float32{1, 1, 1})

	require.NotNil(t, desc)
	assert.Equal(t, collider.KindBox, desc.Kind)
	assert.True(t, collider.Validate(desc))
	require.Len(t, obs.shapes, 1)
	assert.True(t, obs.degraded[0])
}

func TestBodyExtentsDowngradesConvexToBounds(t *testing.T) {
	desc := &collider.Descriptor{
		Kind: collider.KindConvexApprox,
		Points: []float32{
			-1, 0, -2,
			1, 0, 2,
			0, 3, 0,
			1, 1, 1,
		},
	}
	ext := bodyExtents(desc, [3]float32{2, 1, 1})
	assert.InDelta(t, 4.0, ext[0], 1e-5) // (1 - -1) * 2
	assert.InDelta(t, 3.0, ext[1], 1e-5)
	assert.InDelta(t, 4.0, ext[2], 1e-5)
}

func TestBodyExtentsClampsDegenerateCloud(t *testing.T) {
	desc := &collider.Descriptor{Kind: collider.KindConvexApprox, Points: nil}
	ext := bodyExtents(desc, [3]float32{1, 1, 1})
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(collider.MinDimension), ext[i])
	}
}

// fakeFactory returns a factory producing a no-op resource.
func fakeFactory() func() rescache.Resource {
	return func() rescache.Resource { return nopResource{} }
}

type nopResource struct{}

func (nopResource) Release() {}
