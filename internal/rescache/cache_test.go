package rescache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResource counts releases for disposal assertions.
type fakeResource struct {
	released int
}

func (f *fakeResource) Release() {
	f.released++
}

func TestGetOrCreateInvokesFactoryOnce(t *testing.T) {
	c := New()
	first := &fakeResource{}
	callsA, callsB := 0, 0

	gotA := c.GetOrCreate("box-1.000x1.000x1.000", func() Resource {
		callsA++
		return first
	})
	gotB := c.GetOrCreate("box-1.000x1.000x1.000", func() Resource {
		callsB++
		return &fakeResource{}
	})

	assert.Same(t, first, gotA)
	assert.Same(t, first, gotB)
	assert.Equal(t, 1, callsA)
	assert.Equal(t, 0, callsB, "second factory must never run for a cached key")
}

func TestGetOrCreateNilResultNotCached(t *testing.T) {
	c := New()
	calls := 0
	factory := func() Resource {
		calls++
		return nil
	}
	require.Nil(t, c.GetOrCreate("model-missing.glb", factory))
	require.Nil(t, c.GetOrCreate("model-missing.glb", factory))
	// A failed load retries instead of pinning nil.
	assert.Equal(t, 2, calls)
	assert.Zero(t, c.Len())
}

func TestDisposeAllReleasesAndClears(t *testing.T) {
	c := New()
	resources := []*fakeResource{{}, {}, {}}
	c.GetOrCreate("sphere-r0.500", func() Resource { return resources[0] })
	c.GetOrCreate("box-1.000x1.000x1.000", func() Resource { return resources[1] })
	c.GetOrCreate("mat-6a9ccdff", func() Resource { return resources[2] })
	require.Equal(t, 3, c.Len())

	c.DisposeAll()

	assert.Zero(t, c.Len())
	for _, r := range resources {
		assert.Equal(t, 1, r.released)
	}
	assert.Empty(t, c.Stats())
}

func TestStatsCountsPerKind(t *testing.T) {
	c := New()
	c.GetOrCreate("sphere-r0.500", func() Resource { return &fakeResource{} })
	c.GetOrCreate("sphere-r1.000", func() Resource { return &fakeResource{} })
	c.GetOrCreate("box-1.000x1.000x1.000", func() Resource { return &fakeResource{} })
	c.GetOrCreate("mat-6a9ccdff", func() Resource { return &fakeResource{} })

	stats := c.Stats()
	assert.Equal(t, 2, stats["sphere"])
	assert.Equal(t, 1, stats["box"])
	assert.Equal(t, 1, stats["mat"])
}

func TestKeysAreDeterministic(t *testing.T) {
	assert.Equal(t, SphereKey(0.5), SphereKey(0.5))
	assert.Equal(t, "sphere-r0.500", SphereKey(0.5))
	assert.Equal(t, BoxKey(1, 2, 3), BoxKey(1, 2, 3))
	assert.Equal(t, "box-1.000x2.000x3.000", BoxKey(1, 2, 3))
	assert.NotEqual(t, BoxKey(1, 2, 3), BoxKey(3, 2, 1))
	assert.Equal(t, "mat-ff00007f", MaterialKey("mat", 255, 0, 0, 127))
	assert.Equal(t, "model-assets/crate.glb", ModelKey("assets/crate.glb"))
}
