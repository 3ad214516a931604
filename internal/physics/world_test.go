package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepAppliesGravity(t *testing.T) {
	w := NewWorld()
	b := NewBody([3]float32{0, 10, 0}, [3]float32{1, 1, 1}, 1, false)
	w.Add(b)
	w.Step(0.1)
	assert.Less(t, b.Position[1], float32(10))
	assert.Less(t, b.Velocity[1], float32(0))
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld()
	floor := NewBody([3]float32{0, -0.5, 0}, [3]float32{100, 1, 100}, 1, true)
	w.Add(floor)
	for i := 0; i < 10; i++ {
		w.Step(0.1)
	}
	assert.Equal(t, [3]float32{0, -0.5, 0}, floor.Position)
}

func TestDynamicBodyComesToRestOnFloor(t *testing.T) {
	w := NewWorld()
	floor := NewBody([3]float32{0, -0.5, 0}, [3]float32{100, 1, 100}, 1, true)
	box := NewBody([3]float32{0, 3, 0}, [3]float32{1, 1, 1}, 1, false)
	w.Add(floor)
	w.Add(box)
	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60.0)
	}
	// Resting on the floor: center at half extent above Y=0.
	assert.InDelta(t, 0.5, box.Position[1], 0.1)
	assert.InDelta(t, 0, box.Velocity[1], 0.5)
}

func TestRemoveAndClear(t *testing.T) {
	w := NewWorld()
	a := NewBody([3]float32{0, 0, 0}, [3]float32{1, 1, 1}, 1, false)
	b := NewBody([3]float32{5, 0, 0}, [3]float32{1, 1, 1}, 1, false)
	w.Add(a)
	w.Add(b)
	require.Equal(t, 2, w.Len())
	w.Remove(a)
	assert.Equal(t, 1, w.Len())
	w.Remove(a) // unknown body is a no-op
	assert.Equal(t, 1, w.Len())
	w.Clear()
	assert.Zero(t, w.Len())
}

func TestNewBodyClampsBadInputs(t *testing.T) {
	b := NewBody([3]float32{0, 0, 0}, [3]float32{0, -1, 2}, -5, false)
	assert.Equal(t, float32(1), b.Mass)
	assert.Equal(t, [3]float32{1, 1, 2}, b.Extents)
}
