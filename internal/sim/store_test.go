package sim

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityWithID(id string, c Category) Entity {
	return Entity{
		ID:        id,
		Category:  c,
		Position:  [3]float32{0, 8, 0},
		CreatedAt: time.Now(),
	}
}

func TestInsertAndSnapshot(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(entityWithID(fmt.Sprintf("e%d", i), CategoryBox)))
	}
	require.Equal(t, 5, s.Len())

	snap := s.Snapshot()
	require.Len(t, snap, 5)
	// Insertion order preserved, and the snapshot is a copy.
	assert.Equal(t, "e0", snap[0].ID)
	snap[0].ID = "mutated"
	assert.Equal(t, "e0", s.Snapshot()[0].ID)
}

func TestInsertDuplicateIDRejected(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(entityWithID("dup", CategorySphere)))
	err := s.Insert(entityWithID("dup", CategoryBox))
	require.ErrorIs(t, err, ErrDuplicateID)
	// The reject leaves the store unchanged: one entity, original category.
	require.Equal(t, 1, s.Len())
	assert.Equal(t, CategorySphere, s.Snapshot()[0].Category)
}

func TestRemoveMany(t *testing.T) {
	s := NewStore()
	for i := 0; i < 6; i++ {
		require.NoError(t, s.Insert(entityWithID(fmt.Sprintf("e%d", i), CategorySphere)))
	}
	s.RemoveMany([]string{"e1", "e4", "nope"})
	require.Equal(t, 4, s.Len())
	var ids []string
	for _, e := range s.Snapshot() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e0", "e2", "e3", "e5"}, ids)

	// Removed ids are insertable again (the id set shrank too).
	require.NoError(t, s.Insert(entityWithID("e1", CategoryBox)))
}

func TestRemoveManyEmptyInput(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(entityWithID("e0", CategorySphere)))
	s.RemoveMany(nil)
	assert.Equal(t, 1, s.Len())
}

func TestResetAllRunsHooksAfterClearing(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(entityWithID("e0", CategorySphere)))

	var sizeDuringHook int
	order := []string{}
	s.OnReset(func() {
		sizeDuringHook = s.Len()
		order = append(order, "first")
	})
	s.OnReset(func() { order = append(order, "second") })

	s.ResetAll()

	assert.Zero(t, s.Len())
	assert.Zero(t, sizeDuringHook, "hooks must observe an already-empty store")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCountByCategory(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(entityWithID("s1", CategorySphere)))
	require.NoError(t, s.Insert(entityWithID("s2", CategorySphere)))
	require.NoError(t, s.Insert(entityWithID("b1", CategoryBox)))
	assert.Equal(t, 2, s.CountByCategory(CategorySphere))
	assert.Equal(t, 1, s.CountByCategory(CategoryBox))
	assert.Zero(t, s.CountByCategory(CategoryImportedModel))
}

func TestUpdatePosition(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Insert(entityWithID("e0", CategoryBox)))
	s.UpdatePosition("e0", [3]float32{1, 2, 3})
	s.UpdatePosition("ghost", [3]float32{9, 9, 9})
	assert.Equal(t, [3]float32{1, 2, 3}, s.Snapshot()[0].Position)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := ParseCategory("Sphere") // normalization is exact, no aliasing
	assert.False(t, ok)
}
