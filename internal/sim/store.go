package sim

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Insert when an entity with the same id is
// already stored. Ids are generated fresh per admission, so hitting this is
// a programming error, not a user-facing condition.
var ErrDuplicateID = errors.New("duplicate entity id")

// CleanupHook runs during ResetAll, after the store is emptied. Used to
// dispose the resource cache and clear physics bodies so the reset is
// observed as one step.
type CleanupHook func()

// Store is the ordered collection of live entities and the only mutation
// point for spawn, removal, and reset.
type Store struct {
	entities []Entity
	ids      map[string]struct{}
	hooks    []CleanupHook
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// OnReset registers a cleanup hook to run on ResetAll. Hooks run in
// registration order.
func (s *Store) OnReset(hook CleanupHook) {
	s.hooks = append(s.hooks, hook)
}

// Insert appends the entity. A duplicate id is rejected with ErrDuplicateID
// and leaves the store unchanged.
func (s *Store) Insert(e Entity) error {
	if _, exists := s.ids[e.ID]; exists {
		return fmt.Errorf("insert %s: %w", e.ID, ErrDuplicateID)
	}
	s.ids[e.ID] = struct{}{}
	s.entities = append(s.entities, e)
	return nil
}

// RemoveMany removes every entity whose id is in ids. Unknown ids are
// ignored. Relative order of survivors is preserved.
func (s *Store) RemoveMany(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.entities[:0]
	for _, e := range s.entities {
		if _, gone := drop[e.ID]; gone {
			delete(s.ids, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.entities = kept
}

// ResetAll empties the store, then runs the registered cleanup hooks so
// caches and physics state are torn down before the next spawn request is
// processed.
func (s *Store) ResetAll() {
	s.entities = nil
	s.ids = make(map[string]struct{})
	for _, hook := range s.hooks {
		hook()
	}
}

// Snapshot returns an ordered copy of the live entities for the renderer
// and physics adapter. Mutating the copy does not affect the store.
func (s *Store) Snapshot() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// CountByCategory returns the number of live entities of the category.
func (s *Store) CountByCategory(c Category) int {
	n := 0
	for _, e := range s.entities {
		if e.Category == c {
			n++
		}
	}
	return n
}

// UpdatePosition writes back a physics-owned position for the entity. The
// physics adapter is the only caller.
func (s *Store) UpdatePosition(id string, pos [3]float32) {
	for i := range s.entities {
		if s.entities[i].ID == id {
			s.entities[i].Position = pos
			return
		}
	}
}
