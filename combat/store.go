package combat

import "github.com/yohamta/donburi"

// Store keeps projectile entities in insertion order. Removing an entity
// while Each is running adjusts the cursor so no element is skipped or
// visited twice.
type Store struct {
	order     []donburi.Entity
	cursor    int
	iterating bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends e. Entities added during Each are visited in the same pass.
func (st *Store) Add(e donburi.Entity) {
	st.order = append(st.order, e)
}

func (st *Store) Len() int {
	return len(st.order)
}

// Entities returns a copy of the current order.
func (st *Store) Entities() []donburi.Entity {
	out := make([]donburi.Entity, len(st.order))
	copy(out, st.order)
	return out
}

// Contains reports whether e is stored.
func (st *Store) Contains(e donburi.Entity) bool {
	return st.indexOf(e) >= 0
}

// Remove drops e, reporting whether it was present.
func (st *Store) Remove(e donburi.Entity) bool {
	i := st.indexOf(e)
	if i < 0 {
		return false
	}
	st.removeIndex(i)
	return true
}

// Each calls fn for every entity in order. Returning false removes the
// entity. fn may add or remove other entities.
func (st *Store) Each(fn func(e donburi.Entity) bool) {
	if st.iterating {
		// Nested passes walk a snapshot instead of sharing the cursor.
		for _, e := range st.Entities() {
			if !fn(e) {
				st.Remove(e)
			}
		}
		return
	}
	st.iterating = true
	defer func() { st.iterating = false }()
	for st.cursor = 0; st.cursor < len(st.order); st.cursor++ {
		e := st.order[st.cursor]
		if !fn(e) {
			// fn may already have removed e itself.
			if st.cursor >= 0 && st.cursor < len(st.order) && st.order[st.cursor] == e {
				st.removeIndex(st.cursor)
			}
		}
	}
}

// Clear empties the store.
func (st *Store) Clear() {
	st.order = st.order[:0]
	if st.iterating {
		st.cursor = -1
	}
}

func (st *Store) indexOf(e donburi.Entity) int {
	for i, o := range st.order {
		if o == e {
			return i
		}
	}
	return -1
}

func (st *Store) removeIndex(i int) {
	st.order = append(st.order[:i], st.order[i+1:]...)
	if st.iterating && i <= st.cursor {
		st.cursor--
	}
}
