package combat

import (
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/yohamta/donburi"
)

func makeEntities(n int) (donburi.World, []donburi.Entity) {
	w := donburi.NewWorld()
	out := make([]donburi.Entity, n)
	for i := range out {
		out[i] = w.Create(components.Projectile)
	}
	return w, out
}

func TestStoreEachRemovesRejected(t *testing.T) {
	_, es := makeEntities(5)
	st := NewStore()
	for _, e := range es {
		st.Add(e)
	}

	var visited []donburi.Entity
	st.Each(func(e donburi.Entity) bool {
		visited = append(visited, e)
		return e != es[1] && e != es[3]
	})
	if len(visited) != 5 {
		t.Fatalf("expected 5 visits, got %d", len(visited))
	}
	if st.Len() != 3 || st.Contains(es[1]) || st.Contains(es[3]) {
		t.Fatalf("expected es[1] and es[3] removed, have %v", st.Entities())
	}
}

func TestStoreRemoveDuringEach(t *testing.T) {
	_, es := makeEntities(5)
	st := NewStore()
	for _, e := range es {
		st.Add(e)
	}

	seen := map[donburi.Entity]int{}
	st.Each(func(e donburi.Entity) bool {
		seen[e]++
		switch e {
		case es[2]:
			// drop one behind the cursor and one ahead of it
			st.Remove(es[0])
			st.Remove(es[4])
		case es[3]:
			st.Remove(es[3])
			return false
		}
		return true
	})

	for _, e := range es[1:4] {
		if seen[e] != 1 {
			t.Fatalf("entity %v visited %d times", e, seen[e])
		}
	}
	if seen[es[4]] != 0 {
		t.Fatalf("removed entity should not be visited")
	}
	got := st.Entities()
	if len(got) != 2 || got[0] != es[1] || got[1] != es[2] {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestStoreAddDuringEach(t *testing.T) {
	_, es := makeEntities(3)
	st := NewStore()
	st.Add(es[0])

	var visited []donburi.Entity
	st.Each(func(e donburi.Entity) bool {
		visited = append(visited, e)
		if e == es[0] {
			st.Add(es[1])
			st.Add(es[2])
		}
		return true
	})
	if len(visited) != 3 || visited[2] != es[2] {
		t.Fatalf("expected appended entities visited in the same pass, got %v", visited)
	}
}

func TestStoreClearDuringEach(t *testing.T) {
	_, es := makeEntities(4)
	st := NewStore()
	for _, e := range es {
		st.Add(e)
	}
	n := 0
	st.Each(func(e donburi.Entity) bool {
		n++
		st.Clear()
		return true
	})
	if n != 1 || st.Len() != 0 {
		t.Fatalf("expected one visit and an empty store, got %d visits and %d left", n, st.Len())
	}
}
