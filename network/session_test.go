package network

import (
	"os"
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netcomponents"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

func joinedSession(t *testing.T) *Session {
	t.Helper()
	arena, err := leveldata.LoadArena(os.DirFS("../shared/leveldata/testdata"), "arena.tmx")
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}
	c := NewClient()
	c.accept(messages.JoinAccepted{ClientNum: 1, Multiplayer: true})
	return NewSession(c, arena, 1)
}

func TestSessionFollowsActors(t *testing.T) {
	s := joinedSession(t)
	if !s.Simulation().Rules().Multiplayer {
		t.Fatalf("expected the host's rules")
	}

	s.applyActor(netcomponents.NetActorData{X: 10, Y: 20, Z: 16, ClientNum: 0, State: netconfig.StateAlive, Health: 100, Gun: int(catalog.GunScatter)})
	s.applyActor(netcomponents.NetActorData{X: 50, Y: 20, Z: 16, ClientNum: 1, State: netconfig.StateAlive, Health: 100, Gun: int(catalog.GunScatter)})
	self := s.Self()
	if self == nil || components.Combatant.Get(self).ClientNum != 1 {
		t.Fatalf("expected client 1 to be the local actor")
	}

	s.applyActor(netcomponents.NetActorData{X: 12, Y: 20, Z: 16, ClientNum: 0, State: netconfig.StateDead, Health: 0, LifeSequence: 2, Gun: int(catalog.GunRocket)})
	other := s.Simulation().ActorByClient(0)
	c := components.Combatant.Get(other)
	if c.State != netconfig.StateDead || c.LifeSequence != 2 || c.Gun != catalog.GunRocket {
		t.Fatalf("expected the snapshot to update client 0, got %+v", c)
	}
	if x := components.Body.Get(other).Pos.X(); x != 12 {
		t.Fatalf("expected x 12, got %v", x)
	}
}

func TestSessionDropsActorsMissingFromSnapshot(t *testing.T) {
	s := joinedSession(t)
	s.applyActor(netcomponents.NetActorData{ClientNum: 0, State: netconfig.StateAlive, Health: 100})
	s.applySnapshot(esync.WorldSnapshot{})
	if s.Simulation().ActorByClient(0) != nil || len(s.actors) != 0 {
		t.Fatalf("expected stale actors to be removed")
	}
}

func TestFireBeforeSnapshotIsIgnored(t *testing.T) {
	s := joinedSession(t)
	if err := s.Fire(catalog.ActPrimary, s.target); err != nil {
		t.Fatalf("expected no error without a local actor, got %v", err)
	}
	if s.seq != 0 {
		t.Fatalf("nothing should be sent before the first snapshot")
	}
}
