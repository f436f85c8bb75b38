package network

import (
	"errors"
	"testing"

	"github.com/automoto/ordnance/combat"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/yohamta/donburi"
)

func TestPushDropsWhenFull(t *testing.T) {
	ch := make(chan int, 2)
	if !push(ch, 1) || !push(ch, 2) {
		t.Fatalf("expected the first two pushes to queue")
	}
	if push(ch, 3) {
		t.Fatalf("expected a full queue to drop")
	}
	got := drainChan(ch)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected drain %v", got)
	}
	if len(drainChan(ch)) != 0 {
		t.Fatalf("expected an empty queue after draining")
	}
}

func TestSendBeforeConnect(t *testing.T) {
	c := NewClient()
	if err := c.SendMessage(messages.GunSelectEvent{}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	// Network callbacks from the simulation must not panic while offline.
	c.SendShoot(messages.ShootEvent{})
	c.SendExplode(messages.ExplodeEvent{})
	c.SendGunSelect(messages.GunSelectEvent{})
	if c.ClientNum() != -1 {
		t.Fatalf("expected no client number before joining, got %d", c.ClientNum())
	}
}

func TestAcceptStoresSession(t *testing.T) {
	c := NewClient()
	c.accept(messages.JoinAccepted{
		ClientNum:   4,
		MatchID:     "m-1",
		Level:       "arena",
		TickRate:    30,
		Multiplayer: true,
		Teams:       true,
	})
	if c.State() != StateJoinedGame || c.ClientNum() != 4 || c.Level() != "arena" || c.MatchID() != "m-1" {
		t.Fatalf("unexpected session state")
	}
	if r := c.Rules(); !r.Multiplayer || !r.Teams || r.Mayhem {
		t.Fatalf("unexpected rules %+v", r)
	}
}

func TestMirrorSkipsOwnEvents(t *testing.T) {
	sim := combat.NewSimulation(donburi.NewWorld(), combat.Options{})
	me := sim.SpawnActor(combat.ActorOptions{ClientNum: 1, Gun: catalog.GunScatter})
	other := sim.SpawnActor(combat.ActorOptions{ClientNum: 2, Pos: gamemath.Vec3{40, 0, 14}, Gun: catalog.GunScatter})
	sim.SetSelf(me.Entity())

	c := NewClient()
	c.accept(messages.JoinAccepted{ClientNum: 1})
	push(c.selectCh, messages.GunSelectEvent{Actor: 1, Gun: catalog.GunRail})
	push(c.selectCh, messages.GunSelectEvent{Actor: 2, Gun: catalog.GunRocket})
	push(c.explodeCh, messages.ExplodeEvent{Shooter: 2, Attack: catalog.AttackRocket1, ProjectileID: 99})

	c.Mirror(sim)

	if g := components.Combatant.Get(me).Gun; g != catalog.GunScatter {
		t.Fatalf("expected own gun select to be skipped, got %v", g)
	}
	if g := components.Combatant.Get(other).Gun; g != catalog.GunRocket {
		t.Fatalf("expected remote gun select to apply, got %v", g)
	}
	if sim.Store().Len() != 0 {
		t.Fatalf("expected no projectiles, got %d", sim.Store().Len())
	}
	if len(c.DrainGunSelectEvents()) != 0 {
		t.Fatalf("expected Mirror to drain the queues")
	}
}
