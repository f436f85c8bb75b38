package combat

import (
	"testing"

	"github.com/automoto/ordnance/combat/mocks"
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"go.uber.org/mock/gomock"
)

func TestSelectGunAnnouncesAndThrottles(t *testing.T) {
	ctrl := gomock.NewController(t)
	net := mocks.NewMockNetwork(ctrl)
	net.EXPECT().SendGunSelect(messages.GunSelectEvent{Actor: 1, Gun: catalog.GunRail}).Times(1)

	s := newTestSim(Options{Network: net})
	a := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	s.TickProjectiles(500)

	if !s.SelectGun(a.Entity(), catalog.GunRail) {
		t.Fatalf("expected switch to rail")
	}
	if s.SelectGun(a.Entity(), catalog.GunRocket) {
		t.Fatalf("a second switch inside the delay must be ignored")
	}
	if got := components.Combatant.Get(a).Gun; got != catalog.GunRail {
		t.Fatalf("expected rail, got %v", got)
	}
}

func TestEmptyGunSwitchesAway(t *testing.T) {
	fx := &recordingFX{}
	s := newTestSim(Options{Presentation: fx})
	a := spawnAt(s, 1, 0, 0, catalog.GunRocket)
	s.SetSelf(a.Entity())
	s.TickProjectiles(500)

	c := components.Combatant.Get(a)
	c.Ammo[catalog.GunRocket] = 0
	c.Ammo[catalog.GunScatter] = 0
	c.Attacking = catalog.ActPrimary
	s.FireShot(a.Entity(), gamemath.Vec3{100, 0, 14})

	if c.Gun != catalog.GunSMG {
		t.Fatalf("expected a switch to the smg, got %v", c.Gun)
	}
	found := false
	for _, snd := range fx.sounds {
		found = found || snd == catalog.SoundNoAmmo
	}
	if !found {
		t.Fatalf("expected the no-ammo click")
	}
	if countKind(s, catalog.KindRocket) != 0 {
		t.Fatalf("an empty gun must not fire")
	}
}

func TestCycleWeaponSkipsEmpty(t *testing.T) {
	s := newTestSim(Options{})
	a := spawnAt(s, 1, 0, 0, catalog.GunScatter)
	s.TickProjectiles(500)

	c := components.Combatant.Get(a)
	c.Ammo[catalog.GunSMG] = 0
	if !s.CycleWeapon(a.Entity(), 1, false) || c.Gun != catalog.GunPulse {
		t.Fatalf("expected to skip the empty smg, got %v", c.Gun)
	}
}

func TestGunWaitBlocksRefire(t *testing.T) {
	s := newTestSim(Options{})
	a := spawnAt(s, 1, 0, 0, catalog.GunRocket)
	c := components.Combatant.Get(a)

	c.Attacking = catalog.ActPrimary
	s.FireShot(a.Entity(), gamemath.Vec3{500, 0, 14})
	if c.Attacking != catalog.ActIdle {
		t.Fatalf("semi-automatic attacks release the trigger")
	}
	ammo := c.Ammo[catalog.GunRocket]

	c.Attacking = catalog.ActPrimary
	s.FireShot(a.Entity(), gamemath.Vec3{500, 0, 14})
	if got := countKind(s, catalog.KindRocket); got != 1 {
		t.Fatalf("expected one rocket while the gun cools down, got %d", got)
	}
	if c.Ammo[catalog.GunRocket] != ammo {
		t.Fatalf("a blocked shot must not spend ammo")
	}

	s.TickProjectiles(catalog.AttackRocket1.Info().AttackDelay)
	c.Attacking = catalog.ActPrimary
	s.FireShot(a.Entity(), gamemath.Vec3{500, 0, 14})
	if got := countKind(s, catalog.KindRocket); got != 2 {
		t.Fatalf("expected a second rocket after the delay, got %d", got)
	}
}
