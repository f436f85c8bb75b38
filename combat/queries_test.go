package combat

import (
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
)

func TestRemoteRocketIsCosmetic(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 3, 0, 0, catalog.GunRocket)

	s.HandleRemoteShoot(messages.ShootEvent{
		Shooter: 3,
		ID:      77,
		Attack:  catalog.AttackRocket1,
		From:    messages.EncodeVec(gamemath.Vec3{0, 0, 14}),
		To:      messages.EncodeVec(gamemath.Vec3{400, 0, 14}),
	})
	views := s.Projectiles()
	if len(views) != 1 {
		t.Fatalf("expected one mirrored rocket, got %d", len(views))
	}
	v := views[0]
	if v.Local || v.ID != 77 || v.Owner != shooter.Entity() || v.Kind != catalog.KindRocket {
		t.Fatalf("unexpected mirrored rocket %+v", v)
	}

	lights := s.CollectDynamicLightSources()
	if len(lights) != 1 || lights[0].Radius != 50 {
		t.Fatalf("expected one rocket light of radius 50, got %+v", lights)
	}
	obstacles := s.CollectAvoidanceObstacles(4)
	exprad := catalog.AttackRocket1.Info().ExpRadius
	if len(obstacles) != 1 || obstacles[0].Radius != 4+exprad {
		t.Fatalf("unexpected obstacles %+v", obstacles)
	}
	models := s.Models()
	if len(models) != 1 || models[0].Name != "projectile/rocket" {
		t.Fatalf("unexpected models %+v", models)
	}
}

func TestRemoteShootFromUnknownClient(t *testing.T) {
	s := newTestSim(Options{})
	s.HandleRemoteShoot(messages.ShootEvent{Shooter: 9, Attack: catalog.AttackRocket1})
	if len(s.Projectiles()) != 0 {
		t.Fatalf("a shot from an unknown client must be ignored")
	}
}

func TestPreloadAssetReferences(t *testing.T) {
	refs := PreloadAssetReferences()
	seen := map[string]bool{}
	for _, r := range refs {
		if seen[r] {
			t.Fatalf("duplicate reference %q", r)
		}
		seen[r] = true
	}
	for _, want := range []string{"projectile/rocket", "projectile/eject/03", "projectile/gib/gib05"} {
		if !seen[want] {
			t.Fatalf("expected %q in %v", want, refs)
		}
	}
}

func TestUpdateRecoilDecays(t *testing.T) {
	s := newTestSim(Options{})
	e := spawnAt(s, 0, 0, 0, catalog.GunRail)
	components.Combatant.Get(e).PitchRecoil = 5

	s.UpdateRecoil(100)
	if p := components.Body.Get(e).Pitch; p != 1 {
		t.Fatalf("expected pitch 1 after 100ms, got %v", p)
	}
	if r := components.Combatant.Get(e).PitchRecoil; r != 4 {
		t.Fatalf("expected 4 recoil left, got %v", r)
	}
}

func TestWeaponSwitchSkipsEmptyGuns(t *testing.T) {
	s := newTestSim(Options{})
	e := spawnAt(s, 0, 0, 0, catalog.GunScatter)
	c := components.Combatant.Get(e)
	c.Ammo[catalog.GunScatter] = 0
	s.TickProjectiles(200)

	if !s.WeaponSwitch(e.Entity()) {
		t.Fatalf("expected a switch")
	}
	if c.Gun == catalog.GunScatter || !c.HasAmmo(c.Gun) {
		t.Fatalf("expected a loaded gun, got %v", c.Gun)
	}
}

func TestEveryGrenadeGlows(t *testing.T) {
	s := newTestSim(Options{})
	a := spawnAt(s, 1, 0, 0, catalog.GunGrenade)
	for _, atk := range []catalog.Attack{catalog.AttackGrenade1, catalog.AttackGrenade2, catalog.AttackRocket2} {
		info := atk.Info()
		s.SpawnProjectile(a.Entity(), gamemath.Vec3{0, 0, 14}, gamemath.Vec3{100, 0, 14}, true, 0,
			atk, info.Projectile, info.Lifetime, info.ProjSpeed, info.Gravity, info.Elasticity)
	}

	lights := s.CollectDynamicLightSources()
	if len(lights) != 2 {
		t.Fatalf("expected both grenades and no bouncing rocket to glow, got %+v", lights)
	}
	for _, l := range lights {
		if l.Radius != 8 || l.Color != (gamemath.Vec3{0.25, 0.25, 1}) {
			t.Fatalf("unexpected grenade light %+v", l)
		}
	}
}
