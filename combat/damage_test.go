package combat

import (
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

func TestCalcDamageMonotoneAndPositive(t *testing.T) {
	s := newTestSim(Options{Rules: MatchRules{Teams: true}})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 2, 100, 0, catalog.GunPistol)

	setups := map[string]func(){
		"plain":  func() {},
		"armour": func() { components.Combatant.Get(target).Powerup = netconfig.PowerupArmour },
		"ally": func() {
			components.Combatant.Get(shooter).Team = 1
			components.Combatant.Get(target).Team = 1
		},
		"berserker": func() { components.Combatant.Get(shooter).Role = netconfig.RoleBerserker },
	}
	flagSets := []int{catalog.HitTorso, catalog.HitHead, catalog.HitLegs, catalog.HitMaterial}

	for name, setup := range setups {
		components.Combatant.Get(shooter).Team, components.Combatant.Get(target).Team = 0, 0
		components.Combatant.Get(shooter).Role = netconfig.RoleNone
		components.Combatant.Get(target).Powerup = netconfig.PowerupNone
		setup()
		for _, flags := range flagSets {
			prev := 0
			for d := 0; d <= 200; d++ {
				got := s.CalcDamage(d, target, shooter, catalog.AttackPistol1, flags)
				if got < 1 {
					t.Fatalf("%s flags %d: damage %d gave %d", name, flags, d, got)
				}
				if got < prev {
					t.Fatalf("%s flags %d: damage %d gave %d after %d", name, flags, d, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestCalcDamageModifiers(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 2, 100, 0, catalog.GunPistol)

	if got := s.CalcDamage(40, shooter, shooter, catalog.AttackRocket1, catalog.HitTorso); got != 20 {
		t.Fatalf("self damage should be halved, got %d", got)
	}
	components.Combatant.Get(shooter).Powerup = netconfig.PowerupDamage
	if got := s.CalcDamage(40, target, shooter, catalog.AttackRocket1, catalog.HitTorso); got != 80 {
		t.Fatalf("damage powerup should double, got %d", got)
	}
	components.Combatant.Get(target).Powerup = netconfig.PowerupInvulnerable
	if got := s.CalcDamage(40, target, shooter, catalog.AttackRocket1, catalog.HitTorso); got != 0 {
		t.Fatalf("invulnerable target took %d", got)
	}
}

func TestShieldSoaksHalf(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 2, 100, 0, catalog.GunPistol)
	tc := components.Combatant.Get(target)
	tc.Shield = 50

	s.ApplyHit(40, target, shooter, gamemath.Vec3{1, 0, 0}, catalog.AttackPistol1, 100, 1, catalog.HitTorso)
	if tc.Shield != 30 || tc.Health != 80 {
		t.Fatalf("expected shield 30 health 80, got %d/%d", tc.Shield, tc.Health)
	}
}

func TestMonsterTurnsOnAttacker(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	monster := s.SpawnActor(ActorOptions{ClientNum: 50, Pos: gamemath.Vec3{100, 0, 14}, AI: true})

	s.ApplyHit(10, monster, shooter, gamemath.Vec3{1, 0, 0}, catalog.AttackPistol1, 100, 1, catalog.HitTorso)
	mc := components.Combatant.Get(monster)
	if mc.Health != 90 || mc.Enemy != shooter.Entity() {
		t.Fatalf("expected monster at 90 hunting the shooter, got %d %v", mc.Health, mc.Enemy)
	}
}

func TestGibbingSpawnsGibs(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunRocket)
	target := spawnAt(s, 2, 100, 0, catalog.GunRocket)

	gibbed := false
	s.SetDeathHook(func(_, _ donburi.Entity, g bool) { gibbed = g })
	s.ApplyHit(200, target, shooter, gamemath.Vec3{1, 0, 0}, catalog.AttackRocket1, 0, 1, catalog.HitTorso)
	if !gibbed || countKind(s, catalog.KindGib) == 0 {
		t.Fatalf("expected gibs after a -100 health kill")
	}
}

func TestRadialDamageFalloff(t *testing.T) {
	const damage = 60
	exprad := catalog.AttackRocket1.Info().ExpRadius
	cases := []struct {
		name string
		dist float64
		want int
	}{
		{"touching", 0, damage},
		{"third of radius", exprad / 3, int(damage * (1 - exprad/3/1.5/exprad))},
		{"edge", exprad, 0},
		{"beyond", exprad + 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(Options{})
			shooter := spawnAt(s, 1, -500, 0, catalog.GunRocket)
			target := spawnAt(s, 2, 0, 0, catalog.GunPistol)
			components.Combatant.Get(target).Shield = 0

			b := components.Body.Get(target)
			b.Radius = 4
			mid := b.Middle()
			blast := gamemath.Vec3{mid.X() + b.Radius + tc.dist, mid.Y(), mid.Z()}
			s.ApplyRadialDamage(target, blast, gamemath.Vec3{}, damage, shooter, catalog.AttackRocket1, false)

			if got := 100 - health(target); got != tc.want {
				t.Fatalf("at distance %v expected %d damage, got %d", tc.dist, tc.want, got)
			}
		})
	}
}
