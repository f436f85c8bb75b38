package combat

import (
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/netconfig"
)

func TestScatterRaysCombineIntoOneHit(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunScatter)
	target := spawnAt(s, 2, 100, 0, catalog.GunScatter)

	from := gamemath.Vec3{0, 0, 10}
	rays := make([]gamemath.Vec3, 20)
	for i := range rays {
		if i < 5 {
			rays[i] = gamemath.Vec3{200, 0, 10}
			continue
		}
		rays[i] = gamemath.Vec3{200, 200 + float64(i), 10}
	}
	s.Hitscan(from, gamemath.Vec3{200, 0, 10}, shooter, catalog.AttackScatter1, rays)

	if h := health(target); h != 75 {
		t.Fatalf("expected 5 rays of 5 damage, health %d", h)
	}
	if got := components.Combatant.Get(shooter).TotalDamage; got != 25 {
		t.Fatalf("expected 25 total damage, got %d", got)
	}
}

func TestHitscanLocations(t *testing.T) {
	tests := []struct {
		name string
		z    float64
		want int
	}{
		{"head", 13.5, 100 - 35},
		{"torso", 10, 100 - 18},
		{"legs", 4, 100 - 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(Options{})
			shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
			target := spawnAt(s, 2, 100, 0, catalog.GunPistol)
			s.Hitscan(gamemath.Vec3{0, 0, tt.z}, gamemath.Vec3{200, 0, tt.z}, shooter, catalog.AttackPistol1, nil)
			if h := health(target); h != tt.want {
				t.Fatalf("expected health %d, got %d", tt.want, h)
			}
		})
	}
}

func TestMayhemHeadshotKills(t *testing.T) {
	s := newTestSim(Options{Rules: MatchRules{Mayhem: true}})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 2, 100, 0, catalog.GunPistol)
	s.Hitscan(gamemath.Vec3{0, 0, 13.5}, gamemath.Vec3{200, 0, 13.5}, shooter, catalog.AttackPistol1, nil)
	if c := components.Combatant.Get(target); c.State != netconfig.StateDead {
		t.Fatalf("expected a mayhem headshot to kill, health %d", c.Health)
	}
}

func TestMultiplayerHitsAreRecorded(t *testing.T) {
	s := newTestSim(Options{Rules: MatchRules{Multiplayer: true}})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 9, 100, 0, catalog.GunPistol)
	components.Combatant.Get(target).LifeSequence = 3

	s.Hitscan(gamemath.Vec3{0, 0, 10}, gamemath.Vec3{200, 0, 10}, shooter, catalog.AttackPistol1, nil)
	if health(target) != 100 {
		t.Fatalf("multiplayer hits must not apply locally")
	}
	hits := s.Hits()
	if len(hits) != 1 {
		t.Fatalf("expected one hit record, got %d", len(hits))
	}
	h := hits[0]
	if h.Target != 9 || h.LifeSequence != 3 || h.Info2 != 1 || h.Flags != catalog.HitTorso {
		t.Fatalf("unexpected record %+v", h)
	}
	if h.Dir == ([3]int{}) {
		t.Fatalf("expected a push direction on a hit against another actor")
	}
}

func TestBetweenRoundsDealsNoDamage(t *testing.T) {
	s := newTestSim(Options{Rules: MatchRules{BetweenRounds: true}})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	target := spawnAt(s, 2, 100, 0, catalog.GunPistol)
	s.Hitscan(gamemath.Vec3{0, 0, 10}, gamemath.Vec3{200, 0, 10}, shooter, catalog.AttackPistol1, nil)
	if health(target) != 100 {
		t.Fatalf("no damage between rounds")
	}
}

func TestIntersectClosestPicksNearest(t *testing.T) {
	s := newTestSim(Options{})
	shooter := spawnAt(s, 1, 0, 0, catalog.GunPistol)
	far := spawnAt(s, 2, 100, 0, catalog.GunPistol)
	near := spawnAt(s, 3, 50, 0, catalog.GunPistol)

	got, _, ok := s.IntersectClosest(gamemath.Vec3{0, 0, 10}, gamemath.Vec3{200, 0, 10}, shooter, 0)
	if !ok || got.Entity() != near.Entity() {
		t.Fatalf("expected the nearer actor")
	}
	components.Combatant.Get(near).State = netconfig.StateDead
	got, _, ok = s.IntersectClosest(gamemath.Vec3{0, 0, 10}, gamemath.Vec3{200, 0, 10}, shooter, 0)
	if !ok || got.Entity() != far.Entity() {
		t.Fatalf("dead actors should be skipped")
	}
}
