package combat

import (
	"math"
	"testing"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/yohamta/donburi"
)

// wallPhysics is open space with a single wall across +Y at wallY.
type wallPhysics struct {
	openSpace
	wallY float64
}

func (w wallPhysics) RayCube(from, dir gamemath.Vec3, maxDist float64) float64 {
	if dir.Y() <= 0 || from.Y() >= w.wallY {
		return maxDist
	}
	return math.Min((w.wallY-from.Y())/dir.Y(), maxDist)
}

// bouncyPhysics reports several bounces on every integration step.
type bouncyPhysics struct{ openSpace }

func (p bouncyPhysics) IsBouncing(b Bouncer, secs, e, wf, g float64) bool {
	p.openSpace.IsBouncing(b, secs, e, wf, g)
	for range 3 {
		b.Bounced(gamemath.Vec3{0, 0, 1})
	}
	return true
}

func (p bouncyPhysics) HasBounced(b Bouncer, secs, e, wf, g float64) bool {
	p.IsBouncing(b, secs, e, wf, g)
	return false
}

type recordingFX struct {
	nopPresentation
	fireballs int
	sounds    []catalog.Sound
}

func (r *recordingFX) Fireball(Particle, gamemath.Vec3, uint32, float64, int) {
	r.fireballs++
}

func (r *recordingFX) PlaySound(s catalog.Sound, _ *gamemath.Vec3, channel int, _ bool) int {
	r.sounds = append(r.sounds, s)
	return channel
}

func newTestSim(opts Options) *Simulation {
	return NewSimulation(donburi.NewWorld(), opts)
}

func spawnAt(s *Simulation, cn int, x, y float64, gun catalog.Gun) *donburi.Entry {
	return s.SpawnActor(ActorOptions{
		ClientNum: cn,
		Pos:       gamemath.Vec3{x, y, 14},
		Gun:       gun,
	})
}

func countKind(s *Simulation, k catalog.Kind) int {
	n := 0
	for _, p := range s.Projectiles() {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func health(e *donburi.Entry) int {
	return components.Combatant.Get(e).Health
}

func TestNewSimulationDefaults(t *testing.T) {
	s := newTestSim(Options{})
	if s.Now() != 0 || s.Store().Len() != 0 {
		t.Fatalf("expected empty simulation at t=0")
	}
	a := spawnAt(s, 3, 0, 0, catalog.GunRocket)
	c := components.Combatant.Get(a)
	if c.Health != 100 || !c.Alive() || c.Ammo[catalog.GunRocket] != 50 {
		t.Fatalf("unexpected spawn state %+v", c)
	}
	if got := s.ActorByClient(3); got == nil || got.Entity() != a.Entity() {
		t.Fatalf("expected to find actor by client number")
	}
	s.RemoveActor(a.Entity())
	if s.ActorByClient(3) != nil {
		t.Fatalf("expected actor to be gone")
	}
}

func TestSpawnProjectileRejectsInvalidInput(t *testing.T) {
	s := newTestSim(Options{})
	a := spawnAt(s, 0, 0, 0, catalog.GunRocket)
	to := gamemath.Vec3{100, 0, 14}

	if e := s.SpawnProjectile(a.Entity(), components.Body.Get(a).Pos, to, true, 0, catalog.AttackRocket1, catalog.NumKinds, 1000, 300, 0, 0); e != donburi.Null {
		t.Fatalf("expected null for an invalid kind")
	}
	if e := s.SpawnProjectile(donburi.Null, gamemath.Vec3{}, to, true, 0, catalog.AttackRocket1, catalog.KindRocket, 1000, 300, 0, 0); e != donburi.Null {
		t.Fatalf("expected null for a missing owner")
	}
	if s.Store().Len() != 0 {
		t.Fatalf("nothing should have been stored")
	}
}
