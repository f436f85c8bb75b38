package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/yohamta/donburi"
)

// SpawnBouncer throws a piece of junk of kind out of from. Shell casings
// fly out to the owner's side; everything else scatters at random.
func (s *Simulation) SpawnBouncer(from gamemath.Vec3, owner donburi.Entity, kind catalog.Kind) donburi.Entity {
	cfg := config.Projectile
	to := gamemath.Vec3{
		float64(s.rng.IntN(100) - 50),
		float64(s.rng.IntN(100) - 50),
		float64(s.rng.IntN(100) - 50),
	}
	elasticity := cfg.JunkElasticity
	variant := -1
	if kind == catalog.KindEject {
		yaw := 0.0
		if e := s.entry(owner); e != nil && e.HasComponent(components.Body) {
			yaw = components.Body.Get(e).Yaw
			variant = ejectVariant(components.Combatant.Get(e).Gun)
		}
		to = gamemath.RotateZ(gamemath.Vec3{-50, 1, float64(s.rng.IntN(30) - 15)}, yaw)
		elasticity = cfg.EjectElasticity
	}
	if to == (gamemath.Vec3{}) {
		to[2]++
	}
	to = gamemath.Normalize(to).Add(from)

	lifetime := cfg.DebrisLifetime
	if kind != catalog.KindDebris {
		lifetime = cfg.JunkLifetimeMin + s.rng.Int64N(cfg.JunkLifetimeRange)
	}
	speed := cfg.JunkSpeedMin + s.rng.Float64()*cfg.JunkSpeedRange
	gravity := cfg.JunkGravityMin + s.rng.Float64()*cfg.JunkGravityRange
	e := s.SpawnProjectile(owner, from, to, true, 0, catalog.AttackInvalid, kind, lifetime, speed, gravity, elasticity)
	if entry := s.entry(e); entry != nil && variant >= 0 {
		components.Projectile.Get(entry).Variant = variant
	}
	return e
}

// gibEffect bursts a gibbed body into pieces.
func (s *Simulation) gibEffect(damage int, target *donburi.Entry) {
	body := components.Body.Get(target)
	from := body.Pos
	from[2] += body.AboveEye
	for range min(damage, 8) + 1 {
		s.SpawnBouncer(from, target.Entity(), catalog.KindGib)
	}
	s.fx.Splash(PartBlood, body.Pos, 60, 0x60FFFF, 3, 1000)
	s.fx.PlaySound(catalog.SoundGib, &from, -1, false)
}
