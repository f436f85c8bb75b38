package combat

import (
	"math"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/yohamta/donburi"
)

// projectileDistance is the gap between the explosion at v and the body's
// vertical segment, and the push direction away from it.
func projectileDistance(b *components.BodyData, v, vel gamemath.Vec3) (float64, gamemath.Vec3) {
	middle := b.Middle()
	dir := gamemath.Normalize(middle.Sub(v).Add(vel.Mul(5)))
	low := math.Min(b.Pos.Z()-b.EyeHeight+b.Radius, middle.Z())
	high := math.Max(b.Pos.Z()+b.AboveEye-b.Radius, middle.Z())
	closest := gamemath.ClosestOnVertical(b.Pos, low, high, v)
	return math.Max(gamemath.Dist(closest, v)-b.Radius, 0), dir
}

// ExplodeProjectile detonates the projectile in entry at pos. Cosmetics
// always play; damage is only dealt for local projectiles outside of round
// breaks. safe is spared from splash damage.
func (s *Simulation) ExplodeProjectile(entry *donburi.Entry, pos gamemath.Vec3, safe donburi.Entity, damage int, local bool) {
	p := components.Projectile.Get(entry)
	at := pos
	mark := pos
	if !p.Has(catalog.FlagLinear) {
		at = p.Pos
		mark = p.OffsetPos()
	}
	s.scorch(p.Vel, mark, p.Attack)
	owner := s.entry(p.Owner)
	s.explosionEffects(owner, p.Attack, at)

	if s.rules.BetweenRounds || !local || owner == nil {
		return
	}
	s.splashDamage(owner, p.Attack, at, p.Vel, safe, damage, p.Direct)
}

func (s *Simulation) splashDamage(owner *donburi.Entry, atk catalog.Attack, at, vel gamemath.Vec3, safe donburi.Entity, damage int, direct bool) {
	exprad := atk.Info().ExpRadius
	near := s.broad.Near(at, exprad)
	for _, target := range s.actorSnapshot() {
		te := target.Entity()
		if _, ok := near[te]; !ok || te == safe {
			continue
		}
		body := components.Body.Get(target)
		if gamemath.Reject(body.Pos, at, body.Radius+exprad) {
			continue
		}
		s.ApplyRadialDamage(target, at, vel, damage, owner, atk, direct)
	}
}

// ApplyRadialDamage hurts target by damage scaled down linearly with its
// distance from pos.
func (s *Simulation) ApplyRadialDamage(target *donburi.Entry, pos, vel gamemath.Vec3, damage int, actor *donburi.Entry, atk catalog.Attack, direct bool) {
	if !components.Combatant.Get(target).Alive() {
		return
	}
	body := components.Body.Get(target)
	exprad := atk.Info().ExpRadius
	dist, dir := projectileDistance(body, pos, vel)
	if dist >= exprad {
		return
	}
	scaled := int(float64(damage) * (1 - dist/config.Combat.DistanceScale/exprad))
	flags := catalog.HitTorso
	if direct {
		flags |= catalog.HitDirect
	}
	dealt := s.CalcDamage(scaled, target, actor, atk, flags)
	s.ResolveHit(dealt, target, actor, body.Pos, dir, atk, dist, 1, flags)
}

// ExplodeEffects mirrors a remote projectile's detonation: the matching
// bolt explodes cosmetically and is removed. Unknown ids are ignored.
func (s *Simulation) ExplodeEffects(owner *donburi.Entry, atk catalog.Attack, id int64) {
	if owner == nil || !atk.IsExplosive() {
		return
	}
	for _, e := range s.store.Entities() {
		entry := s.entry(e)
		if entry == nil {
			continue
		}
		p := components.Projectile.Get(entry)
		if p.Owner != owner.Entity() || p.ID != id || p.Local {
			continue
		}
		if atk == catalog.AttackPistolCombo {
			p.Attack = atk
		} else if p.Attack != atk {
			continue
		}
		s.ExplodeProjectile(entry, p.OffsetPos(), donburi.Null, 0, false)
		s.removeProjectile(e)
		return
	}
	s.verbosef("no projectile %d for %s from client %d", id, atk, components.Combatant.Get(owner).ClientNum)
}

// DetonateAt sets off atk at pos without a projectile, for hitscan
// attacks that carry a blast.
func (s *Simulation) DetonateAt(pos gamemath.Vec3, actor *donburi.Entry, atk catalog.Attack) {
	info, ok := catalog.LookupAttack(atk)
	if !ok || info.ExpRadius <= 0 {
		return
	}
	s.scorch(gamemath.Vec3{0, 0, -1}, pos, atk)
	s.explosionEffects(actor, atk, pos)
	if s.rules.BetweenRounds || actor == nil {
		return
	}
	s.splashDamage(actor, atk, pos, gamemath.Vec3{}, donburi.Null, info.Damage, false)
}
