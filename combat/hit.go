package combat

import (
	"math"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// intersecting tests the segment from->to against the body cylinder grown
// by margin.
func intersecting(b *components.BodyData, from, to gamemath.Vec3, margin float64) (float64, bool) {
	bottom := gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() - b.EyeHeight - margin}
	top := gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() + b.AboveEye + margin}
	return gamemath.SegmentCylinder(from, to, bottom, top, b.Radius+margin)
}

// IntersectClosest returns the live actor the segment from->to meets
// first, and where along the segment, skipping exclude.
func (s *Simulation) IntersectClosest(from, to gamemath.Vec3, exclude *donburi.Entry, margin float64) (*donburi.Entry, float64, bool) {
	var best *donburi.Entry
	bestDist := math.Inf(1)
	for _, e := range s.actorSnapshot() {
		if exclude != nil && e.Entity() == exclude.Entity() {
			continue
		}
		if !components.Combatant.Get(e).Alive() {
			continue
		}
		t, ok := intersecting(components.Body.Get(e), from, to, margin)
		if ok && t < bestDist {
			best, bestDist = e, t
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}

// IsHeadHit reports whether from->to passes through the head.
func IsHeadHit(b *components.BodyData, from, to gamemath.Vec3) bool {
	bottom := b.HeadPoint()
	top := bottom.Add(gamemath.Vec3{0, 0, b.HeadRadius})
	_, ok := gamemath.SegmentCylinder(from, to, bottom, top, b.HeadRadius)
	return ok
}

// IsLegsHit reports whether from->to passes through the legs.
func IsLegsHit(b *components.BodyData, from, to gamemath.Vec3) bool {
	bottom := b.Feet()
	top := gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() - b.EyeHeight/2.5}
	_, ok := gamemath.SegmentCylinder(from, to, bottom, top, b.LegsRadius)
	return ok
}

type rayTally struct {
	target *donburi.Entry
	count  int
	head   bool
	legs   bool
	end    gamemath.Vec3
}

// Hitscan settles an instant shot. Multi-ray attacks use rays, one end
// point per ray; each struck target takes one combined hit.
func (s *Simulation) Hitscan(from, to gamemath.Vec3, actor *donburi.Entry, atk catalog.Attack, rays []gamemath.Vec3) {
	info, ok := catalog.LookupAttack(atk)
	if !ok {
		return
	}
	if info.Rays > 1 && len(rays) > 0 {
		s.hitscanRays(from, to, actor, atk, info, rays)
		return
	}

	if !s.rules.BetweenRounds {
		if target, t, ok := s.IntersectClosest(from, to, actor, info.Margin); ok {
			body := components.Body.Get(target)
			head, legs := IsHeadHit(body, from, to), IsLegsHit(body, from, to)
			end := gamemath.Shorten(from, to, t)
			s.impactEffects(atk, actor, from, end, true)

			flags := catalog.HitTorso
			if info.HeadshotDamage > 0 {
				switch {
				case head:
					flags = catalog.HitHead
				case legs:
					flags = catalog.HitLegs
				}
			}
			damage := s.CalcDamage(info.Damage, target, actor, atk, flags)
			s.calcPush(damage, target, actor, from, to, atk, 1, flags)
			s.DamageEffect(damage, target, end, atk, flags&catalog.HitHead != 0)
			if actor.Entity() == s.observed && atk.IsMelee() {
				b := components.Body.Get(actor)
				b.Roll = gamemath.Clamp(b.Roll+float64(damage)/2, -config.Actor.MaxRoll, config.Actor.MaxRoll)
			}
			return
		}
	}
	s.impactEffects(atk, actor, from, to, false)
}

func (s *Simulation) hitscanRays(from, to gamemath.Vec3, actor *donburi.Entry, atk catalog.Attack, info catalog.AttackDefinition, rays []gamemath.Vec3) {
	var tallies []*rayTally
	for _, ray := range rays {
		if s.rules.BetweenRounds {
			s.impactEffects(atk, actor, from, ray, false)
			continue
		}
		target, t, ok := s.IntersectClosest(from, ray, actor, info.Margin)
		if !ok {
			s.impactEffects(atk, actor, from, ray, false)
			continue
		}
		end := gamemath.Shorten(from, ray, t)
		s.impactEffects(atk, actor, from, end, true)

		var tally *rayTally
		for _, r := range tallies {
			if r.target.Entity() == target.Entity() {
				tally = r
				break
			}
		}
		if tally == nil {
			tally = &rayTally{target: target, end: end}
			tallies = append(tallies, tally)
		}
		body := components.Body.Get(target)
		tally.count++
		tally.head = tally.head || IsHeadHit(body, from, ray)
		tally.legs = tally.legs || IsLegsHit(body, from, ray)
	}
	if s.rules.BetweenRounds {
		return
	}

	for _, r := range tallies {
		flags := catalog.HitTorso
		if info.HeadshotDamage > 0 {
			if r.head {
				flags |= catalog.HitHead
			}
			if r.legs {
				flags |= catalog.HitLegs
			}
		}
		damage := s.CalcDamage(info.Damage, r.target, actor, atk, flags)
		s.calcPush(damage*r.count, r.target, actor, from, to, atk, r.count, flags)
		s.DamageEffect(damage, r.target, r.end, atk, r.head)
	}
}

func (s *Simulation) calcPush(damage int, target, actor *donburi.Entry, from, to gamemath.Vec3, atk catalog.Attack, rays, flags int) {
	if s.rules.BetweenRounds {
		return
	}
	vel := gamemath.Normalize(to.Sub(from))
	s.ApplyHit(damage, target, actor, vel, atk, gamemath.Dist(from, to), rays, flags)
}

// ResolveHit applies a hit and plays its damage effect at at.
func (s *Simulation) ResolveHit(damage int, target, actor *donburi.Entry, at, vel gamemath.Vec3, atk catalog.Attack, info1 float64, info2, flags int) {
	s.ApplyHit(damage, target, actor, vel, atk, info1, info2, flags)
	s.DamageEffect(damage, target, at, atk, flags&catalog.HitHead != 0)
}

// ApplyHit books damage from actor on target. Outside multiplayer the
// damage lands immediately; in multiplayer it becomes a HitRecord for the
// authority to settle.
func (s *Simulation) ApplyHit(damage int, target, actor *donburi.Entry, vel gamemath.Vec3, atk catalog.Attack, info1 float64, info2, flags int) {
	tc := components.Combatant.Get(target)
	ac := components.Combatant.Get(actor)
	self := target.Entity() == actor.Entity()

	if !tc.HasPowerup(netconfig.PowerupInvulnerable) || self {
		tc.LastPain = s.now
	}
	if !self && !s.isAlly(tc, ac) {
		ac.TotalDamage += damage
	}
	if actor.Entity() == s.self && !self && ac.LastHit != s.now {
		sound := catalog.SoundHitWeapon
		if s.isAlly(tc, ac) {
			sound = catalog.SoundHitAlly
		}
		s.fx.PlaySound(sound, nil, -1, false)
		ac.LastHit = s.now
	}

	if !tc.AI && (!s.rules.Multiplayer || self) {
		s.push(damage, target, self, vel, atk)
	}

	switch {
	case tc.AI:
		s.damageMonster(damage, target, actor)
		if tc.Health <= 0 {
			s.push(int(float64(damage)*config.Combat.MonsterDeadPush), target, self, vel, atk)
		} else {
			s.push(damage, target, self, vel, atk)
		}
	case !s.rules.Multiplayer:
		s.damageActor(damage, target, actor)
	default:
		rec := messages.HitRecord{
			Target:       tc.ClientNum,
			LifeSequence: tc.LifeSequence,
			Info1:        messages.EncodeDistance(info1),
			Info2:        info2,
			Flags:        flags,
		}
		if !self {
			rec.Dir = messages.EncodeDir(vel)
		}
		s.hits = append(s.hits, rec)
	}
}

func (s *Simulation) push(damage int, target *donburi.Entry, self bool, vel gamemath.Vec3, atk catalog.Attack) {
	info := atk.Info()
	body := components.Body.Get(target)
	weight := body.Weight
	if weight <= 0 {
		weight = config.Actor.Weight
	}
	scale := 1.0
	if self && info.ExpRadius > 0 {
		scale = config.Combat.SelfPushScale
	}
	body.Vel = body.Vel.Add(vel.Mul(scale * info.HitPush * float64(damage) / weight))
}

// DamageEffect plays the cosmetic reaction of target taking damage at at.
func (s *Simulation) DamageEffect(damage int, target *donburi.Entry, at gamemath.Vec3, atk catalog.Attack, headshot bool) {
	tc := components.Combatant.Get(target)
	body := components.Body.Get(target)
	pos := at
	if target.Entity() == s.observed {
		pos[2] += 0.6*(body.EyeHeight+body.AboveEye) - body.EyeHeight
	}

	invulnerable := tc.HasPowerup(netconfig.PowerupInvulnerable)
	if invulnerable || tc.Shield > 0 {
		s.fx.Splash(PartSpark, pos, 100, 0x50CFE5, 0.5, 150)
		if invulnerable {
			s.fx.PlaySound(catalog.SoundInvulnerable, &pos, -1, false)
			return
		}
	}
	s.fx.Splash(PartBlood, pos, max(damage/10, 1), 0x60FFFF, 2.96, 800)

	if tc.Health > 0 && s.now-tc.LastYelp > config.Combat.YelpInterval {
		if target.Entity() != s.observed && tc.Shield > 0 {
			s.fx.PlaySound(catalog.SoundShieldHit, &pos, -1, false)
		}
		pain := catalog.SoundPain
		if tc.AI {
			pain = catalog.SoundPainAI
		}
		s.fx.PlaySound(pain, &pos, -1, false)
		tc.LastYelp = s.now
	}

	switch {
	case !atk.Valid():
		s.fx.PlaySound(catalog.SoundPain, &pos, -1, false)
	case headshot:
		s.fx.PlaySound(catalog.SoundHeadshot, &pos, -1, false)
	default:
		s.fx.PlaySound(atk.Info().HitSound, &pos, -1, false)
	}
	if tc.HasPowerup(netconfig.PowerupArmour) {
		s.fx.PlaySound(catalog.SoundArmourHit, &pos, -1, false)
	}
}
