package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// FireShot fires the actor's current attack from its eye toward target.
// It does nothing while the gun is still cooling down or the trigger is
// released.
func (s *Simulation) FireShot(actor donburi.Entity, target gamemath.Vec3) {
	entry := s.entry(actor)
	if entry == nil {
		return
	}
	c := components.Combatant.Get(entry)
	b := components.Body.Get(entry)
	if !c.Alive() {
		return
	}

	prevAction := c.LastAction
	if s.now-prevAction < c.GunWait {
		return
	}
	c.GunWait = 0
	if c.Attacking == catalog.ActIdle {
		return
	}
	atk := c.Gun.Attack(c.Attacking)
	info, ok := catalog.LookupAttack(atk)
	if !ok {
		return
	}
	c.LastAction = s.now
	c.LastAttack = atk

	if !s.canShoot(c, b, atk, info) {
		if actor == s.self {
			s.fx.PlaySound(catalog.SoundNoAmmo, nil, -1, false)
			c.GunWait = config.Combat.NoAmmoWait
			c.LastAttack = catalog.AttackInvalid
			if !c.HasAmmo(c.Gun) {
				s.WeaponSwitch(actor)
			}
		}
		return
	}
	if !c.HasPowerup(netconfig.PowerupAmmo) && c.Gun.Valid() {
		c.Ammo[c.Gun] = max(c.Ammo[c.Gun]-info.Use, 0)
	}

	s.broad.Sync(s.world)
	from := b.Pos
	to := target
	dir := gamemath.Normalize(to.Sub(from))
	dist := gamemath.Dist(from, to)

	kick := info.Kick
	if c.HasPowerup(netconfig.PowerupDamage) {
		kick *= 2
	}
	if kick != 0 && !(c.OnSlope && c.Crouching) {
		b.Vel = b.Vel.Add(dir.Mul(kick * config.Combat.KickScale))
	}

	short := 0.0
	if info.Range > 0 && dist > info.Range {
		short = info.Range
	}
	if barrier := s.physics.RayCube(from, dir, dist); barrier > 0 && barrier < dist && (short == 0 || barrier < short) {
		short = barrier
	}
	if short > 0 {
		to = from.Add(dir.Mul(short))
	}

	var rays []gamemath.Vec3
	if info.Rays > 1 {
		rays = make([]gamemath.Vec3, min(info.Rays, config.Combat.MaxRays))
		for i := range rays {
			rays[i] = s.offsetRay(from, to, info, c)
		}
	} else if info.Spread > 0 {
		to = s.offsetRay(from, to, info, c)
	}

	s.hits = s.hits[:0]
	if !catalog.IsWeaponKind(info.Projectile) {
		combo := info.Gun == catalog.GunPistol && s.ResolvePlasmaCombo(from, to, entry, atk)
		if !combo {
			s.Hitscan(from, to, entry, atk, rays)
			if info.ExpRadius > 0 {
				s.DetonateAt(to, entry, atk)
			}
		}
	}

	s.shotEffects(atk, from, to, entry, true, 0, prevAction, rays)

	if s.authored(entry) {
		s.net.SendShoot(messages.ShootEvent{
			Shooter: c.ClientNum,
			ID:      s.now,
			Attack:  atk,
			From:    messages.EncodeVec(from),
			To:      messages.EncodeVec(to),
			Hits:    s.Hits(),
		})
	}

	if !info.FullAuto {
		c.Attacking = catalog.ActIdle
	}
	wait := info.AttackDelay
	if c.HasPowerup(netconfig.PowerupHaste) || c.Berserker() {
		wait /= 2
	}
	if c.AI && info.Gun == catalog.GunPistol {
		skill := gamemath.ClampInt(c.Skill, 0, 100)
		wait += wait * int64(101-skill+s.rng.IntN(111-skill)) / 100
	}
	c.GunWait = wait
	c.TotalShots += info.Damage * info.Rays
	c.PitchRecoil = kick * config.Combat.RecoilKick
}

func (s *Simulation) canShoot(c *components.CombatantData, b *components.BodyData, atk catalog.Attack, info catalog.AttackDefinition) bool {
	if !atk.IsMelee() && (!c.Gun.Valid() || c.Ammo[c.Gun] < info.Use) {
		return false
	}
	if catalog.IsWeaponKind(info.Projectile) && info.Projectile.Has(catalog.FlagQuench) &&
		s.physics.Material(b.Pos).Volume() == leveldata.MatWater {
		return false
	}
	return true
}

// offsetRay scatters the shot inside the attack's spread cone and clips it
// against geometry within range.
func (s *Simulation) offsetRay(from, to gamemath.Vec3, info catalog.AttackDefinition, c *components.CombatantData) gamemath.Vec3 {
	dest := gamemath.SpreadOffset(s.rng, from, to, info.Spread, c.Crouching)
	dir := gamemath.Normalize(dest.Sub(from))
	if dir == (gamemath.Vec3{}) {
		return dest
	}
	return from.Add(dir.Mul(s.physics.RayCube(from, dir, info.Range)))
}

// gunOrigin is where shots visually leave the actor's gun.
func (s *Simulation) gunOrigin(actor *donburi.Entry, from, to gamemath.Vec3) gamemath.Vec3 {
	c := components.Combatant.Get(actor)
	if c.HasMuzzle {
		return c.Muzzle
	}
	b := components.Body.Get(actor)
	if actor.Entity() != s.observed || s.rules.ThirdPerson {
		front := gamemath.VecFromYawPitch(b.Yaw, b.Pitch, 1, 0).Mul(b.Radius)
		right := gamemath.VecFromYawPitch(b.Yaw, 0, 0, -1).Mul(0.5 * b.Radius)
		offset := from.Add(front)
		offset[2] += (b.AboveEye+b.EyeHeight)*0.75 - b.EyeHeight
		return offset.Add(right).Add(front)
	}
	offset := from.Add(gamemath.Normalize(to.Sub(from)).Mul(2))
	offset[2]--
	return offset
}

// shotEffects plays the muzzle, tracer and projectile side of a shot. For
// remote shots it also draws the impacts the shooter saw.
func (s *Simulation) shotEffects(atk catalog.Attack, from, to gamemath.Vec3, actor *donburi.Entry, local bool, id int64, prevAction int64, rays []gamemath.Vec3) {
	info, ok := catalog.LookupAttack(atk)
	if !ok {
		return
	}
	c := components.Combatant.Get(actor)
	b := components.Body.Get(actor)

	if info.Rays > 1 && len(rays) == 0 {
		rays = make([]gamemath.Vec3, min(info.Rays, config.Combat.MaxRays))
		for i := range rays {
			rays[i] = s.offsetRay(from, to, info, c)
		}
	}

	if style, ok := muzzleStyles[atk]; ok {
		if c.HasMuzzle {
			s.fx.Flare(PartMuzzleFlash, c.Muzzle, c.Muzzle, style.flash, style.flashSize, 80)
			if style.light > 0 {
				s.fx.Light(s.gunOrigin(actor, b.Pos, to), style.light, style.lightColor, 110)
			}
		}
		if style.eject && actor.Entity() == s.observed {
			s.SpawnBouncer(s.gunOrigin(actor, from, to), actor.Entity(), catalog.KindEject)
		}
		if !local && style.remote {
			if len(rays) > 0 {
				for _, r := range rays {
					s.impactEffects(atk, actor, from, r, false)
				}
			} else {
				s.impactEffects(atk, actor, from, to, false)
			}
		}
		if style.lightning {
			s.fx.Flare(PartElectricity, s.gunOrigin(actor, from, to), to, style.flash, 1, 80)
		}
		if style.tracer != 0 {
			ends := rays
			if len(ends) == 0 {
				ends = []gamemath.Vec3{to}
			}
			for _, r := range ends {
				s.fx.Flare(PartTrail, s.gunOrigin(actor, from, r), r, style.tracer, style.tracerSize, 80)
			}
		}
	}

	if info.Projectile.Valid() {
		if len(rays) > 0 {
			for _, r := range rays {
				s.SpawnProjectile(actor.Entity(), from, r, local, id, atk, info.Projectile, info.Lifetime, info.ProjSpeed, info.Gravity, info.Elasticity)
			}
		} else {
			aim := to
			switch atk {
			case catalog.AttackGrenade1:
				aim[2] += gamemath.Dist(from, to) / 8
			case catalog.AttackGrenade2:
				aim[2] += gamemath.Dist(from, to) / 16
			}
			s.SpawnProjectile(actor.Entity(), from, aim, local, id, atk, info.Projectile, info.Lifetime, info.ProjSpeed, info.Gravity, info.Elasticity)
		}
	}
	s.playWeaponSounds(actor, atk, info, prevAction)
}

func (s *Simulation) playWeaponSounds(actor *donburi.Entry, atk catalog.Attack, info catalog.AttackDefinition, prevAction int64) {
	c := components.Combatant.Get(actor)
	pos := components.Body.Get(actor).Pos
	if c.AttackSound.Valid() && c.AttackSound != info.Sound {
		s.fx.StopSound(c.AttackSound, c.AttackChan)
		c.AttackSound, c.AttackChan = catalog.SoundNone, -1
	}
	if c.IdleSound.Valid() {
		s.fx.StopSound(c.IdleSound, c.IdleChan)
		c.IdleSound, c.IdleChan = catalog.SoundNone, -1
	}

	looping := false
	if info.Sound.Valid() {
		if info.Loop && info.Gun != catalog.GunSMG {
			looping = c.AttackSound.Valid()
			c.AttackSound = info.Sound
			c.AttackChan = s.fx.PlaySound(info.Sound, &pos, c.AttackChan, true)
		} else if actor.Entity() == s.observed {
			s.fx.PlaySound(info.Sound, nil, -1, false)
		} else {
			s.fx.PlaySound(info.Sound, &pos, -1, false)
		}
	}
	if info.LoopSound.Valid() {
		starting := s.now-prevAction > 200 && !looping
		if starting || !info.Loop && actor.Entity() == s.observed {
			s.fx.PlaySound(info.LoopSound, &pos, -1, false)
		}
	}
}

func (s *Simulation) stopAttackSounds(c *components.CombatantData) {
	if c.AttackSound.Valid() {
		s.fx.StopSound(c.AttackSound, c.AttackChan)
	}
	if c.IdleSound.Valid() {
		s.fx.StopSound(c.IdleSound, c.IdleChan)
	}
	c.AttackSound, c.AttackChan = catalog.SoundNone, -1
	c.IdleSound, c.IdleChan = catalog.SoundNone, -1
}

// updateAttackSounds keeps looping attack sounds alive only while the gun
// is still firing, and hums the zombie idle loop.
func (s *Simulation) updateAttackSounds() {
	for _, e := range s.actorSnapshot() {
		c := components.Combatant.Get(e)
		pos := components.Body.Get(e).Pos
		if c.AttackSound.Valid() {
			firing := c.Alive() && c.LastAttack.Valid() && c.LastAttack.Info().Loop &&
				c.LastAttack.Info().Sound == c.AttackSound &&
				s.now-c.LastAction < config.Combat.AttackSoundTimeout
			if firing {
				c.AttackChan = s.fx.PlaySound(c.AttackSound, &pos, c.AttackChan, true)
			} else {
				s.fx.StopSound(c.AttackSound, c.AttackChan)
				c.AttackSound, c.AttackChan = catalog.SoundNone, -1
			}
		}
		if c.Alive() && c.Gun == catalog.GunZombie && !c.AttackSound.Valid() {
			c.IdleSound = catalog.SoundZombie
			c.IdleChan = s.fx.PlaySound(catalog.SoundZombie, &pos, c.IdleChan, true)
		} else if c.IdleSound.Valid() {
			s.fx.StopSound(c.IdleSound, c.IdleChan)
			c.IdleSound, c.IdleChan = catalog.SoundNone, -1
		}
	}
}
