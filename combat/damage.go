package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CalcDamage scales damage by hit location, powerups, team and armour.
// Any attempted hit that gets through deals at least 1.
func (s *Simulation) CalcDamage(damage int, target, actor *donburi.Entry, atk catalog.Attack, flags int) int {
	tc := components.Combatant.Get(target)
	ac := components.Combatant.Get(actor)
	self := target.Entity() == actor.Entity()
	if !self && tc.HasPowerup(netconfig.PowerupInvulnerable) {
		return 0
	}

	if flags&catalog.HitMaterial == 0 {
		info := atk.Info()
		if info.HeadshotDamage > 0 && !catalog.IsWeaponKind(info.Projectile) {
			switch {
			case flags&catalog.HitHead != 0:
				if s.rules.Mayhem {
					return max(tc.Health, 1)
				}
				damage += info.HeadshotDamage
			case flags&catalog.HitLegs != 0:
				damage /= 2
			}
		}
		if ac.HasPowerup(netconfig.PowerupDamage) || ac.Berserker() {
			damage *= 2
		}
		if self || s.isAlly(tc, ac) {
			damage /= config.Combat.AllyDamageDivisor
		}
	}
	if tc.HasPowerup(netconfig.PowerupArmour) || tc.Berserker() {
		damage /= 2
	}
	if damage <= 0 {
		damage = 1
	}
	return damage
}

// damageActor applies immediate damage to a player, with the shield
// soaking up to half of it.
func (s *Simulation) damageActor(damage int, target, actor *donburi.Entry) {
	tc := components.Combatant.Get(target)
	soak := min(tc.Shield, damage/2)
	tc.Shield -= soak
	tc.Health -= damage - soak
	if tc.Health <= 0 {
		s.kill(target, actor, damage)
	}
}

// damageMonster applies damage to an AI and turns it on its attacker.
func (s *Simulation) damageMonster(damage int, target, actor *donburi.Entry) {
	tc := components.Combatant.Get(target)
	tc.Health -= damage
	if tc.Health > 0 {
		if actor.Entity() != target.Entity() {
			tc.Enemy = actor.Entity()
		}
		return
	}
	s.kill(target, actor, damage)
}

func (s *Simulation) kill(target, actor *donburi.Entry, damage int) {
	tc := components.Combatant.Get(target)
	if tc.State == netconfig.StateDead {
		return
	}
	tc.State = netconfig.StateDead
	tc.Attacking = catalog.ActIdle
	s.stopAttackSounds(tc)

	body := components.Body.Get(target)
	pos := body.Pos
	s.fx.PlaySound(catalog.SoundDie, &pos, -1, false)
	gibbed := tc.Health <= config.Combat.HealthGib
	if gibbed {
		s.gibEffect(damage, target)
	}
	if s.onDeath != nil {
		s.onDeath(target.Entity(), actor.Entity(), gibbed)
	}
}
