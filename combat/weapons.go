package combat

import (
	"math"

	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/messages"
	"github.com/yohamta/donburi"
)

// switchOrder is the preference list used when the current gun runs dry.
var switchOrder = []catalog.Gun{
	catalog.GunScatter,
	catalog.GunSMG,
	catalog.GunPulse,
	catalog.GunRocket,
	catalog.GunRail,
	catalog.GunGrenade,
}

// SelectGun switches actor to gun. Switches closer together than
// SwitchDelay are ignored.
func (s *Simulation) SelectGun(actor donburi.Entity, gun catalog.Gun) bool {
	entry := s.entry(actor)
	if entry == nil || !gun.Valid() {
		return false
	}
	c := components.Combatant.Get(entry)
	if gun == c.Gun || s.now-c.LastSwitch < config.Combat.SwitchDelay {
		return false
	}
	s.net.SendGunSelect(messages.GunSelectEvent{Actor: c.ClientNum, Gun: gun})
	s.setGun(entry, gun)
	return true
}

func (s *Simulation) setGun(entry *donburi.Entry, gun catalog.Gun) {
	c := components.Combatant.Get(entry)
	c.Gun = gun
	c.LastSwitch = s.now
	c.LastAttack = catalog.AttackInvalid
	if c.AttackSound.Valid() {
		s.fx.StopSound(c.AttackSound, c.AttackChan)
		c.AttackSound, c.AttackChan = catalog.SoundNone, -1
	}

	sound := gun.Info().SwitchSound
	if !sound.Valid() {
		sound = catalog.SoundWeaponLoad
	}
	if entry.Entity() == s.observed {
		s.fx.PlaySound(sound, nil, -1, false)
		return
	}
	pos := components.Body.Get(entry).Pos
	s.fx.PlaySound(sound, &pos, -1, false)
}

// WeaponSwitch picks the first gun in preference order that still has
// ammo.
func (s *Simulation) WeaponSwitch(actor donburi.Entity) bool {
	entry := s.entry(actor)
	if entry == nil {
		return false
	}
	c := components.Combatant.Get(entry)
	for _, g := range switchOrder {
		if g != c.Gun && c.HasAmmo(g) {
			return s.SelectGun(actor, g)
		}
	}
	return false
}

// CycleWeapon steps through the guns in dir (+1 or -1), skipping empty
// ones unless force is set.
func (s *Simulation) CycleWeapon(actor donburi.Entity, dir int, force bool) bool {
	entry := s.entry(actor)
	if entry == nil || dir == 0 {
		return false
	}
	c := components.Combatant.Get(entry)
	n := int(catalog.GunZombie)
	gun := int(c.Gun)
	for range n {
		gun = ((gun+dir)%n + n) % n
		g := catalog.Gun(gun)
		if force || c.HasAmmo(g) {
			return s.SelectGun(actor, g)
		}
	}
	return false
}

// UpdateRecoil feeds pending pitch recoil into the view at RecoilDecay
// units per second.
func (s *Simulation) UpdateRecoil(dt int64) {
	if dt <= 0 {
		return
	}
	cfg := config.Combat
	components.Combatant.Each(s.world, func(e *donburi.Entry) {
		c := components.Combatant.Get(e)
		if c.PitchRecoil <= 0 || !e.HasComponent(components.Body) {
			return
		}
		amount := math.Min(c.PitchRecoil, cfg.RecoilDecay*float64(dt)/1000)
		b := components.Body.Get(e)
		b.Pitch = math.Min(b.Pitch+amount, cfg.MaxPitch)
		c.PitchRecoil -= amount
	})
}
