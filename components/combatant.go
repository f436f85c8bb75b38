package components

import (
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CombatantData is the weapon and damage state of a player or AI. All
// timestamps are simulation milliseconds.
type CombatantData struct {
	Name         string
	ClientNum    int
	LifeSequence int
	State        netconfig.StateID
	AI           bool
	Team         int
	Skill        int

	Health    int
	MaxHealth int
	Shield    int
	Powerup   int
	Role      int

	Gun       catalog.Gun
	Ammo      [catalog.NumGuns]int
	Attacking catalog.Action

	LastAction int64
	LastAttack catalog.Attack
	GunWait    int64
	LastSwitch int64
	LastYelp   int64
	LastPain   int64
	LastHit    int64 // last time a hit sound played for this shooter

	TotalDamage int
	TotalShots  int
	PitchRecoil float64

	Crouching bool
	OnSlope   bool

	// Muzzle is the last rendered barrel tip, if any.
	Muzzle    gamemath.Vec3
	HasMuzzle bool

	// Attack loop sound state.
	AttackSound catalog.Sound
	AttackChan  int
	IdleSound   catalog.Sound
	IdleChan    int

	// Enemy is the AI's current target; donburi.Null when none.
	Enemy donburi.Entity
}

var Combatant = donburi.NewComponentType[CombatantData]()

// Alive reports whether the combatant can be hit.
func (c *CombatantData) Alive() bool {
	return c.State == netconfig.StateAlive
}

// HasPowerup reports whether p is active.
func (c *CombatantData) HasPowerup(p int) bool {
	return c.Powerup == p
}

// Berserker reports the berserker role.
func (c *CombatantData) Berserker() bool {
	return c.Role == netconfig.RoleBerserker
}

// HasAmmo reports whether the gun can fire at least once.
func (c *CombatantData) HasAmmo(g catalog.Gun) bool {
	if !g.Valid() {
		return false
	}
	return c.Ammo[g] > 0
}
