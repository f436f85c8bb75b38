package combat

import (
	"github.com/automoto/ordnance/components"
	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/automoto/ordnance/shared/messages"
)

// Transition reports a body crossing a liquid surface.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionIn
	TransitionOut
)

// Bouncer is a projectile body handed to physics for integration. Physics
// calls Bounced with the surface normal each time the body bounces.
type Bouncer interface {
	Body() *components.BodyData
	Bounced(surface gamemath.Vec3)
}

// Physics is the world geometry the simulation runs against.
type Physics interface {
	// RayCube returns the distance to the first solid surface along dir,
	// or maxDist when nothing is hit within it.
	RayCube(from, dir gamemath.Vec3, maxDist float64) float64
	// IsBouncing integrates b for secs and reports whether it is still in
	// flight.
	IsBouncing(b Bouncer, secs, elasticity, waterFric, gravity float64) bool
	// HasBounced integrates b for secs and reports whether it came to rest.
	HasBounced(b Bouncer, secs, elasticity, waterFric, gravity float64) bool
	LiquidTransition(body *components.BodyData, mat leveldata.Material, inWater bool) Transition
	Material(at gamemath.Vec3) leveldata.Material
	// AvoidCollision nudges body along dir until it clears obstacle.
	AvoidCollision(body *components.BodyData, dir gamemath.Vec3, obstacle *components.BodyData, guard float64)
}

// Particle selects a particle effect.
type Particle int

const (
	PartSpark Particle = iota
	PartSmoke
	PartSteam
	PartBlood
	PartWater
	PartBubble
	PartGlass
	PartElectricity
	PartTrail
	PartMuzzleFlash
	PartOrb
	PartRing
	PartExplosion
	PartFlame
)

// Stain selects a decal.
type Stain int

const (
	StainScorch Stain = iota
	StainGlow
	StainHole
	StainBlood
	StainGlass
)

// Presentation receives every cosmetic side effect. Colors are 0xRRGGBB,
// fades are milliseconds.
type Presentation interface {
	Splash(p Particle, at gamemath.Vec3, count int, color uint32, size float64, fade int)
	Flare(p Particle, from, to gamemath.Vec3, color uint32, size float64, fade int)
	Fireball(p Particle, at gamemath.Vec3, color uint32, maxSize float64, fade int)
	Light(at gamemath.Vec3, radius float64, color gamemath.Vec3, fade int)
	Stain(s Stain, at, surface gamemath.Vec3, radius float64, color uint32)
	// PlaySound plays s at a world position, or as a HUD sound when at is
	// nil. It returns the channel, reusing channel when it is not -1.
	PlaySound(s catalog.Sound, at *gamemath.Vec3, channel int, loop bool) int
	StopSound(s catalog.Sound, channel int)
}

//go:generate go tool mockgen -destination=mocks/network_mock.go -package=mocks github.com/automoto/ordnance/combat Network

// Network carries events the local simulation authored.
type Network interface {
	SendShoot(evt messages.ShootEvent)
	SendExplode(evt messages.ExplodeEvent)
	SendGunSelect(evt messages.GunSelectEvent)
}

// MatchRules are the mode switches the combat rules depend on.
type MatchRules struct {
	Multiplayer   bool // hits are reported as records instead of applied
	BetweenRounds bool
	Mayhem        bool
	Teams         bool
	ThirdPerson   bool
}

type nopPresentation struct{}

func (nopPresentation) Splash(Particle, gamemath.Vec3, int, uint32, float64, int)          {}
func (nopPresentation) Flare(Particle, gamemath.Vec3, gamemath.Vec3, uint32, float64, int) {}
func (nopPresentation) Fireball(Particle, gamemath.Vec3, uint32, float64, int)            {}
func (nopPresentation) Light(gamemath.Vec3, float64, gamemath.Vec3, int)                  {}
func (nopPresentation) Stain(Stain, gamemath.Vec3, gamemath.Vec3, float64, uint32)        {}
func (nopPresentation) PlaySound(catalog.Sound, *gamemath.Vec3, int, bool) int            { return -1 }
func (nopPresentation) StopSound(catalog.Sound, int)                                      {}

type nopNetwork struct{}

func (nopNetwork) SendShoot(messages.ShootEvent)         {}
func (nopNetwork) SendExplode(messages.ExplodeEvent)     {}
func (nopNetwork) SendGunSelect(messages.GunSelectEvent) {}

// openSpace is used when no physics is supplied: nothing is solid and
// bouncers fly until their lifetime runs out.
type openSpace struct{}

func (openSpace) RayCube(_, _ gamemath.Vec3, maxDist float64) float64 { return maxDist }

func (openSpace) IsBouncing(b Bouncer, secs, _, _, gravity float64) bool {
	body := b.Body()
	body.Vel[2] -= gravity * secs
	body.Pos = body.Pos.Add(body.Vel.Mul(secs))
	return true
}

func (o openSpace) HasBounced(b Bouncer, secs, e, wf, gravity float64) bool {
	o.IsBouncing(b, secs, e, wf, gravity)
	return false
}

func (openSpace) LiquidTransition(*components.BodyData, leveldata.Material, bool) Transition {
	return TransitionNone
}

func (openSpace) Material(gamemath.Vec3) leveldata.Material { return leveldata.MatAir }

func (openSpace) AvoidCollision(*components.BodyData, gamemath.Vec3, *components.BodyData, float64) {}
