package components

import (
	"math"

	"github.com/automoto/ordnance/shared/catalog"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ProjectileData is an in-flight projectile or piece of junk. The embedded
// body carries position and velocity for physics.
type ProjectileData struct {
	BodyData

	From, To gamemath.Vec3
	Owner    donburi.Entity
	Attack   catalog.Attack
	Kind     catalog.Kind
	Flags    catalog.KindFlag
	Local    bool
	ID       int64

	Lifetime   int64
	Bounces    int
	LastBounce int64

	Destroyed    bool
	Direct       bool
	DirectTarget donburi.Entity

	// Offset is the cosmetic gap between the muzzle and the simulated
	// position, faded out by OffsetFade.
	Offset       gamemath.Vec3
	OffsetStart  gamemath.Vec3
	OffsetFade   *gween.Tween
	OffsetHeight float64 // clearance below the drawn position, -1 when unknown
	LastPos      gamemath.Vec3

	Speed      float64
	Gravity    float64
	Elasticity float64
	Variant    int

	LoopSound catalog.Sound
	LoopChan  int
}

var Projectile = donburi.NewComponentType[ProjectileData]()

// Has reports whether the projectile's kind carries flag f.
func (p *ProjectileData) Has(f catalog.KindFlag) bool {
	return p.Flags&f != 0
}

// OffsetPos is where the projectile is drawn. The offset never pushes it
// further below the body than the measured clearance allows.
func (p *ProjectileData) OffsetPos() gamemath.Vec3 {
	pos := p.Pos.Add(p.Offset)
	if p.OffsetHeight >= 0 && p.Offset.Z() < 0 {
		pos[2] = math.Max(pos[2], p.Pos.Z()-math.Max(p.OffsetHeight-p.EyeHeight, 0))
	}
	return pos
}

// OffsetFraction is how much of the muzzle offset is still applied, 1 at
// spawn down to 0.
func (p *ProjectileData) OffsetFraction() float64 {
	if p.OffsetFade == nil {
		return 0
	}
	v, _ := p.OffsetFade.Update(0)
	return float64(v)
}
