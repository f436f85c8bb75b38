package components

import (
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
	"github.com/yohamta/donburi"
)

// BodyData is the physical shape of an actor or projectile. Actors are
// vertical cylinders anchored at the eye; projectiles are spheres where
// EyeHeight and AboveEye both equal Radius.
type BodyData struct {
	Pos        gamemath.Vec3 // eye position (actors), centre (projectiles)
	Vel        gamemath.Vec3
	Falling    gamemath.Vec3
	Radius     float64
	EyeHeight  float64
	AboveEye   float64
	HeadRadius float64
	LegsRadius float64
	Yaw        float64
	Pitch      float64
	Roll       float64
	Weight     float64
	InLiquid   leveldata.Material
	OnFloor    bool
}

var Body = donburi.NewComponentType[BodyData]()

// Feet returns the bottom of the body.
func (b *BodyData) Feet() gamemath.Vec3 {
	return gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() - b.EyeHeight}
}

// Top returns the top of the body.
func (b *BodyData) Top() float64 {
	return b.Pos.Z() + b.AboveEye
}

// Middle returns the vertical centre of the body.
func (b *BodyData) Middle() gamemath.Vec3 {
	return gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() + (b.AboveEye-b.EyeHeight)/2}
}

// HeadPoint is the base of the head cylinder, just below the eye.
func (b *BodyData) HeadPoint() gamemath.Vec3 {
	return gamemath.Vec3{b.Pos.X(), b.Pos.Y(), b.Pos.Z() - b.HeadRadius}
}

// Height is the full vertical extent.
func (b *BodyData) Height() float64 {
	return b.EyeHeight + b.AboveEye
}
