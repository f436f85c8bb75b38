package netcomponents

import "github.com/yohamta/donburi"

// NetProjectileData is the replicated view of an in-flight projectile.
type NetProjectileData struct {
	X, Y, Z          float64
	VelX, VelY, VelZ float64 // Client extrapolation between snapshots
	Yaw, Pitch, Roll float64
	Owner            int // client number of the shooter
	Attack           int
	Kind             int
	Variant          int
	ID               int64
}

var NetProjectile = donburi.NewComponentType[NetProjectileData]()

// LerpNetProjectile interpolates between two projectile states
func LerpNetProjectile(from, to NetProjectileData, t float64) *NetProjectileData {
	return &NetProjectileData{
		X:       from.X + (to.X-from.X)*t,
		Y:       from.Y + (to.Y-from.Y)*t,
		Z:       from.Z + (to.Z-from.Z)*t,
		VelX:    to.VelX,
		VelY:    to.VelY,
		VelZ:    to.VelZ,
		Yaw:     lerpAngle(from.Yaw, to.Yaw, t),
		Pitch:   from.Pitch + (to.Pitch-from.Pitch)*t,
		Roll:    to.Roll,
		Owner:   to.Owner,
		Attack:  to.Attack,
		Kind:    to.Kind,
		Variant: to.Variant,
		ID:      to.ID,
	}
}

// lerpAngle takes the short way around for yaw in degrees.
func lerpAngle(from, to, t float64) float64 {
	d := to - from
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return from + d*t
}
