package netcomponents

import (
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetActorData is the replicated view of a player or AI body.
type NetActorData struct {
	X, Y, Z      float64
	Yaw, Pitch   float64
	ClientNum    int
	LifeSequence int
	State        netconfig.StateID
	Health       int
	Shield       int
	Gun          int
	Team         int
	AI           bool
}

var NetActor = donburi.NewComponentType[NetActorData]()

// LerpNetActor interpolates between two actor states
func LerpNetActor(from, to NetActorData, t float64) *NetActorData {
	out := to
	out.X = from.X + (to.X-from.X)*t
	out.Y = from.Y + (to.Y-from.Y)*t
	out.Z = from.Z + (to.Z-from.Z)*t
	out.Yaw = lerpAngle(from.Yaw, to.Yaw, t)
	out.Pitch = from.Pitch + (to.Pitch-from.Pitch)*t
	return &out
}
