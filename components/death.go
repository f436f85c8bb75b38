package components

import "github.com/yohamta/donburi"

// DeathData marks an actor that has died and is waiting to respawn.
// Timer counts down in simulation milliseconds.
type DeathData struct {
	Timer  int64
	Killer donburi.Entity
	Gibbed bool
}

var Death = donburi.NewComponentType[DeathData]()
