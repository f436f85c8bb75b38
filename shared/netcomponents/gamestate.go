package netcomponents

import (
	"github.com/automoto/ordnance/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetMatchData carries the match rules peers need to run their cosmetic
// simulation.
type NetMatchData struct {
	Frags       map[int]int // client number -> frags
	MatchState  netconfig.MatchStateID
	Multiplayer bool
	Mayhem      bool
	Teams       bool
}

var NetMatch = donburi.NewComponentType[NetMatchData]()
