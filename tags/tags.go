package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Monster    = donburi.NewTag().SetName("Monster")
	Projectile = donburi.NewTag().SetName("Projectile")
	Junk       = donburi.NewTag().SetName("Junk")
	Match      = donburi.NewTag().SetName("Match")
)

// Resolv tags for broadphase culling
const (
	ResolvActor   = "actor"
	ResolvPlayer  = "Player"
	ResolvMonster = "Monster"
	ResolvSolid   = "solid"
)
