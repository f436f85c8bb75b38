package messages

import "github.com/automoto/ordnance/shared/catalog"

// HitRecord is one settled hit inside a shoot or explode event. Distances and
// directions travel as fixed-point integers, see EncodeVec and EncodeDir.
type HitRecord struct {
	Target       int    // client number of the target
	LifeSequence int    // target's life sequence, stale hits are dropped
	Info1        int    // distance * PositionScale
	Info2        int    // ray count
	Flags        int    // catalog.Hit* bits
	Dir          [3]int // push direction * DirectionScale
}

// ShootEvent is sent when an actor fires. ID doubles as the projectile id so
// peers can match the later ExplodeEvent.
type ShootEvent struct {
	Shooter int
	ID      int64
	Attack  catalog.Attack
	From    [3]int
	To      [3]int
	Hits    []HitRecord
}

// ExplodeEvent is sent when a local projectile detonates.
type ExplodeEvent struct {
	Shooter      int
	Time         int64
	Attack       catalog.Attack
	ProjectileID int64
	Hits         []HitRecord
}

// GunSelectEvent is sent when an actor switches weapon.
type GunSelectEvent struct {
	Actor int
	Gun   catalog.Gun
}

// DeathEvent is broadcast when an actor dies.
type DeathEvent struct {
	Victim int
	Killer int // -1 if environmental
	Gibbed bool
}

// MatchStateChangeEvent is broadcast when the match moves between rounds.
type MatchStateChangeEvent struct {
	NewState int // netconfig.MatchStateID
}
