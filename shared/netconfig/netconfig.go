// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must stay free of simulation dependencies so
// the wire packages can import it without pulling in donburi systems.
package netconfig

// StateID identifies an actor's life state.
type StateID int

// MatchStateID represents the current state of a match.
type MatchStateID int

const (
	MatchStateWaiting      MatchStateID = iota // Waiting for players
	MatchStatePlaying                          // Active gameplay
	MatchStateIntermission                     // Between rounds, no damage
	MatchStateFinished                         // Match over
)

const (
	StateAlive StateID = iota
	StateDead
	StateSpawning
	StateLagged
	StateEditing
	StateSpectator
)

// Roles modify damage and weapon timing.
const (
	RoleNone = iota
	RoleBerserker
)

// Powerups held by an actor. Only one is active at a time.
const (
	PowerupNone = iota
	PowerupDamage
	PowerupHaste
	PowerupArmour
	PowerupAmmo
	PowerupInvulnerable
	PowerupAgility
)

// String returns a human-readable name for logs.
func (s StateID) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateDead:
		return "dead"
	case StateSpawning:
		return "spawning"
	case StateLagged:
		return "lagged"
	case StateEditing:
		return "editing"
	case StateSpectator:
		return "spectator"
	}
	return "unknown"
}
