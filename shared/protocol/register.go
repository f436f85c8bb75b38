package protocol

import (
	"fmt"

	"github.com/automoto/ordnance/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetActor      uint = 10
	SyncIDNetProjectile uint = 11
	SyncIDNetMatch      uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetActor      uint8 = 10
	InterpIDNetProjectile uint8 = 11
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetActor,
		netcomponents.NetActorData{},
		netcomponents.NetActor,
		esync.WithInterpFn(InterpIDNetActor, netcomponents.LerpNetActor),
	); err != nil {
		return fmt.Errorf("register actor: %w", err)
	}

	if err := esync.RegisterComponent(
		SyncIDNetProjectile,
		netcomponents.NetProjectileData{},
		netcomponents.NetProjectile,
		esync.WithInterpFn(InterpIDNetProjectile, netcomponents.LerpNetProjectile),
	); err != nil {
		return fmt.Errorf("register projectile: %w", err)
	}

	// Match: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetMatch,
		netcomponents.NetMatchData{},
		netcomponents.NetMatch,
	); err != nil {
		return fmt.Errorf("register match: %w", err)
	}

	return nil
}
