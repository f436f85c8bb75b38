package core

import (
	"fmt"
	"log"
	"os"

	"github.com/automoto/ordnance/physics"
	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/automoto/ordnance/shared/leveldata"
)

// Level is an arena ready to host a match.
type Level struct {
	Name  string
	Arena *leveldata.Arena
	World *physics.World
}

// NewLevel builds the collision world for arena.
func NewLevel(name string, arena *leveldata.Arena) *Level {
	log.Printf("[host] loaded level %s: %d blocks, %d spawn points, %.0fx%.0f",
		name, len(arena.Blocks), len(arena.SpawnPoints), arena.WorldWidth(), arena.WorldHeight())
	return &Level{Name: name, Arena: arena, World: physics.New(arena)}
}

// Spawn returns the eye position and yaw for the n-th spawn. A spawn's z
// property overrides eyeHeight. Arenas without spawn points use their
// centre.
func (l *Level) Spawn(n int, eyeHeight float64) (gamemath.Vec3, float64) {
	a := l.Arena
	if len(a.SpawnPoints) == 0 {
		return gamemath.Vec3{a.WorldWidth() / 2, a.WorldHeight() / 2, a.Floor + eyeHeight}, 0
	}
	sp := a.SpawnPoints[((n%len(a.SpawnPoints))+len(a.SpawnPoints))%len(a.SpawnPoints)]
	if sp.Z > 0 {
		eyeHeight = sp.Z
	}
	return gamemath.Vec3{sp.X, sp.Y, a.Floor + eyeHeight}, sp.Yaw
}

// LoadLevels loads every .tmx arena under assetsDir/levels, keyed by stem
// name, plus the sorted name list.
func LoadLevels(assetsDir string) (map[string]*Level, []string, error) {
	arenas, names, err := leveldata.LoadAllArenas(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	levels := make(map[string]*Level, len(names))
	for _, name := range names {
		levels[name] = NewLevel(name, arenas[name])
	}
	return levels, names, nil
}
