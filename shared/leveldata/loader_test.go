package leveldata

import (
	"os"
	"testing"

	"github.com/automoto/ordnance/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

func loadFixture(t *testing.T) *Arena {
	t.Helper()
	arena, err := LoadArena(os.DirFS("testdata"), "arena.tmx")
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}
	return arena
}

func TestLoadArenaBlocks(t *testing.T) {
	arena := loadFixture(t)

	if arena.Width != 4 || arena.Height != 4 || arena.CellSize != 16 {
		t.Fatalf("expected 4x4 arena of 16 unit cells, got %dx%d@%v", arena.Width, arena.Height, arena.CellSize)
	}
	if len(arena.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(arena.Blocks))
	}
	first, last := arena.Blocks[0], arena.Blocks[1]
	if first.X != 0 || first.Y != 0 || first.Top != 32 {
		t.Fatalf("unexpected first block %+v", first)
	}
	if last.X != 48 || last.Y != 48 || last.W != 16 {
		t.Fatalf("unexpected last block %+v", last)
	}
}

func TestLoadArenaSpawnsSortedByIndex(t *testing.T) {
	arena := loadFixture(t)

	if len(arena.SpawnPoints) != 2 {
		t.Fatalf("expected 2 spawn points, got %d", len(arena.SpawnPoints))
	}
	sp := arena.SpawnPoints[0]
	if sp.Index != 0 || sp.X != 8 || sp.Y != 40 || sp.Z != 14 {
		t.Fatalf("unexpected first spawn %+v", sp)
	}
	if arena.SpawnPoints[1].Yaw != 90 {
		t.Fatalf("expected yaw 90 on second spawn, got %v", arena.SpawnPoints[1].Yaw)
	}
}

func TestMaterialAt(t *testing.T) {
	arena := loadFixture(t)

	tests := []struct {
		name string
		p    gamemath.Vec3
		want Material
	}{
		{"water below surface", gamemath.Vec3{24, 24, 4}, MatWater},
		{"water above surface", gamemath.Vec3{24, 24, 9}, MatAir},
		{"lava", gamemath.Vec3{40, 40, 1}, MatLava},
		{"dry cell", gamemath.Vec3{8, 8, 1}, MatAir},
		{"outside arena", gamemath.Vec3{-5, 24, 0}, MatAir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arena.MaterialAt(tt.p); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMaterialFlags(t *testing.T) {
	if !MatWater.IsLiquid() || !MatLava.IsLiquid() || MatGlass.IsLiquid() {
		t.Fatalf("unexpected liquid classification")
	}
	if (MatDeath | MatWater).Volume() != MatWater {
		t.Fatalf("expected flags to be stripped from volume")
	}
	if _, ok := ParseMaterial("slime"); ok {
		t.Fatalf("expected unknown material to fail")
	}
}

func TestLoadAllArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas(os.DirFS("."), "testdata")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(names) != 1 || names[0] != "arena" || arenas["arena"] == nil {
		t.Fatalf("expected single arena, got %v", names)
	}
}

func TestNumberPropertyAcceptsIntAndFloat(t *testing.T) {
	props := tiled.Properties{
		{Name: "z", Type: "float", Value: "14.5"},
		{Name: "yaw", Type: "int", Value: "90"},
		{Name: "bad", Type: "string", Value: "north"},
	}
	if got := numberProperty(props, "z"); got != 14.5 {
		t.Fatalf("expected z 14.5, got %v", got)
	}
	if got := numberProperty(props, "yaw"); got != 90 {
		t.Fatalf("expected yaw 90, got %v", got)
	}
	if numberProperty(props, "bad") != 0 || numberProperty(props, "missing") != 0 {
		t.Fatalf("expected unreadable properties to read as 0")
	}
}
