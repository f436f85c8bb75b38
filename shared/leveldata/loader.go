package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	layerBlocks     = "blocks"
	layerMaterials  = "materials"
	groupSpawns     = "Spawns"
	defaultBlockTop = 64
)

// LoadArena parses a TMX file into an Arena. It takes an fs.FS so callers
// can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*Arena, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: cells must be square, got %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	arena := &Arena{
		Width:    levelMap.Width,
		Height:   levelMap.Height,
		CellSize: float64(levelMap.TileWidth),
	}
	cell := arena.CellSize

	for _, layer := range levelMap.Layers {
		if layer.Name != layerBlocks && layer.Name != layerMaterials {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
				if err != nil {
					continue
				}
				wx, wy := float64(x)*cell, float64(y)*cell

				if layer.Name == layerBlocks {
					top := tilesetTile.Properties.GetInt("height")
					if top <= 0 {
						top = defaultBlockTop
					}
					arena.Blocks = append(arena.Blocks, Block{X: wx, Y: wy, W: cell, H: cell, Top: float64(top)})
					continue
				}

				name := tilesetTile.Properties.GetString("material")
				mat, ok := ParseMaterial(name)
				if !ok {
					return nil, fmt.Errorf("load TMX %s: unknown material %q at %d,%d", tmxPath, name, x, y)
				}
				depth := tilesetTile.Properties.GetInt("depth")
				arena.SetMaterial(wx+cell/2, wy+cell/2, mat, float64(depth))
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != groupSpawns {
			continue
		}
		for _, o := range og.Objects {
			arena.SpawnPoints = append(arena.SpawnPoints, SpawnPoint{
				X:     o.X,
				Y:     o.Y,
				Z:     numberProperty(o.Properties, "z"),
				Yaw:   numberProperty(o.Properties, "yaw"),
				Index: o.Properties.GetInt("index"),
			})
		}
	}

	sort.Slice(arena.SpawnPoints, func(i, j int) bool {
		return arena.SpawnPoints[i].Index < arena.SpawnPoints[j].Index
	})

	return arena, nil
}

// numberProperty reads a numeric property whether the map declares it as int
// or float. Missing or malformed values read as 0.
func numberProperty(props tiled.Properties, name string) float64 {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

// LoadAllArenas discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*Arena, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		arena, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		arenas[stem] = arena
		names = append(names, stem)
	}

	sort.Strings(names)
	return arenas, names, nil
}
