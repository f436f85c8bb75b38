// Package leveldata provides TMX arena parsing shared between the host and
// peers. It has no dependencies on donburi or the simulation, pure data only.
package leveldata

import (
	"math"

	"github.com/automoto/ordnance/shared/gamemath"
)

// Material is the content of a point in the world. The low bits hold the
// volume (air, water, lava, glass); higher bits are flags.
type Material uint8

const (
	MatAir   Material = 0
	MatWater Material = 1
	MatLava  Material = 2
	MatGlass Material = 3

	MatVolume Material = 0x07
	MatDeath  Material = 1 << 4
)

// Volume strips the flag bits.
func (m Material) Volume() Material {
	return m & MatVolume
}

// IsLiquid reports whether the volume is water or lava.
func (m Material) IsLiquid() bool {
	v := m.Volume()
	return v == MatWater || v == MatLava
}

// ParseMaterial maps a tile property value to a Material.
func ParseMaterial(name string) (Material, bool) {
	switch name {
	case "", "air":
		return MatAir, true
	case "water":
		return MatWater, true
	case "lava":
		return MatLava, true
	case "glass":
		return MatGlass, true
	case "death":
		return MatDeath, true
	}
	return MatAir, false
}

// Arena holds all collision-relevant data parsed from a TMX arena file.
// Tiles map to XY cells; heights come from tile properties.
type Arena struct {
	Width, Height int     // in cells
	CellSize      float64 // world units per cell
	Floor         float64 // z of the ground plane

	Blocks      []Block
	SpawnPoints []SpawnPoint

	materials []cellMaterial
}

// Block is a solid box rising from the floor.
type Block struct {
	X, Y, W, H float64
	Top        float64
}

// SpawnPoint is an actor spawn location.
type SpawnPoint struct {
	X, Y, Z float64
	Yaw     float64
	Index   int
}

type cellMaterial struct {
	mat     Material
	surface float64 // material fills from the floor up to this height
}

// WorldWidth and WorldHeight return the arena extent in world units.
func (a *Arena) WorldWidth() float64  { return float64(a.Width) * a.CellSize }
func (a *Arena) WorldHeight() float64 { return float64(a.Height) * a.CellSize }

// SetMaterial fills the cell containing (x, y) with mat up to surface.
func (a *Arena) SetMaterial(x, y float64, mat Material, surface float64) {
	i, ok := a.cellIndex(x, y)
	if !ok {
		return
	}
	if a.materials == nil {
		a.materials = make([]cellMaterial, a.Width*a.Height)
	}
	a.materials[i] = cellMaterial{mat: mat, surface: surface}
}

// MaterialAt returns the material at p. Points outside the arena are air.
func (a *Arena) MaterialAt(p gamemath.Vec3) Material {
	if a == nil || a.materials == nil {
		return MatAir
	}
	i, ok := a.cellIndex(p.X(), p.Y())
	if !ok {
		return MatAir
	}
	c := a.materials[i]
	if c.mat == MatAir || p.Z() > a.Floor+c.surface {
		return MatAir
	}
	return c.mat
}

func (a *Arena) cellIndex(x, y float64) (int, bool) {
	if a.CellSize <= 0 {
		return 0, false
	}
	cx := int(math.Floor(x / a.CellSize))
	cy := int(math.Floor(y / a.CellSize))
	if cx < 0 || cy < 0 || cx >= a.Width || cy >= a.Height {
		return 0, false
	}
	return cy*a.Width + cx, true
}
