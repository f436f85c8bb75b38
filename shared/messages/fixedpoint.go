package messages

import (
	"math"

	"github.com/automoto/ordnance/config"
	"github.com/automoto/ordnance/shared/gamemath"
)

// EncodeVec scales a world position by config.Net.PositionScale.
func EncodeVec(v gamemath.Vec3) [3]int {
	return scale(v, config.Net.PositionScale)
}

// DecodeVec reverses EncodeVec.
func DecodeVec(v [3]int) gamemath.Vec3 {
	return unscale(v, config.Net.PositionScale)
}

// EncodeDir scales a direction by config.Net.DirectionScale.
func EncodeDir(v gamemath.Vec3) [3]int {
	return scale(v, config.Net.DirectionScale)
}

// DecodeDir reverses EncodeDir.
func DecodeDir(v [3]int) gamemath.Vec3 {
	return unscale(v, config.Net.DirectionScale)
}

// EncodeDistance scales a scalar distance for HitRecord.Info1.
func EncodeDistance(d float64) int {
	return int(d * config.Net.PositionScale)
}

// DecodeDistance reverses EncodeDistance.
func DecodeDistance(d int) float64 {
	return float64(d) / config.Net.PositionScale
}

func scale(v gamemath.Vec3, s float64) [3]int {
	return [3]int{
		int(math.Round(v.X() * s)),
		int(math.Round(v.Y() * s)),
		int(math.Round(v.Z() * s)),
	}
}

func unscale(v [3]int, s float64) gamemath.Vec3 {
	return gamemath.Vec3{float64(v[0]) / s, float64(v[1]) / s, float64(v[2]) / s}
}
