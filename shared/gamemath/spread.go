package gamemath

import "math/rand/v2"

// SpreadOffset returns to displaced by a random point inside a sphere of
// radius 0.5, scaled by distance/1024 and spread. Crouching tightens the
// cone by 1.5 and the vertical error is halved.
func SpreadOffset(rng *rand.Rand, from, to Vec3, spread float64, crouched bool) Vec3 {
	var offset Vec3
	for {
		offset = Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
		if LenSq(offset) <= 0.25 {
			break
		}
	}
	scale := Dist(to, from) / 1024 * spread
	if crouched {
		scale /= 1.5
	}
	offset = offset.Mul(scale)
	offset[2] /= 2
	return to.Add(offset)
}
