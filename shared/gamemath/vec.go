// Package gamemath holds the 3D vector helpers shared by the simulation,
// the physics reference implementation and the wire encoding.
package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the world vector type. Z points up.
type Vec3 = mgl64.Vec3

// RAD converts degrees to radians.
const RAD = math.Pi / 180

// Dist returns the distance between a and b.
func Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// LenSq returns the squared length of v.
func LenSq(v Vec3) float64 {
	return v.Dot(v)
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Reject reports whether p lies outside the axis-aligned XY square of
// half-size r around o. It is the cheap test run before exact distances.
func Reject(p, o Vec3, r float64) bool {
	return p.X() > o.X()+r || p.X() < o.X()-r || p.Y() > o.Y()+r || p.Y() < o.Y()-r
}

// Equal reports whether two vectors are identical.
func Equal(a, b Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// VecFromYawPitch builds a movement vector from view angles in degrees.
// move scales the forward component, strafe the sideways one.
func VecFromYawPitch(yaw, pitch, move, strafe float64) Vec3 {
	var m Vec3
	if move != 0 {
		m[0] = move * -math.Sin(RAD*yaw)
		m[1] = move * math.Cos(RAD*yaw)
	}
	if pitch != 0 {
		m[0] *= math.Cos(RAD * pitch)
		m[1] *= math.Cos(RAD * pitch)
		m[2] = move * math.Sin(RAD*pitch)
	}
	if strafe != 0 {
		m[0] += strafe * math.Cos(RAD*yaw)
		m[1] += strafe * math.Sin(RAD*yaw)
	}
	return m
}

// YawPitch returns the view angles in degrees that look along dir.
func YawPitch(dir Vec3) (yaw, pitch float64) {
	l := dir.Len()
	if l == 0 {
		return 0, 0
	}
	yaw = -math.Atan2(dir.X(), dir.Y()) / RAD
	pitch = math.Asin(clamp(dir.Z()/l, -1, 1)) / RAD
	return yaw, pitch
}

// RotateZ rotates v around the Z axis by angle degrees.
func RotateZ(v Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle*RAD), math.Sin(angle*RAD)
	return Vec3{v.X()*c - v.Y()*s, v.X()*s + v.Y()*c, v.Z()}
}

// Lerp moves from a toward b by the fraction t of the way.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Shorten cuts the segment from->to at fraction t (clamped to 1).
func Shorten(from, to Vec3, t float64) Vec3 {
	return from.Add(to.Sub(from).Mul(math.Min(1, t)))
}

// ClosestOnVertical returns the point of the vertical segment [bottom, top]
// through base nearest to p.
func ClosestOnVertical(base Vec3, bottom, top float64, p Vec3) Vec3 {
	return Vec3{base.X(), base.Y(), clamp(p.Z(), bottom, top)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
