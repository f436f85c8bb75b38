package gamemath

// Damp reduces v toward zero by the fraction friction, clamped at zero.
func Damp(v Vec3, friction float64) Vec3 {
	if friction >= 1 {
		return Vec3{}
	}
	return v.Mul(1 - friction)
}

// ClampSpeed limits the length of v to max.
func ClampSpeed(v Vec3, max float64) Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// Reflect bounces v off a surface with the given unit normal. The normal
// component keeps elasticity of its magnitude.
func Reflect(v, normal Vec3, elasticity float64) Vec3 {
	return v.Sub(normal.Mul((1 + elasticity) * v.Dot(normal)))
}
