package gamemath

import "math"

// parallelEpsilon treats near-vertical segments as parallel to the axis.
const parallelEpsilon = 0.005

// SegmentCylinder intersects the segment from->to with the capped cylinder
// of the given radius whose axis runs from start to end. It returns the hit
// as a fraction of the segment in [0, 1]. A segment starting inside the
// cylinder hits at 0.
func SegmentCylinder(from, to, start, end Vec3, radius float64) (float64, bool) {
	d := end.Sub(start)
	m := from.Sub(start)
	n := to.Sub(from)

	md, nd, dd := m.Dot(d), n.Dot(d), d.Dot(d)
	if md < 0 && md+nd < 0 {
		return 0, false
	}
	if md > dd && md+nd > dd {
		return 0, false
	}

	nn, mn := n.Dot(n), m.Dot(n)
	a := dd*nn - nd*nd
	k := m.Dot(m) - radius*radius
	c := dd*k - md*md

	var t float64
	switch {
	case math.Abs(a) < parallelEpsilon:
		if c > 0 {
			return 0, false
		}
		switch {
		case md < 0:
			t = -mn / nn
		case md > dd:
			t = (nd - mn) / nn
		default:
			t = 0
		}
		return t, true
	case c > 0:
		b := dd*mn - nd*md
		discr := b*b - a*c
		if discr < 0 {
			return 0, false
		}
		t = (-b - math.Sqrt(discr)) / a
	default:
		t = 0
	}

	offset := md + t*nd
	if offset < 0 {
		// outside the start cap
		if nd <= 0 {
			return 0, false
		}
		t = -md / nd
		if k+t*(2*mn+t*nn) > 0 {
			return 0, false
		}
	} else if offset > dd {
		// outside the end cap
		if nd >= 0 {
			return 0, false
		}
		t = (dd - md) / nd
		if k+dd-2*md+t*(2*(mn-nd)+t*nn) > 0 {
			return 0, false
		}
	}
	return t, t >= 0 && t <= 1
}
