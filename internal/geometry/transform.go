package geometry

import (
	"math"
	"math/big"
)

// Transform is a rigid rotation about the origin followed by a
// translation, mirroring primitives.hpp's Transform{translate, rotate,
// defined}. Rotation is stored as its sin/cos rather than an angle so
// that Apply never recomputes trig: the angle is only ever known at
// construction time (a uniformly sampled grid position), exactly the way
// packing.hpp computes `angle = i*2*pi/rotations` once per candidate
// rotation and reuses CGAL::ROTATION's sin/cos pair for every vertex it
// transforms under it.
type Transform struct {
	Sin, Cos  big.Rat
	Translate Point
	Defined   bool
}

// Identity is the defined no-op transform.
func Identity() Transform {
	t := Transform{Defined: true}
	t.Cos.SetInt64(1)
	return t
}

// Rotation builds a Transform that rotates by theta radians about the
// origin with zero translation. theta is a float64 because it always
// originates from a uniform angle grid (2*pi*i/rotations); sin/cos are
// computed in float64 and then lifted into big.Rat via SetFloat64, the
// same boundary CGAL's exact kernel uses when accepting a double rotation
// — the angle itself is inherently transcendental, so exactness is kept
// for everything downstream of this one unavoidable lossy step.
func Rotation(theta float64) Transform {
	t := Transform{Defined: true}
	t.Sin.SetFloat64(math.Sin(theta))
	t.Cos.SetFloat64(math.Cos(theta))
	return t
}

// Translation builds a pure translation by d.
func Translation(d Point) Transform {
	t := Identity()
	t.Translate = d
	return t
}

// WithTranslate returns a copy of t with its translation replaced by d.
func (t Transform) WithTranslate(d Point) Transform {
	t.Translate = d
	return t
}

// Apply transforms p: rotate about the origin, then translate.
func (t Transform) Apply(p Point) Point {
	if !t.Defined {
		return p
	}
	var x, y, a, b big.Rat
	a.Mul(&p.X, &t.Cos)
	b.Mul(&p.Y, &t.Sin)
	x.Sub(&a, &b)
	a.Mul(&p.X, &t.Sin)
	b.Mul(&p.Y, &t.Cos)
	y.Add(&a, &b)
	x.Add(&x, &t.Translate.X)
	y.Add(&y, &t.Translate.Y)
	return Point{X: x, Y: y}
}

// NegateScale returns the point-reflection of p through the origin,
// i.e. scale by -1. Used to build the reflected operand -B that
// no_fit_polygon.hpp's nfp() Minkowski-sums against A.
func NegateScale(p Point) Point {
	return p.Neg()
}
