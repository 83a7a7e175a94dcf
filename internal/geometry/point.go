// Package geometry provides the exact-arithmetic polygon primitives the
// nesting engine is built on: points, simple polygons, polygons with
// holes, and the affine transforms used to place them. Coordinates are
// kept as exact rationals throughout so that Minkowski-sum and boolean-set
// boundaries computed deep in the pipeline coincide exactly instead of
// leaking the slivers an approximate kernel would produce.
package geometry

import "math/big"

// Point is an exact rational 2D coordinate.
type Point struct {
	X, Y big.Rat
}

// NewPoint builds a Point from float64 coordinates. Since float64 values
// are themselves exactly representable as rationals, this conversion loses
// no precision — it's the one place doubles enter the exact pipeline.
func NewPoint(x, y float64) Point {
	var p Point
	p.X.SetFloat64(x)
	p.Y.SetFloat64(y)
	return p
}

// Float64 projects the point down to IEEE-754 doubles. Used only at the
// output boundary: heuristic scoring and the final Transform.
func (p Point) Float64() (x, y float64) {
	x, _ = p.X.Float64()
	y, _ = p.Y.Float64()
	return x, y
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	var r Point
	r.X.Add(&p.X, &q.X)
	r.Y.Add(&p.Y, &q.Y)
	return r
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	var r Point
	r.X.Sub(&p.X, &q.X)
	r.Y.Sub(&p.Y, &q.Y)
	return r
}

// Neg returns -p.
func (p Point) Neg() Point {
	var r Point
	r.X.Neg(&p.X)
	r.Y.Neg(&p.Y)
	return r
}

// Eq reports exact coordinate equality.
func (p Point) Eq(q Point) bool {
	return p.X.Cmp(&q.X) == 0 && p.Y.Cmp(&q.Y) == 0
}

// Cross returns the exact 2D cross product (p x q), i.e. p.X*q.Y - p.Y*q.X.
func (p Point) Cross(q Point) *big.Rat {
	var a, b big.Rat
	a.Mul(&p.X, &q.Y)
	b.Mul(&p.Y, &q.X)
	return a.Sub(&a, &b)
}

// Dot returns the exact dot product.
func (p Point) Dot(q Point) *big.Rat {
	var a, b big.Rat
	a.Mul(&p.X, &q.X)
	b.Mul(&p.Y, &q.Y)
	return a.Add(&a, &b)
}

// Orientation classifies the ordered triplet (a, b, c):
// -1 counter-clockwise (left turn), 0 colinear, 1 clockwise (right turn).
// Grounded on the same cross-product-of-differences test used throughout
// github.com/addrummond/ggeom's ClockOrientation and orientation helpers,
// reimplemented here against big.Rat directly so the result of the
// subtraction (not just the caller-supplied Vec2) stays inspectable.
func Orientation(a, b, c Point) int {
	ab := b.Sub(a)
	bc := c.Sub(b)
	return -ab.Cross(bc).Sign()
}

// IsReflex reports whether the interior angle at b, going a->b->c around a
// CCW-oriented polygon, is reflex (greater than 180 degrees).
func IsReflex(a, b, c Point) bool {
	return Orientation(a, b, c) > 0
}
