// Package boolalg implements exact polygon set operations: union and
// difference over geometry.PolygonWithHoles values. It is the Go
// replacement for CGAL's Polygon_set_2 that no_fit_polygon.hpp leans on
// for minkowski_sum_2 and for combining per-placed-shape NFPs into the
// candidate boundary. The algorithm is Greiner-Hormann polygon clipping,
// generalized to multi-loop (outer+holes) operands, run entirely over
// math/big.Rat so that boundaries produced by upstream Minkowski sums
// never drift by float64 epsilon before a later union sees them.
package boolalg

import (
	"math/big"

	"github.com/nestcore/nestcore/internal/geometry"
)

// segIntersection is the result of intersecting two closed segments
// (endpoints included).
type segIntersection struct {
	point    geometry.Point
	tA, tB   big.Rat // parametric position along each segment, in [0,1]
	parallel bool
}

// intersectSegments computes the exact intersection of segment a0-a1 with
// b0-b1, following the same exact-rational cross-product construction as
// github.com/addrummond/ggeom's NondegenerateSegmentIntersection: solve
//
//	a0 + tA*(a1-a0) = b0 + tB*(b1-b0)
//
// via Cramer's rule over the 2x2 system, using big.Rat.Quo for the exact
// division rather than floating reciprocals.
func intersectSegments(a0, a1, b0, b1 geometry.Point) (segIntersection, bool) {
	d1 := a1.Sub(a0)
	d2 := b1.Sub(b0)
	denom := d1.Cross(d2)
	if denom.Sign() == 0 {
		return segIntersection{parallel: true}, false
	}

	diff := b0.Sub(a0)
	// tA = (diff x d2) / denom
	tA := diff.Cross(d2)
	tA.Quo(tA, denom)
	// tB = (diff x d1) / denom
	tB := diff.Cross(d1)
	tB.Quo(tB, denom)

	zero, one := big.NewRat(0, 1), big.NewRat(1, 1)
	if tA.Cmp(zero) < 0 || tA.Cmp(one) > 0 || tB.Cmp(zero) < 0 || tB.Cmp(one) > 0 {
		return segIntersection{}, false
	}

	pt := a0.Add(scalePoint(d1, tA))
	return segIntersection{point: pt, tA: *tA, tB: *tB}, true
}

// scalePoint returns p scaled by the exact rational factor k.
func scalePoint(p geometry.Point, k *big.Rat) geometry.Point {
	var out geometry.Point
	out.X.Mul(&p.X, k)
	out.Y.Mul(&p.Y, k)
	return out
}
