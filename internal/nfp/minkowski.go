package nfp

import (
	"sort"

	"github.com/nestcore/nestcore/internal/boolalg"
	"github.com/nestcore/nestcore/internal/geometry"
)

// convexMinkowskiSum computes the Minkowski sum of two convex CCW
// polygons by merging their edge vectors in increasing polar-angle order,
// the standard O(n+m) convex Minkowski sum algorithm: the sum's edges are
// exactly the multiset union of both operands' edge vectors, sorted by
// angle, walked from the vertex with minimum (y, then x).
func convexMinkowskiSum(a, b geometry.SimplePolygon) geometry.SimplePolygon {
	a = a.OrientedCCW()
	b = b.OrientedCCW()

	edges := append(edgeVectors(a), edgeVectors(b)...)
	sort.Slice(edges, func(i, j int) bool {
		return polarLess(edges[i], edges[j])
	})

	start := a.At(bottommostIndex(a)).Add(b.At(bottommostIndex(b)))
	verts := make([]geometry.Point, 0, len(edges)+1)
	cur := start
	verts = append(verts, cur)
	for _, e := range edges[:len(edges)-1] {
		cur = cur.Add(e)
		verts = append(verts, cur)
	}
	return geometry.SimplePolygon{Verts: verts}
}

func edgeVectors(poly geometry.SimplePolygon) []geometry.Point {
	start := bottommostIndex(poly)
	n := poly.Len()
	out := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		a := poly.At(start + i)
		b := poly.At(start + i + 1)
		out[i] = b.Sub(a)
	}
	return out
}

func bottommostIndex(poly geometry.SimplePolygon) int {
	best := 0
	for i := 1; i < poly.Len(); i++ {
		v := poly.At(i)
		w := poly.At(best)
		if v.Y.Cmp(&w.Y) < 0 || (v.Y.Cmp(&w.Y) == 0 && v.X.Cmp(&w.X) < 0) {
			best = i
		}
	}
	return best
}

// polarLess orders vectors by angle starting at the positive X axis,
// sweeping counter-clockwise, using only exact cross/dot sign tests (no
// math.Atan2) so the ordering never disagrees with the exact arithmetic
// the rest of the pipeline relies on.
func polarLess(u, v geometry.Point) bool {
	halfU := upperHalf(u)
	halfV := upperHalf(v)
	if halfU != halfV {
		return halfU
	}
	cross := u.Cross(v)
	return cross.Sign() > 0
}

func upperHalf(v geometry.Point) bool {
	s := v.Y.Sign()
	if s != 0 {
		return s > 0
	}
	return v.X.Sign() > 0
}

// MinkowskiSum computes the Minkowski sum A ⊕ B of two possibly
// non-convex simple polygons via convex decomposition of each operand,
// pairwise convex sums of every piece from A against every piece from B,
// and a union of the results.
func MinkowskiSum(a, b geometry.SimplePolygon) boolalg.Set {
	piecesA := ConvexDecompose(a)
	piecesB := ConvexDecompose(b)

	var result boolalg.Set
	for _, pa := range piecesA {
		for _, pb := range piecesB {
			sum := convexMinkowskiSum(pa, pb)
			result = boolalg.Union(result, boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: sum.OrientedCCW()}))
		}
	}
	return result
}

// ExteriorNFP computes the no-fit-polygon of B against A: the locus of
// reference-point positions at which a translated copy of B touches but
// does not overlap A, following no_fit_polygon.hpp's nfp(): reorient both
// operands CCW, then Minkowski-sum A with the point reflection of B
// through the origin (after translating B's own reference point, its
// first vertex, to the origin). Returns the union of outer loops; holes
// in A are not part of the exterior NFP computation itself (they matter
// only for containment once the full shape is placed).
func ExteriorNFP(a, b geometry.SimplePolygon) boolalg.Set {
	origin := b.At(0)
	bAtOrigin := b.Translate(origin.Neg())
	negB := negatePolygon(bAtOrigin)
	return MinkowskiSum(a.OrientedCCW(), negB)
}

func negatePolygon(p geometry.SimplePolygon) geometry.SimplePolygon {
	out := make([]geometry.Point, len(p.Verts))
	for i, v := range p.Verts {
		out[i] = v.Neg()
	}
	return geometry.SimplePolygon{Verts: out}
}

// RectangularIFP computes the interior no-fit-polygon of polygon b placed
// inside rectangular sheet a: the set of reference-point positions (b's
// first vertex) at which b fits entirely within a's bounding rectangle.
// Mirrors no_fit_polygon.hpp's interior_nfp special case for a
// rectangular outer boundary: empty if b is larger than a along either
// axis, otherwise the explicit 4-corner rectangle of valid reference
// positions.
func RectangularIFP(sheetWidth, sheetHeight float64, b geometry.SimplePolygon) geometry.PolygonWithHoles {
	bb := b.Bbox()
	bw, _ := bb.Width().Float64()
	bh, _ := bb.Height().Float64()
	if bw > sheetWidth || bh > sheetHeight {
		return geometry.PolygonWithHoles{}
	}

	origin := b.At(0)
	ox, oy := origin.Float64()
	bx0, _ := bb.MinX.Float64()
	by0, _ := bb.MinY.Float64()
	// Offset from b's reference vertex to b's own bbox min corner.
	dx, dy := ox-bx0, oy-by0

	minX, minY := dx, dy
	maxX, maxY := sheetWidth-bw+dx, sheetHeight-bh+dy

	outer := geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(minX, minY),
		geometry.NewPoint(maxX, minY),
		geometry.NewPoint(maxX, maxY),
		geometry.NewPoint(minX, maxY),
	}}
	return geometry.PolygonWithHoles{Outer: outer}
}
