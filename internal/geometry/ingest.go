package geometry

import (
	"github.com/addrummond/ggeom"
)

// NormalizeLoop takes a raw, orientation-unknown vertex loop as read from
// external input (JSON coordinates, a CLI harness, anything that hands us
// float64s) and returns it re-oriented to wantCCW. Orientation of
// caller-supplied input can't be trusted, so classification happens via
// github.com/addrummond/ggeom's ClockOrientation over the three vertices
// with the smallest y-then-x (the same bottommost-vertex trick
// IndexOfBottommost uses to pick an unambiguous corner): ApproxVec2 is
// lossless for float64 input, so running the classification through
// ggeom's exact-rational orientation test rather than a hand-rolled
// float comparison costs nothing and avoids a second, divergent
// orientation convention living in this package.
func NormalizeLoop(verts []Point, wantCCW bool) SimplePolygon {
	poly := SimplePolygon{Verts: verts}
	if len(verts) < 3 {
		return poly
	}
	isCCW := classifyOrientationCCW(verts)
	if isCCW != wantCCW {
		return poly.Reversed()
	}
	return poly
}

// classifyOrientationCCW determines loop orientation using ggeom's exact
// ClockOrientation over the bottommost vertex and its two neighbors, which
// is immune to the numerical blow-ups a naive signed-area accumulation
// over many nearly-colinear vertices can suffer.
func classifyOrientationCCW(verts []Point) bool {
	n := len(verts)
	best := 0
	for i := 1; i < n; i++ {
		if verts[i].Y.Cmp(&verts[best].Y) < 0 ||
			(verts[i].Y.Cmp(&verts[best].Y) == 0 && verts[i].X.Cmp(&verts[best].X) < 0) {
			best = i
		}
	}
	prev := verts[(best-1+n)%n]
	cur := verts[best]
	next := verts[(best+1)%n]

	px, py := prev.Float64()
	cx, cy := cur.Float64()
	nx, ny := next.Float64()

	v1 := ggeom.ApproxVec2(px, py)
	v2 := ggeom.ApproxVec2(cx, cy)
	v3 := ggeom.ApproxVec2(nx, ny)

	// ClockOrientation returns -1 for CCW (left turn) at the bottommost
	// vertex of a simple polygon, 1 for CW.
	return ggeom.ClockOrientation(v1, v2, v3) < 0
}
