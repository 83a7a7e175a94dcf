// Package candidate generates the finite set of reference-point positions
// worth trying for a part's next placement, following primitives.hpp's
// CandidatePoints::get_points(). The feasible region for a placement is
// always a polygon (or polygon set): the sheet/IFP boundary with the
// union of every already-placed shape's NFP removed. Only that region's
// vertices are ever worth testing, since the incremental bounding-box
// heuristic is piecewise linear and its optimum over a polygon always
// lands on a vertex.
package candidate

import (
	"github.com/nestcore/nestcore/internal/boolalg"
	"github.com/nestcore/nestcore/internal/geometry"
)

// Set accumulates the boundary (an IFP, either the sheet's rectangular
// IFP or a general polygon boundary) and every NFP against an
// already-placed shape, then reduces them to candidate points.
type Set struct {
	boundary    boolalg.Set
	hasBoundary bool
	nfps        boolalg.Set
}

// NewSet returns an empty Set with no boundary and no NFPs registered.
func NewSet() *Set {
	return &Set{}
}

// SetBoundary installs the feasible-region boundary (the sheet's IFP for
// this part at this rotation).
func (s *Set) SetBoundary(boundary boolalg.Set) {
	s.boundary = boundary
	s.hasBoundary = true
}

// AddNFP registers one already-placed shape's NFP, to be excluded from
// the feasible region.
func (s *Set) AddNFP(nfp boolalg.Set) {
	s.nfps = boolalg.Union(s.nfps, nfp)
}

// Points returns every vertex of the feasible region: the boundary minus
// the union of every registered NFP, when a boundary was set, or the
// union of NFPs alone otherwise. The no-boundary branch mirrors
// primitives.hpp's get_points() faithfully but is never exercised by
// pack.Run, which always calls SetBoundary with the sheet's IFP before
// adding any NFPs.
func (s *Set) Points() []geometry.Point {
	var feasible boolalg.Set
	if s.hasBoundary {
		if len(s.boundary) == 0 {
			return nil
		}
		feasible = boolalg.Difference(s.boundary, s.nfps)
	} else {
		feasible = s.nfps
	}
	return verticesOf(feasible)
}

func verticesOf(set boolalg.Set) []geometry.Point {
	var pts []geometry.Point
	for _, comp := range set {
		if comp.IsEntirePlane() || comp.IsEmpty() {
			continue
		}
		pts = append(pts, comp.Outer.Verts...)
		for _, h := range comp.Holes {
			pts = append(pts, h.Verts...)
		}
	}
	return pts
}
