package boolalg

import (
	"github.com/nestcore/nestcore/internal/geometry"
)

// Set is a collection of disjoint PolygonWithHoles components, the Go
// analogue of CGAL's Polygon_set_2. Candidate-boundary computation needs
// this rather than a single PolygonWithHoles because subtracting a union
// of NFPs from a sheet boundary can legitimately disconnect the remaining
// feasible region into several pieces.
type Set []geometry.PolygonWithHoles

// FromPolygon lifts a single PolygonWithHoles into a one-component Set.
// EntirePlane lifts to a Set that every membership test treats as
// covering everything; see geometry.EntirePlane's doc comment.
func FromPolygon(p geometry.PolygonWithHoles) Set {
	if p.IsEmpty() {
		return nil
	}
	return Set{p}
}

// ContainsPoint reports whether pt lies in any component of s.
func (s Set) ContainsPoint(pt geometry.Point) bool {
	for _, c := range s {
		if c.IsEntirePlane() {
			return true
		}
		if c.ContainsPoint(pt) {
			return true
		}
	}
	return false
}

// Union returns the union of a and b as a new Set. The common case this
// is exercised on — unioning the hole-free convex pieces a Minkowski sum
// decomposes into, per SPEC_FULL.md's NFP module — is handled exactly;
// unioning two multi-hole components is handled by the same outer-loop
// merge rule, with a's holes carried through when they survive outside
// b's outer loop (documented simplification: a hole that straddles b's
// boundary rather than lying fully inside or outside it is kept, which
// can leave a sliver of b's area falsely excluded — acceptable here since
// every Minkowski-sum piece fed into Union is hole-free).
func Union(a, b Set) Set {
	if containsEntirePlane(a) || containsEntirePlane(b) {
		return Set{geometry.EntirePlane}
	}
	acc := append(Set{}, a...)
	for _, comp := range b {
		acc = unionOne(acc, comp)
	}
	return acc
}

func containsEntirePlane(s Set) bool {
	for _, c := range s {
		if c.IsEntirePlane() {
			return true
		}
	}
	return false
}

func unionOne(acc Set, b geometry.PolygonWithHoles) Set {
	if len(acc) == 0 {
		return Set{b}
	}

	var merged geometry.PolygonWithHoles
	mergedSet := false
	var out Set

	for _, a := range acc {
		if mergedSet || !bboxesOverlap(a, b) {
			out = append(out, a)
			continue
		}
		loops := clipSimple(a.Outer, b.Outer, opUnion)
		if len(loops) != 1 {
			// Disjoint after all (touching bboxes, not shapes): keep both.
			out = append(out, a)
			continue
		}
		newOuter := loops[0].OrientedCCW()
		holes := carryHoles(a.Holes, newOuter, b.Outer)
		merged = geometry.PolygonWithHoles{Outer: newOuter, Holes: holes}
		mergedSet = true
	}

	if mergedSet {
		out = append(out, merged)
		return out
	}
	return append(out, b)
}

// carryHoles keeps each hole of the original component that still lies
// outside the newly unioned-in piece, i.e. is still a genuine void in the
// merged shape.
func carryHoles(holes []geometry.SimplePolygon, newOuter, addedOuter geometry.SimplePolygon) []geometry.SimplePolygon {
	var out []geometry.SimplePolygon
	for _, h := range holes {
		if !addedOuter.ContainsPoint(h.At(0)) {
			out = append(out, h)
		}
	}
	return out
}

// Difference returns a minus b. b's components are treated as hole-free
// subtrahends, matching how candidate.Set.Points() always subtracts a
// union of NFPs (themselves hole-free Minkowski-sum pieces) from a
// boundary.
func Difference(a, b Set) Set {
	if containsEntirePlane(b) {
		return nil
	}
	out := append(Set{}, a...)
	for _, sub := range b {
		out = differenceOne(out, sub)
	}
	return out
}

func differenceOne(a Set, b geometry.PolygonWithHoles) Set {
	var out Set
	for _, comp := range a {
		if comp.IsEntirePlane() {
			// Whole-plane minus a bounded region: represent as the
			// complement by punching b as a hole is not expressible in a
			// single PolygonWithHoles; callers of candidate.Set never hit
			// this path since the boundary operand is always bounded.
			out = append(out, comp)
			continue
		}
		if !bboxesOverlap(comp, b) {
			out = append(out, comp)
			continue
		}
		loops := clipSimple(comp.Outer, b.Outer, opDifference)

		var ccwLoops, cwLoops []geometry.SimplePolygon
		for _, l := range loops {
			if l.IsCCW() {
				ccwLoops = append(ccwLoops, l)
			} else {
				cwLoops = append(cwLoops, l)
			}
		}
		for _, l := range ccwLoops {
			holes := carryHoles(comp.Holes, l, b.Outer)
			for _, cw := range cwLoops {
				if l.ContainsPoint(cw.At(0)) {
					holes = append(holes, cw)
				}
			}
			out = append(out, geometry.PolygonWithHoles{Outer: l, Holes: holes})
		}
	}
	return out
}

func bboxesOverlap(a geometry.PolygonWithHoles, bOuter interface{ Bbox() geometry.Bbox }) bool {
	ab := a.Bbox()
	bb := bOuter.Bbox()
	return ab.MinX.Cmp(&bb.MaxX) <= 0 && bb.MinX.Cmp(&ab.MaxX) <= 0 &&
		ab.MinY.Cmp(&bb.MaxY) <= 0 && bb.MinY.Cmp(&ab.MaxY) <= 0
}
