package geometry

import "math/big"

// SimplePolygon is a closed polygonal loop with no self-intersections,
// stored as an ordered vertex list (no repeated closing vertex). Positive
// orientation (CCW) is the convention used for outer boundaries; hole
// loops are stored CW. Callers that build a SimplePolygon from arbitrary
// input should call NormalizeLoop to enforce this.
type SimplePolygon struct {
	Verts []Point
}

// NewSimplePolygon wraps a vertex slice. The slice is retained, not copied.
func NewSimplePolygon(verts []Point) SimplePolygon {
	return SimplePolygon{Verts: verts}
}

// Len returns the vertex count.
func (s SimplePolygon) Len() int { return len(s.Verts) }

// At returns vertex i modulo the vertex count, supporting indices outside
// [0, Len) so callers can walk the loop without manual wraparound.
func (s SimplePolygon) At(i int) Point {
	n := len(s.Verts)
	return s.Verts[((i%n)+n)%n]
}

// SignedArea2 returns twice the signed area of the polygon via the exact
// shoelace formula. Positive for CCW loops, negative for CW.
func (s SimplePolygon) SignedArea2() *big.Rat {
	sum := new(big.Rat)
	n := len(s.Verts)
	for i := 0; i < n; i++ {
		a := s.Verts[i]
		b := s.Verts[(i+1)%n]
		sum.Add(sum, a.Cross(b))
	}
	return sum
}

// IsCCW reports whether the loop winds counter-clockwise.
func (s SimplePolygon) IsCCW() bool {
	return s.SignedArea2().Sign() > 0
}

// Reversed returns the loop with vertex order flipped, without mutating s.
func (s SimplePolygon) Reversed() SimplePolygon {
	n := len(s.Verts)
	out := make([]Point, n)
	for i, v := range s.Verts {
		out[n-1-i] = v
	}
	return SimplePolygon{Verts: out}
}

// OrientedCCW returns s if already CCW, or its reversal otherwise.
func (s SimplePolygon) OrientedCCW() SimplePolygon {
	if s.IsCCW() {
		return s
	}
	return s.Reversed()
}

// OrientedCW returns s if already CW, or its reversal otherwise.
func (s SimplePolygon) OrientedCW() SimplePolygon {
	if !s.IsCCW() {
		return s
	}
	return s.Reversed()
}

// Bbox returns the axis-aligned bounding box of the loop.
func (s SimplePolygon) Bbox() Bbox {
	return BboxOfPoints(s.Verts)
}

// Translate returns a copy of s shifted by d.
func (s SimplePolygon) Translate(d Point) SimplePolygon {
	out := make([]Point, len(s.Verts))
	for i, v := range s.Verts {
		out[i] = v.Add(d)
	}
	return SimplePolygon{Verts: out}
}

// Transformed applies t to every vertex.
func (s SimplePolygon) Transformed(t Transform) SimplePolygon {
	out := make([]Point, len(s.Verts))
	for i, v := range s.Verts {
		out[i] = t.Apply(v)
	}
	return SimplePolygon{Verts: out}
}

// ContainsPoint reports whether p lies inside s, using the exact
// ray-casting (even-odd) rule over rational arithmetic. Points exactly on
// an edge get no special treatment: the half-open crossing test decides
// them by the edge's position relative to p (for an axis-aligned square,
// points on its bottom and left edges are reported as contained, points
// on its top and right edges are not).
func (s SimplePolygon) ContainsPoint(p Point) bool {
	n := len(s.Verts)
	inside := false
	for i := 0; i < n; i++ {
		a := s.Verts[i]
		b := s.Verts[(i+1)%n]
		if rayCrossesEdge(p, a, b) {
			inside = !inside
		}
	}
	return inside
}

// rayCrossesEdge reports whether a horizontal ray cast from p in the +X
// direction crosses edge a-b, using exact rational comparisons throughout.
func rayCrossesEdge(p, a, b Point) bool {
	ay := a.Y.Cmp(&p.Y)
	by := b.Y.Cmp(&p.Y)
	if (ay > 0) == (by > 0) {
		return false
	}
	// x at the intersection of a-b with the horizontal line y = p.Y:
	// x = a.X + (p.Y - a.Y) * (b.X - a.X) / (b.Y - a.Y)
	var dy, dx, t, x big.Rat
	dy.Sub(&b.Y, &a.Y)
	dx.Sub(&b.X, &a.X)
	t.Sub(&p.Y, &a.Y)
	t.Mul(&t, &dx)
	t.Quo(&t, &dy)
	x.Add(&a.X, &t)
	return x.Cmp(&p.X) > 0
}

// PolygonWithHoles is an outer boundary loop plus zero or more hole loops
// strictly nested inside it. A nil Outer with no holes denotes the empty
// set; EntirePlane is the distinguished sentinel for CGAL's "empty
// Polygon_with_holes_2 represents everything" convention — see its doc
// comment for why that convention has to be carried over rather than
// collapsed into the ordinary empty set.
type PolygonWithHoles struct {
	Outer SimplePolygon
	Holes []SimplePolygon

	entirePlane bool
}

// EntirePlane is the sentinel PolygonWithHoles value standing for the
// unbounded complement of nothing, i.e. every point in the plane.
//
// CGAL's Polygon_set_2 represents a set by a list of Polygon_with_holes_2,
// and the *empty* list is overloaded to mean "the whole plane" whenever it
// arises from a complement/difference operation rather than from an
// explicit empty region. no_fit_polygon.hpp's interior_nfp relies on this:
// a sheet boundary IFP that turns out empty because the part doesn't fit
// is a genuinely empty result, but a freshly-complemented region before
// any part has been subtracted from it is "everything". We keep the same
// two-valued ambiguity the original carries, rather than silently
// resolving it one way, and require every boolean-set consumer to check
// IsEntirePlane before treating Outer as meaningful.
var EntirePlane = PolygonWithHoles{entirePlane: true}

// IsEntirePlane reports whether p is the EntirePlane sentinel.
func (p PolygonWithHoles) IsEntirePlane() bool {
	return p.entirePlane
}

// IsEmpty reports whether p is the empty set (not EntirePlane, no outer
// boundary).
func (p PolygonWithHoles) IsEmpty() bool {
	return !p.entirePlane && len(p.Outer.Verts) == 0
}

// Bbox returns the bounding box of the outer loop. Undefined for
// EntirePlane and the empty set; callers must check those first.
func (p PolygonWithHoles) Bbox() Bbox {
	return p.Outer.Bbox()
}

// Transformed applies t to the outer loop and every hole.
func (p PolygonWithHoles) Transformed(t Transform) PolygonWithHoles {
	if p.entirePlane {
		return p
	}
	holes := make([]SimplePolygon, len(p.Holes))
	for i, h := range p.Holes {
		holes[i] = h.Transformed(t)
	}
	return PolygonWithHoles{Outer: p.Outer.Transformed(t), Holes: holes}
}

// ContainsPoint reports whether p lies inside the outer loop and outside
// every hole.
func (p PolygonWithHoles) ContainsPoint(pt Point) bool {
	if p.entirePlane {
		return true
	}
	if p.IsEmpty() || !p.Outer.ContainsPoint(pt) {
		return false
	}
	for _, h := range p.Holes {
		if h.ContainsPoint(pt) {
			return false
		}
	}
	return true
}
