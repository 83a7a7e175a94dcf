// Package model holds the plain data types the packing driver operates
// on: parts to be nested, the sheets they're nested into, and the
// placements the driver produces. Grounded on the teacher's
// internal/model package shape (uuid-keyed parts, Sheet/Placement/
// SheetResult/OptimizeResult naming) with every CNC/GCode-specific field
// stripped in favor of the polygon geometry this spec actually packs.
package model

import (
	"github.com/google/uuid"

	"github.com/nestcore/nestcore/internal/boolalg"
	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/state"
)

// Part is one polygon to be nested, identified by a stable ID so that
// Result.Placements and Result.UnplacedPartIDs can reference it without
// carrying the geometry around a second time.
type Part struct {
	ID      string
	Polygon geometry.PolygonWithHoles
}

// NewPart wraps polygon with a freshly generated ID, mirroring
// model.NewPart's use of uuid.New() for part identity.
func NewPart(polygon geometry.PolygonWithHoles) Part {
	return Part{ID: uuid.New().String(), Polygon: polygon}
}

// Sheet is a rectangular stock sheet, optionally with fixed forbidden
// regions (e.g. pre-drilled mounting points, a donut-shaped bracket
// footprint with its own usable island) that placed parts must avoid.
// Each hole is a PolygonWithHoles rather than a hole-free SimplePolygon
// so a forbidden region can itself have a hole in it, per spec.md's
// "a list of PolygonWithHoles representing forbidden regions."
type Sheet struct {
	Width, Height float64
	Holes         []geometry.PolygonWithHoles
}

// SheetAddHoles replaces sheet's hole list with polygons, the Go
// equivalent of the spec's external sheet_add_holes operation.
// Replaces rather than appends: calling it twice with the same holes
// must leave the sheet in the same state, not double its hole list.
// It normalizes each hole's orientation (outer CCW, its own holes CW)
// and pre-interns the origin-shifted form into st's canonical table —
// the same shift internal/pack's initSheet applies before registering a
// hole as an obstacle — so packing a sheet reuses this handle instead of
// re-interning an identical shape. It never touches the NFP cache;
// nothing about a hole's geometry is known to produce an NFP until
// internal/pack actually runs a placement against it.
func SheetAddHoles(sheet *Sheet, polygons []geometry.PolygonWithHoles, st *state.State) {
	normalized := make([]geometry.PolygonWithHoles, len(polygons))
	for i, p := range polygons {
		normalized[i] = normalizeHoleOrientation(p)
	}
	sheet.Holes = normalized
	for _, p := range sheet.Holes {
		st.Canonicalize(originShift(p))
	}
}

// normalizeHoleOrientation forces a forbidden region's outer boundary
// CCW and its own holes (usable islands inside it) CW, mirroring the
// orientation convention geometry.PolygonWithHoles documents for every
// other polygon this module handles.
func normalizeHoleOrientation(p geometry.PolygonWithHoles) geometry.PolygonWithHoles {
	if p.IsEmpty() || p.IsEntirePlane() {
		return p
	}
	holes := make([]geometry.SimplePolygon, len(p.Holes))
	for i, h := range p.Holes {
		holes[i] = h.OrientedCW()
	}
	return geometry.PolygonWithHoles{Outer: p.Outer.OrientedCCW(), Holes: holes}
}

// originShift translates p so its first outer-boundary vertex sits at
// the origin, the same shift pack.shiftToOrigin applies — duplicated
// here rather than shared, since internal/pack already imports
// internal/model and a shared helper would need to live somewhere both
// sides could reach without a cycle.
func originShift(p geometry.PolygonWithHoles) geometry.PolygonWithHoles {
	if p.IsEmpty() || p.IsEntirePlane() || len(p.Outer.Verts) == 0 {
		return p
	}
	return p.Transformed(geometry.Translation(p.Outer.At(0).Neg()))
}

// Boundary returns the sheet's usable region: its rectangular extent
// with every registered hole's area subtracted. Returned as a
// boolalg.Set rather than a single PolygonWithHoles because punching
// several forbidden regions out of one rectangle can disconnect the
// remaining usable area into multiple pieces, which a single
// PolygonWithHoles cannot represent.
//
// boolalg.Difference treats its subtrahend components as hole-free (see
// its doc comment), so a forbidden region's own holes — usable islands
// inside it — can't be carried through a single Difference call. Instead
// each hole's outer boundary is subtracted as a solid obstacle and its
// own holes are appended afterward as separate usable components.
func (s Sheet) Boundary() boolalg.Set {
	outer := geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(s.Width, 0),
		geometry.NewPoint(s.Width, s.Height),
		geometry.NewPoint(0, s.Height),
	}}
	rect := boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: outer})

	var forbidden, islands boolalg.Set
	for _, h := range s.Holes {
		forbidden = boolalg.Union(forbidden, boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: h.Outer}))
		for _, island := range h.Holes {
			islands = boolalg.Union(islands, boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: island.OrientedCCW()}))
		}
	}
	// Islands lie inside a subtracted outer boundary, so they are disjoint
	// from the difference; Union would fold them into the rectangle's
	// outer loop and drop them.
	return append(boolalg.Difference(rect, forbidden), islands...)
}

// Placement records where one part ended up: which sheet, under what
// rigid transform, and at which of the uniformly sampled rotation
// angles. Rotation is in degrees — one of {0, 360/R, ..., (R-1)*360/R}
// for the Options.Rotations value R the placement was produced under —
// matching spec.md §6's external Transform.rotate contract.
type Placement struct {
	PartID     string
	SheetIndex int
	Transform  geometry.Transform
	Rotation   float64
}

// SheetResult collects every placement made onto one sheet instance.
type SheetResult struct {
	Placements []Placement
}
