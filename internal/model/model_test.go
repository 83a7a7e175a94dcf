package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/state"
)

func squareHole(side float64) geometry.SimplePolygon {
	return geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(side, 0),
		geometry.NewPoint(side, side),
		geometry.NewPoint(0, side),
	}}
}

func squareAt(x0, y0, side float64) geometry.SimplePolygon {
	return geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(x0, y0),
		geometry.NewPoint(x0+side, y0),
		geometry.NewPoint(x0+side, y0+side),
		geometry.NewPoint(x0, y0+side),
	}}
}

// TestSheetAddHolesReplacesNotAppends covers spec.md §6's
// sheet_add_holes contract: it replaces the sheet's hole list.
func TestSheetAddHolesReplacesNotAppends(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100}
	st := state.New()

	SheetAddHoles(&sheet, []geometry.PolygonWithHoles{{Outer: squareHole(10)}}, st)
	assert.Len(t, sheet.Holes, 1)

	SheetAddHoles(&sheet, []geometry.PolygonWithHoles{{Outer: squareHole(10)}, {Outer: squareHole(20)}}, st)
	assert.Len(t, sheet.Holes, 2)
}

// TestSheetAddHolesIsIdempotent: calling it twice with the same holes
// must leave the sheet in the same state, not double the hole list.
func TestSheetAddHolesIsIdempotent(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100}
	st := state.New()
	holes := []geometry.PolygonWithHoles{{Outer: squareHole(10)}, {Outer: squareHole(20)}}

	SheetAddHoles(&sheet, holes, st)
	once := append([]geometry.PolygonWithHoles{}, sheet.Holes...)
	SheetAddHoles(&sheet, holes, st)

	assert.Equal(t, once, sheet.Holes)
	assert.Len(t, sheet.Holes, 2)
}

func TestNewPartAssignsDistinctIDs(t *testing.T) {
	a := NewPart(geometry.PolygonWithHoles{Outer: squareHole(10)})
	b := NewPart(geometry.PolygonWithHoles{Outer: squareHole(10)})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSheetBoundaryPunchesOutHoles(t *testing.T) {
	sheet := Sheet{Width: 100, Height: 100}
	SheetAddHoles(&sheet, []geometry.PolygonWithHoles{{Outer: squareHole(10)}}, state.New())

	// The hole sits in the sheet's corner, so cutting it out leaves a
	// single L-shaped region with no interior hole.
	boundary := sheet.Boundary()
	require.Len(t, boundary, 1)
	require.Empty(t, boundary[0].Holes)
	assert.False(t, boundary.ContainsPoint(geometry.NewPoint(5, 5)))
}

// TestSheetBoundaryPreservesIslandInsideForbiddenRegion covers the
// reason Sheet.Holes holds PolygonWithHoles rather than hole-free
// SimplePolygon: a forbidden region shaped like a donut (e.g. a bracket
// footprint) leaves its own interior hole usable.
func TestSheetBoundaryPreservesIslandInsideForbiddenRegion(t *testing.T) {
	donut := geometry.PolygonWithHoles{
		Outer: squareAt(30, 30, 40),
		Holes: []geometry.SimplePolygon{squareAt(45, 45, 10)},
	}
	sheet := Sheet{Width: 100, Height: 100}
	SheetAddHoles(&sheet, []geometry.PolygonWithHoles{donut}, state.New())

	boundary := sheet.Boundary()
	assert.True(t, boundary.ContainsPoint(geometry.NewPoint(50, 50)), "island inside the forbidden region should stay usable")
	assert.False(t, boundary.ContainsPoint(geometry.NewPoint(35, 35)), "the forbidden ring itself should not be usable")
	assert.True(t, boundary.ContainsPoint(geometry.NewPoint(5, 5)), "area outside the forbidden region should stay usable")
}
