package pack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/model"
	"github.com/nestcore/nestcore/internal/state"
)

func square(side float64) geometry.PolygonWithHoles {
	return geometry.PolygonWithHoles{Outer: geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(side, 0),
		geometry.NewPoint(side, side),
		geometry.NewPoint(0, side),
	}}}
}

func rect(w, h float64) geometry.PolygonWithHoles {
	return geometry.PolygonWithHoles{Outer: geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(w, 0),
		geometry.NewPoint(w, h),
		geometry.NewPoint(0, h),
	}}}
}

func TestRunPlacesPartsThatFit(t *testing.T) {
	sheets := []model.Sheet{{Width: 20, Height: 20}}
	parts := []model.Part{
		model.NewPart(square(5)),
		model.NewPart(square(5)),
	}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	require.NoError(t, err)
	assert.Empty(t, result.UnplacedPartIDs)
	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 2)
}

func TestRunReportsUnplacedWhenTooBig(t *testing.T) {
	sheets := []model.Sheet{{Width: 10, Height: 10}}
	parts := []model.Part{model.NewPart(square(20))}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	require.NoError(t, err)
	assert.Equal(t, []string{parts[0].ID}, result.UnplacedPartIDs)
}

// TestRunStopsEarlyWithoutPartialSolution is spec.md §8's "Partial flag
// contract" property and §7's "Infeasible" outcome: with
// partial_solution == false, any unplaced part discards every placement
// already committed and returns a globally empty result, not a result
// that merely records the failure alongside whatever got placed first.
func TestRunStopsEarlyWithoutPartialSolution(t *testing.T) {
	sheets := []model.Sheet{{Width: 10, Height: 10}}
	parts := []model.Part{model.NewPart(square(1)), model.NewPart(square(20))}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}

func TestRunRejectsZeroRotations(t *testing.T) {
	_, err := Run(context.Background(), nil, nil, state.New(), Options{Rotations: 0})
	assert.Error(t, err)
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sheets := []model.Sheet{{Width: 10, Height: 10}}
	parts := []model.Part{model.NewPart(square(1))}

	_, err := Run(ctx, sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	assert.Error(t, err)
}

// TestScenarioSingleRectangleSingleEmptySheet is spec.md §8 scenario 1.
func TestScenarioSingleRectangleSingleEmptySheet(t *testing.T) {
	sheets := []model.Sheet{{Width: 300, Height: 300}}
	parts := []model.Part{model.NewPart(square(100))}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	require.Empty(t, result.UnplacedPartIDs)
	require.Len(t, result.Sheets[0].Placements, 1)

	p := result.Sheets[0].Placements[0]
	x, y := p.Transform.Translate.Float64()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	assert.InDelta(t, 0, p.Rotation, 1e-9)
}

// TestScenarioOversizePart is spec.md §8 scenario 2.
func TestScenarioOversizePart(t *testing.T) {
	sheets := []model.Sheet{{Width: 50, Height: 50}}
	parts := []model.Part{model.NewPart(square(100))}

	partial, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	require.NoError(t, err)
	assert.Equal(t, []string{parts[0].ID}, partial.UnplacedPartIDs)
	assert.Empty(t, partial.Sheets[0].Placements)

	infeasible, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	assert.Equal(t, Result{}, infeasible)
}

// TestScenarioSheetWithCornerHole is spec.md §8 scenario 3: a 100x100
// part on a 300x300 sheet with a 100x100 hole at the origin corner must
// land at (100,0) rather than (0,100). Both clear the hole and both score
// exactly 30001 (bbox terms 20000+10000 plus a 0.01*(x+y) tiebreak of 1);
// the driver keeps the first candidate on a tie, and the feasible
// region's vertices are enumerated starting at (100,0).
func TestScenarioSheetWithCornerHole(t *testing.T) {
	st := state.New()
	sheet := model.Sheet{Width: 300, Height: 300}
	model.SheetAddHoles(&sheet, []geometry.PolygonWithHoles{square(100)}, st)
	sheets := []model.Sheet{sheet}
	parts := []model.Part{model.NewPart(square(100))}

	result, err := Run(context.Background(), sheets, parts, st, Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	require.Len(t, result.Sheets[0].Placements, 1)

	x, y := result.Sheets[0].Placements[0].Transform.Translate.Float64()
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

// TestScenarioDecreasingOrder is spec.md §8 scenario 4: a 200x200 part
// commits before a 20x20 part regardless of input order, and the larger
// part takes the origin.
func TestScenarioDecreasingOrder(t *testing.T) {
	sheets := []model.Sheet{{Width: 300, Height: 300}}
	small := model.NewPart(square(20))
	big := model.NewPart(square(200))
	parts := []model.Part{small, big}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	require.Len(t, result.Sheets[0].Placements, 2)

	placements := result.Sheets[0].Placements
	assert.Equal(t, big.ID, placements[0].PartID)
	assert.Equal(t, small.ID, placements[1].PartID)

	bx, by := placements[0].Transform.Translate.Float64()
	assert.InDelta(t, 0, bx, 1e-9)
	assert.InDelta(t, 0, by, 1e-9)

	sx, sy := placements[1].Transform.Translate.Float64()
	assert.InDelta(t, 200, sx, 1e-9)
	assert.InDelta(t, 0, sy, 1e-9)
}

// TestScenarioRotationRequired is spec.md §8 scenario 5: a 40x80 part on
// a 100x50 sheet has no feasible placement at rotations=1 (axis-aligned)
// but fits once a 90-degree sample is available.
func TestScenarioRotationRequired(t *testing.T) {
	sheets := []model.Sheet{{Width: 100, Height: 50}}
	parts := []model.Part{model.NewPart(rect(40, 80))}

	noRot, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	require.NoError(t, err)
	assert.Equal(t, []string{parts[0].ID}, noRot.UnplacedPartIDs)

	withRot, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)
	assert.Empty(t, withRot.UnplacedPartIDs)
}

// TestScenarioTwoSheetsSpill is spec.md §8 scenario 6: neither 90x90
// part fits alongside the other on a 100x100 sheet, so the second spills
// onto the second sheet.
func TestScenarioTwoSheetsSpill(t *testing.T) {
	sheets := []model.Sheet{{Width: 100, Height: 100}, {Width: 100, Height: 100}}
	parts := []model.Part{model.NewPart(square(90)), model.NewPart(square(90))}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: false})
	require.NoError(t, err)
	require.Len(t, result.Sheets, 2)
	assert.Len(t, result.Sheets[0].Placements, 1)
	assert.Len(t, result.Sheets[1].Placements, 1)
}

// TestRunRotationIsInDegrees is spec.md §8's "Rotation sampling"
// property: every committed Transform.rotate lies in
// {0, 360/R, ..., (R-1)*360/R} degrees, not radians.
func TestRunRotationIsInDegrees(t *testing.T) {
	sheets := []model.Sheet{{Width: 100, Height: 50}}
	parts := []model.Part{model.NewPart(rect(40, 80))}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)
	require.Len(t, result.Sheets[0].Placements, 1)

	rotation := result.Sheets[0].Placements[0].Rotation
	allowed := []float64{0, 90, 180, 270}
	found := false
	for _, a := range allowed {
		if rotation == a {
			found = true
			break
		}
	}
	assert.True(t, found, "rotation %v degrees not in allowed grid %v", rotation, allowed)
}

// TestRunIsDeterministic is spec.md §8's "Determinism" property: two
// runs over equal inputs with fresh State produce equal outputs.
func TestRunIsDeterministic(t *testing.T) {
	sheets := func() []model.Sheet { return []model.Sheet{{Width: 300, Height: 300}} }
	parts := func() []model.Part {
		return []model.Part{
			{ID: "a", Polygon: square(20)},
			{ID: "b", Polygon: square(200)},
			{ID: "c", Polygon: square(50)},
		}
	}

	first, err := Run(context.Background(), sheets(), parts(), state.New(), Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)
	second, err := Run(context.Background(), sheets(), parts(), state.New(), Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestRunPlacementsDoNotOverlap is spec.md §8's "No overlap" property:
// for axis-aligned squares at rotations=1, bbox overlap is exact polygon
// overlap, so a pairwise bbox check is a faithful proxy.
func TestRunPlacementsDoNotOverlap(t *testing.T) {
	sheets := []model.Sheet{{Width: 100, Height: 100}}
	parts := []model.Part{
		model.NewPart(square(40)),
		model.NewPart(square(40)),
		model.NewPart(square(40)),
	}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 1, PartialSolution: true})
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)

	type box struct{ x0, y0, x1, y1 float64 }
	var boxes []box
	for _, p := range result.Sheets[0].Placements {
		x, y := p.Transform.Translate.Float64()
		boxes = append(boxes, box{x, y, x + 40, y + 40})
	}

	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			overlap := a.x0 < b.x1 && b.x0 < a.x1 && a.y0 < b.y1 && b.y0 < a.y1
			assert.False(t, overlap, "placements %d and %d overlap", i, j)
		}
	}
}

// TestRunPlacementsDoNotOverlapWithRotation exercises nfp.Cached against
// an already-placed shape at a non-zero rotation, not just
// rotation-vs-empty-set: with only one shape on the sheet, Cached's
// rotA argument is always the first part's rotation, but a regression
// that mis-converts rotation units there would still need two placed
// shapes to produce a visibly wrong (overlapping) candidate, since a
// lone wrong-angle NFP against an empty sheet can't collide with
// anything.
func TestRunPlacementsDoNotOverlapWithRotation(t *testing.T) {
	sheets := []model.Sheet{{Width: 120, Height: 120}}
	parts := []model.Part{
		model.NewPart(rect(60, 20)),
		model.NewPart(rect(60, 20)),
		model.NewPart(rect(60, 20)),
	}

	result, err := Run(context.Background(), sheets, parts, state.New(), Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.GreaterOrEqual(t, len(result.Sheets[0].Placements), 2)

	type box struct{ x0, y0, x1, y1 float64 }
	var boxes []box
	for _, p := range result.Sheets[0].Placements {
		bbox := rect(60, 20).Outer.Transformed(p.Transform).Bbox()
		x0, _ := bbox.MinX.Float64()
		y0, _ := bbox.MinY.Float64()
		x1, _ := bbox.MaxX.Float64()
		y1, _ := bbox.MaxY.Float64()
		boxes = append(boxes, box{x0, y0, x1, y1})
	}

	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			overlap := a.x0 < b.x1 && b.x0 < a.x1 && a.y0 < b.y1 && b.y0 < a.y1
			assert.False(t, overlap, "placements %d and %d overlap", i, j)
		}
	}
}

// TestRunCacheInvarianceAcrossUnrelatedPriorEntries is spec.md §8's
// "Cache invariance" property: placements don't change depending on
// whether State is fresh or already holds unrelated NFP entries.
func TestRunCacheInvarianceAcrossUnrelatedPriorEntries(t *testing.T) {
	sheets := []model.Sheet{{Width: 300, Height: 300}}
	parts := []model.Part{
		{ID: "a", Polygon: square(20)},
		{ID: "b", Polygon: square(200)},
	}

	freshState := state.New()
	fresh, err := Run(context.Background(), sheets, parts, freshState, Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)

	primedState := state.New()
	_, err = Run(context.Background(), []model.Sheet{{Width: 500, Height: 500}},
		[]model.Part{{ID: "unrelated", Polygon: square(77)}}, primedState, Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)
	primed, err := Run(context.Background(), sheets, parts, primedState, Options{Rotations: 4, PartialSolution: true})
	require.NoError(t, err)

	assert.Equal(t, fresh, primed)
}
