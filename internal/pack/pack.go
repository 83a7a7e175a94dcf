// Package pack implements the placement driver: given a set of sheets
// and a set of polygons, decide where (if anywhere) each polygon goes.
// Grounded on the teacher's internal/engine.Optimizer — the
// per-stock-sheet loop and rotation-trial structure of
// optimizer.go's optimizeGuillotine/packSheet carry over directly — with
// the actual placement test replaced end to end by the spec's NFP/IFP
// candidate-point search in place of optimizer.go's guillotine rectangle
// splitting. The teacher's metaheuristic optimizer (engine/genetic.go) is
// not carried over: spec.md's Non-goals explicitly rule out
// optimal-or-near-optimal, metaheuristic nesting in favor of a
// deterministic greedy heuristic.
package pack

import (
	"context"
	"fmt"
	"math"

	"github.com/nestcore/nestcore/internal/boolalg"
	"github.com/nestcore/nestcore/internal/candidate"
	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/model"
	"github.com/nestcore/nestcore/internal/nfp"
	"github.com/nestcore/nestcore/internal/state"
)

// Options configures one Run.
type Options struct {
	// Rotations is the number of uniformly spaced rotation angles tried
	// per part, sampled as i*2*pi/Rotations for i in [0, Rotations). Must
	// be at least 1.
	Rotations int

	// PartialSolution, when true, lets Run skip a part that doesn't fit
	// anywhere and continue with the rest, recording it in
	// Result.UnplacedPartIDs. When false, Run stops at the first part
	// that fails to place and returns an empty Result, discarding every
	// placement already committed.
	PartialSolution bool
}

// Result is the outcome of one Run.
type Result struct {
	Sheets []model.SheetResult

	// UnplacedPartIDs mirrors the teacher's OptimizeResult.
	// UnplacedParts: every part ID that never found a position, in the
	// order packing was attempted. Supplementing this field onto the
	// spec's placement driver output was not itself named in spec.md's
	// DATA MODEL, but every non-goal-respecting partial-solution run
	// needs some way to report what didn't fit, and the teacher already
	// has the exact shape for it.
	UnplacedPartIDs []string
}

// transformedShape is one shape already committed to a sheet: either a
// placed part or one of the sheet's fixed holes, both of which later
// parts must avoid via the same NFP machinery.
type transformedShape struct {
	handle    *state.Handle
	transform geometry.Transform
	rotation  float64
	bbox      geometry.Bbox
}

// Run places every polygon in parts onto the given sheets, trying each
// sheet in order and, within a sheet, every rotation in Options.Rotations,
// scoring candidate positions by the incremental bounding-box heuristic
// plus a bottom-left tiebreak, exactly as packing.hpp's
// pack_polygons_ordered_first_fit does. Parts are attempted in decreasing
// bounding-box area, matching pack_decreasing's sort.
//
// ctx is checked once per part rather than at finer granularity: unlike a
// server request loop, nothing inside placing a single part blocks or
// suspends, so a per-part check gives callers prompt cancellation without
// adding overhead to the hot inner candidate-scoring loop.
func Run(ctx context.Context, sheets []model.Sheet, parts []model.Part, st *state.State, opts Options) (Result, error) {
	if opts.Rotations < 1 {
		return Result{}, fmt.Errorf("pack: Options.Rotations must be >= 1, got %d", opts.Rotations)
	}

	order := sortByDecreasingArea(parts)

	sheetShapes := make([][]transformedShape, len(sheets))
	sheetBBox := make([]IncrementalBBox, len(sheets))
	sheetResults := make([]model.SheetResult, len(sheets))
	sheetInit := make([]bool, len(sheets))

	var result Result
	infeasible := false

	for _, part := range order {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("pack: %w", err)
		}

		placed := placeOnePart(st, part, sheets, sheetShapes, sheetBBox, sheetResults, sheetInit, opts.Rotations)
		if !placed {
			result.UnplacedPartIDs = append(result.UnplacedPartIDs, part.ID)
			if !opts.PartialSolution {
				infeasible = true
				break
			}
		}
	}

	// partial_solution == false with any unplaced part discards every
	// placement already committed and returns a sentinel empty result —
	// callers tell "infeasible" from "zero parts" only by this contract,
	// per spec.md §4.5/§7.
	if infeasible {
		return Result{}, nil
	}

	result.Sheets = sheetResults
	return result, nil
}

func sortByDecreasingArea(parts []model.Part) []model.Part {
	out := append([]model.Part{}, parts...)
	type keyed struct {
		part model.Part
		a    float64
	}
	ks := make([]keyed, len(out))
	for i, p := range out {
		a := 0.0
		if !p.Polygon.IsEmpty() && !p.Polygon.IsEntirePlane() {
			a, _ = p.Polygon.Bbox().Area().Float64()
		}
		ks[i] = keyed{p, a}
	}
	for i := 1; i < len(ks); i++ {
		for j := i; j > 0 && ks[j].a > ks[j-1].a; j-- {
			ks[j], ks[j-1] = ks[j-1], ks[j]
		}
	}
	result := make([]model.Part, len(ks))
	for i, k := range ks {
		result[i] = k.part
	}
	return result
}

func placeOnePart(
	st *state.State,
	part model.Part,
	sheets []model.Sheet,
	sheetShapes [][]transformedShape,
	sheetBBox []IncrementalBBox,
	sheetResults []model.SheetResult,
	sheetInit []bool,
	rotations int,
) bool {
	partHandle := st.Canonicalize(originTranslated(part.Polygon))

	for sheetIdx, sheet := range sheets {
		if !sheetInit[sheetIdx] {
			initSheet(st, sheet, sheetShapes, sheetBBox, sheetIdx)
			sheetInit[sheetIdx] = true
		}

		best, bestScore, bestRotationDeg, found := bestPositionOnSheet(
			st, partHandle, sheet, sheetShapes[sheetIdx], &sheetBBox[sheetIdx], rotations,
		)
		if !found {
			continue
		}
		_ = bestScore

		transform := geometry.Rotation(degToRad(bestRotationDeg)).WithTranslate(best)
		rotatedOuter := partHandle.Polygon.Outer.Transformed(geometry.Rotation(degToRad(bestRotationDeg)))
		placedBbox := rotatedOuter.Translate(best).Bbox()

		sheetShapes[sheetIdx] = append(sheetShapes[sheetIdx], transformedShape{
			handle:    partHandle,
			transform: transform,
			rotation:  bestRotationDeg,
			bbox:      placedBbox,
		})
		sheetBBox[sheetIdx].Add(placedBbox, true)
		sheetResults[sheetIdx].Placements = append(sheetResults[sheetIdx].Placements, model.Placement{
			PartID:     part.ID,
			SheetIndex: sheetIdx,
			Transform:  transform,
			Rotation:   bestRotationDeg,
		})
		return true
	}
	return false
}

// initSheet registers every fixed hole of sheet as an already-placed
// shape, so later NFP lookups treat sheet holes exactly like
// already-placed parts — the same bookkeeping
// pack_polygons_ordered_first_fit performs lazily the first time a sheet
// is touched. Each hole is shifted to the origin before interning and
// registered with the compensating translation, per spec.md §4.5's
// "each hole is translated to origin, interned, then registered with the
// compensating translation so its NFP cache entry is reusable" — the
// same shift_to_zero/shift_back pattern packing.hpp applies, so two
// holes of identical shape (on this sheet or another) share one cache
// entry regardless of where they sit.
func initSheet(st *state.State, sheet model.Sheet, sheetShapes [][]transformedShape, sheetBBox []IncrementalBBox, idx int) {
	for _, hole := range sheet.Holes {
		bbox := hole.Bbox()
		shifted, origin := shiftToOrigin(hole)
		h := st.Canonicalize(shifted)
		sheetShapes[idx] = append(sheetShapes[idx], transformedShape{
			handle:    h,
			transform: geometry.Translation(origin),
			rotation:  0,
			bbox:      bbox,
		})
		sheetBBox[idx].Add(bbox, false)
	}
}

func bestPositionOnSheet(
	st *state.State,
	partHandle *state.Handle,
	sheet model.Sheet,
	placed []transformedShape,
	bbox *IncrementalBBox,
	rotations int,
) (geometry.Point, float64, float64, bool) {
	bestScore := math.Inf(1)
	var bestPos geometry.Point
	var bestRotDeg float64
	found := false

	for i := 0; i < rotations; i++ {
		angleDeg := float64(i) * 360 / float64(rotations)
		rotatedOuter := partHandle.Polygon.Outer.Transformed(geometry.Rotation(degToRad(angleDeg)))

		ifp := nfp.RectangularIFP(sheet.Width, sheet.Height, rotatedOuter)
		if ifp.IsEmpty() {
			continue
		}

		cset := candidate.NewSet()
		cset.SetBoundary(boolalg.FromPolygon(ifp))

		for _, shape := range placed {
			nfpSet := nfp.Cached(st, shape.handle, partHandle, shape.rotation, angleDeg, shape.transform.Translate)
			cset.AddNFP(nfpSet)
		}

		for _, p := range cset.Points() {
			px, py := p.Float64()
			candidateBbox := rotatedOuter.Translate(p).Bbox()
			score := bbox.EvalWith(candidateBbox, true) + 0.01*(px+py)
			if score < bestScore {
				bestScore = score
				bestPos = p
				bestRotDeg = angleDeg
				found = true
			}
		}
	}

	return bestPos, bestScore, bestRotDeg, found
}

// degToRad converts a rotation in degrees (the unit every external
// Transform.Rotation value is reported in, per spec.md §6) to radians
// (the unit geometry.Rotation's sin/cos construction needs).
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// originTranslated shifts p so its first outer vertex sits at the
// origin, matching pack_decreasing's normalization of every input
// polygon before it's handed to state.get_canonical_polygon — canonical
// identity is about shape, not absolute position, so two copies of the
// same part fed in at different starting offsets must still intern to
// the same handle.
func originTranslated(p geometry.PolygonWithHoles) geometry.PolygonWithHoles {
	shifted, _ := shiftToOrigin(p)
	return shifted
}

// shiftToOrigin translates p so its first outer-boundary vertex sits at
// the origin, returning both the shifted polygon and the vertex that was
// subtracted — the compensating translation a caller must apply to any
// NFP computed against the shifted form to recover p's real position,
// per spec.md §4.5's hole-initialization contract.
func shiftToOrigin(p geometry.PolygonWithHoles) (geometry.PolygonWithHoles, geometry.Point) {
	if p.IsEmpty() || p.IsEntirePlane() || len(p.Outer.Verts) == 0 {
		return p, geometry.Point{}
	}
	origin := p.Outer.At(0)
	return p.Transformed(geometry.Translation(origin.Neg())), origin
}
