package pack

import "github.com/nestcore/nestcore/internal/geometry"

// IncrementalBBox implements the packing heuristic packing.hpp calls
// IncrementalBoundingBoxHeuristic: area(bbox(holes ∪ new_parts)) +
// area(bbox(new_parts)). The first term is the bounding box of every
// already-placed shape together with the sheet's fixed holes; the
// second term covers only the parts placed during this pack run,
// doubling their weight and biasing the search toward tight clustering
// of newly-placed shapes while still rewarding positions near
// preexisting holes. Both boxes are tracked incrementally so evaluating
// a candidate position never re-scans every previously placed shape,
// matching packing.hpp:44-81's xmin/xmax/ymin/ymax plus
// new_xmin/new_xmax/new_ymin/new_ymax bookkeeping.
type IncrementalBBox struct {
	initialized bool
	xmin, xmax  float64
	ymin, ymax  float64

	newInitialized   bool
	newXmin, newXmax float64
	newYmin, newYmax float64
}

// Add folds bbox into the running bounding box. isNewPart marks bbox as
// belonging to a part placed during this run, as opposed to one of the
// sheet's fixed holes, folding it into the new-parts-only box as well.
func (b *IncrementalBBox) Add(bbox geometry.Bbox, isNewPart bool) {
	x0, _ := bbox.MinX.Float64()
	y0, _ := bbox.MinY.Float64()
	x1, _ := bbox.MaxX.Float64()
	y1, _ := bbox.MaxY.Float64()
	if !b.initialized {
		b.xmin, b.ymin, b.xmax, b.ymax = x0, y0, x1, y1
		b.initialized = true
	} else {
		b.xmin = min(b.xmin, x0)
		b.ymin = min(b.ymin, y0)
		b.xmax = max(b.xmax, x1)
		b.ymax = max(b.ymax, y1)
	}

	if !isNewPart {
		return
	}
	if !b.newInitialized {
		b.newXmin, b.newYmin, b.newXmax, b.newYmax = x0, y0, x1, y1
		b.newInitialized = true
		return
	}
	b.newXmin = min(b.newXmin, x0)
	b.newYmin = min(b.newYmin, y0)
	b.newXmax = max(b.newXmax, x1)
	b.newYmax = max(b.newYmax, y1)
}

// Eval returns area(bbox(holes ∪ new_parts)) + area(bbox(new_parts)) for
// the shapes folded in so far.
func (b *IncrementalBBox) Eval() float64 {
	overall := 0.0
	if b.initialized {
		overall = (b.xmax - b.xmin) * (b.ymax - b.ymin)
	}
	newOnly := 0.0
	if b.newInitialized {
		newOnly = (b.newXmax - b.newXmin) * (b.newYmax - b.newYmin)
	}
	return overall + newOnly
}

// EvalWith returns the score that would result from additionally
// including bbox, without mutating the receiver — the O(1)
// candidate-scoring step packing.hpp's eval_new_part performs for every
// point the candidate generator proposes. isNewPart mirrors Add's
// parameter; every candidate the placement driver scores is a part
// under consideration for placement, so callers pass true.
func (b *IncrementalBBox) EvalWith(bbox geometry.Bbox, isNewPart bool) float64 {
	x0, _ := bbox.MinX.Float64()
	y0, _ := bbox.MinY.Float64()
	x1, _ := bbox.MaxX.Float64()
	y1, _ := bbox.MaxY.Float64()

	overall := (x1 - x0) * (y1 - y0)
	if b.initialized {
		nxmin := min(b.xmin, x0)
		nymin := min(b.ymin, y0)
		nxmax := max(b.xmax, x1)
		nymax := max(b.ymax, y1)
		overall = (nxmax - nxmin) * (nymax - nymin)
	}

	newOnly := 0.0
	switch {
	case isNewPart && b.newInitialized:
		nxmin := min(b.newXmin, x0)
		nymin := min(b.newYmin, y0)
		nxmax := max(b.newXmax, x1)
		nymax := max(b.newYmax, y1)
		newOnly = (nxmax - nxmin) * (nymax - nymin)
	case isNewPart:
		newOnly = (x1 - x0) * (y1 - y0)
	case b.newInitialized:
		newOnly = (b.newXmax - b.newXmin) * (b.newYmax - b.newYmin)
	}

	return overall + newOnly
}
