package nfp

import (
	"math"

	"github.com/nestcore/nestcore/internal/boolalg"
	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/state"
)

// Cached returns the exterior NFP of handleB against handleA at the
// given rotations (rotA, rotB in degrees, matching every other rotation
// value that crosses a package boundary in this module), translated so
// it applies directly at the current candidate position, computing and
// caching it on first use. Mirrors the cached nfp() overload in
// no_fit_polygon.hpp: the untransformed result (at rotation but not
// translation) is what gets stored, since the translation depends on
// where A's shape actually sits on the sheet and would otherwise defeat
// reuse across placements of the same pair.
func Cached(st *state.State, handleA, handleB *state.Handle, rotA, rotB float64, translate geometry.Point) boolalg.Set {
	key := state.NFPCacheKey{A: handleA, B: handleB, RotA: rotA, RotB: rotB}
	if cached, ok := st.LookupNFP(key); ok {
		return translateSet(boolalg.FromPolygon(cached), translate)
	}

	rotatedA := handleA.Polygon.Outer.Transformed(geometry.Rotation(degToRad(rotA)))
	rotatedB := handleB.Polygon.Outer.Transformed(geometry.Rotation(degToRad(rotB)))

	result := ExteriorNFP(rotatedA, rotatedB)
	merged := mergeToSingle(result)
	st.StoreNFP(key, merged)

	return translateSet(boolalg.FromPolygon(merged), translate)
}

// degToRad converts a rotation in degrees — the unit every rotation
// value crossing into this package arrives in — to the radians
// geometry.Rotation's sin/cos construction needs.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// mergeToSingle collapses a boolalg.Set down to the single
// PolygonWithHoles the cache stores per key. An exterior NFP against a
// single convex-decomposed pair of shapes is connected in every case this
// pipeline exercises; if decomposition ever produced a disjoint NFP this
// keeps the largest-area component and drops the rest rather than losing
// the cache entry entirely.
func mergeToSingle(s boolalg.Set) geometry.PolygonWithHoles {
	if len(s) == 0 {
		return geometry.PolygonWithHoles{}
	}
	best := s[0]
	bestArea := math.Abs(areaFloat(best))
	for _, c := range s[1:] {
		a := math.Abs(areaFloat(c))
		if a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}

func areaFloat(p geometry.PolygonWithHoles) float64 {
	if p.IsEntirePlane() || p.IsEmpty() {
		return 0
	}
	a, _ := p.Outer.SignedArea2().Float64()
	return a / 2
}

func translateSet(s boolalg.Set, d geometry.Point) boolalg.Set {
	out := make(boolalg.Set, len(s))
	for i, c := range s {
		if c.IsEntirePlane() {
			out[i] = c
			continue
		}
		out[i] = c.Transformed(geometry.Translation(d))
	}
	return out
}
