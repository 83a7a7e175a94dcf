// Package state holds the per-packing-run caches that make repeated NFP
// computation tractable: canonical polygon interning and the NFP result
// cache keyed off that interning, mirroring persistence.hpp's State,
// PolygonHasher and NFPCacheKey. Nothing here is a package-level
// singleton — the caller creates each *State and passes it to pack.Run,
// and may reuse one State across several runs so later runs hit entries
// cached by earlier ones. A State is not safe for concurrent use.
package state

import (
	"math/big"
	"strings"

	"github.com/nestcore/nestcore/internal/geometry"
)

// Handle is the canonical identity of a polygon: two polygons that are
// vertex-for-vertex identical intern to the same *Handle, and every NFP
// cache lookup keys off handle identity (pointer equality) rather than
// re-comparing coordinates, exactly the way CGAL handle hashing in
// persistence.hpp lets NFPCacheKeyHasher hash a pointer instead of a
// polygon.
type Handle struct {
	Polygon geometry.PolygonWithHoles
}

// NFPCacheKey identifies one cached exterior no-fit-polygon: the ordered
// pair of canonical handles plus the two rotation angles (in degrees) the
// shapes were placed under. Rotation is part of the key, not the
// polygon, for the same reason persistence.hpp's NFPCacheKey carries
// rotation_A/rotation_B alongside the handle pointers: the same shape
// pair rotated differently has a different NFP and must not collide in
// the cache. Because rotation is compared by exact float64 equality, a
// cache entry is only ever reused when the candidate rotation set is
// drawn from the same discrete grid every time; runs with a different
// rotation count simply miss and recompute.
type NFPCacheKey struct {
	A, B       *Handle
	RotA, RotB float64
}

// State owns the canonical-polygon interning table and the NFP result
// cache for as long as the caller keeps it, across one or more packing
// runs.
type State struct {
	buckets map[string][]*Handle
	nfp     map[NFPCacheKey]geometry.PolygonWithHoles
}

// New returns an empty State.
func New() *State {
	return &State{
		buckets: make(map[string][]*Handle),
		nfp:     make(map[NFPCacheKey]geometry.PolygonWithHoles),
	}
}

// Canonicalize interns p and returns its Handle. Polygons that are
// exactly coordinate-for-coordinate equal (including hole order and
// vertex order) always map to the same Handle, so later NFP lookups for
// the same shape pair hit the cache instead of recomputing a Minkowski
// sum. The hash bucket groups candidates by a cheap structural digest;
// collisions within a bucket fall back to exact big.Rat comparison, the
// same two-stage scheme PolygonHasher/unordered_map<..., PolygonHasher>
// implements with a double-precision hash and an exact equality
// fallback.
func (s *State) Canonicalize(p geometry.PolygonWithHoles) *Handle {
	key := digest(p)
	for _, h := range s.buckets[key] {
		if polygonsEqual(h.Polygon, p) {
			return h
		}
	}
	h := &Handle{Polygon: p}
	s.buckets[key] = append(s.buckets[key], h)
	return h
}

// LookupNFP returns the cached untransformed NFP for key, if present.
func (s *State) LookupNFP(key NFPCacheKey) (geometry.PolygonWithHoles, bool) {
	v, ok := s.nfp[key]
	return v, ok
}

// StoreNFP caches the untransformed NFP result for key.
func (s *State) StoreNFP(key NFPCacheKey, result geometry.PolygonWithHoles) {
	s.nfp[key] = result
}

// digest produces a structural hash-bucket key for p, analogous to
// PolygonHasher hashing to_double(x),to_double(y) of every hole vertex
// then every outer-boundary vertex. Using the polygon's own exact
// rational string representation instead of a lossy double avoids ever
// bucketing two structurally different polygons together due to rounding
// — the bucket is purely a speed optimization, not a correctness
// mechanism, so false positives (handled by the exact fallback above) are
// fine but false negatives would silently defeat interning.
func digest(p geometry.PolygonWithHoles) string {
	if p.IsEntirePlane() {
		return "entire-plane"
	}
	var b strings.Builder
	for _, h := range p.Holes {
		writeLoop(&b, h)
		b.WriteByte(';')
	}
	writeLoop(&b, p.Outer)
	return b.String()
}

func writeLoop(b *strings.Builder, loop geometry.SimplePolygon) {
	for _, v := range loop.Verts {
		b.WriteString(v.X.RatString())
		b.WriteByte(',')
		b.WriteString(v.Y.RatString())
		b.WriteByte('|')
	}
}

func polygonsEqual(a, b geometry.PolygonWithHoles) bool {
	if a.IsEntirePlane() != b.IsEntirePlane() {
		return false
	}
	if a.IsEntirePlane() {
		return true
	}
	if !loopEqual(a.Outer, b.Outer) || len(a.Holes) != len(b.Holes) {
		return false
	}
	for i := range a.Holes {
		if !loopEqual(a.Holes[i], b.Holes[i]) {
			return false
		}
	}
	return true
}

func loopEqual(a, b geometry.SimplePolygon) bool {
	if len(a.Verts) != len(b.Verts) {
		return false
	}
	for i := range a.Verts {
		if !a.Verts[i].Eq(b.Verts[i]) {
			return false
		}
	}
	return true
}

// ratKey is retained for callers that need a sortable exact coordinate
// key outside of this package's own digest (e.g. deterministic test
// fixtures); it is not used by the cache itself.
func ratKey(r *big.Rat) string { return r.RatString() }
