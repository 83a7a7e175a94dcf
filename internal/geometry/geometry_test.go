package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, side float64) SimplePolygon {
	return SimplePolygon{Verts: []Point{
		NewPoint(x0, y0),
		NewPoint(x0+side, y0),
		NewPoint(x0+side, y0+side),
		NewPoint(x0, y0+side),
	}}
}

func TestSignedAreaAndOrientation(t *testing.T) {
	s := square(0, 0, 2)
	require.True(t, s.IsCCW())
	area2 := s.SignedArea2()
	assert.Equal(t, "8", area2.RatString())

	rev := s.Reversed()
	assert.False(t, rev.IsCCW())
}

func TestContainsPoint(t *testing.T) {
	s := square(0, 0, 10)
	assert.True(t, s.ContainsPoint(NewPoint(5, 5)))
	assert.False(t, s.ContainsPoint(NewPoint(15, 5)))
	assert.False(t, s.ContainsPoint(NewPoint(-1, 5)))
}

func TestPolygonWithHolesContainment(t *testing.T) {
	outer := square(0, 0, 10)
	hole := square(4, 4, 2).OrientedCW()
	p := PolygonWithHoles{Outer: outer, Holes: []SimplePolygon{hole}}

	assert.True(t, p.ContainsPoint(NewPoint(1, 1)))
	assert.False(t, p.ContainsPoint(NewPoint(5, 5)))
	assert.False(t, p.ContainsPoint(NewPoint(20, 20)))
}

func TestEntirePlaneSentinel(t *testing.T) {
	assert.True(t, EntirePlane.IsEntirePlane())
	assert.True(t, EntirePlane.ContainsPoint(NewPoint(1e9, -1e9)))
	assert.False(t, EntirePlane.IsEmpty())

	var empty PolygonWithHoles
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsEntirePlane())
}

func TestTransformRotationTranslation(t *testing.T) {
	p := NewPoint(1, 0)
	rot := Rotation(1.5707963267948966) // pi/2
	out := rot.Apply(p)
	x, y := out.Float64()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	tr := Translation(NewPoint(3, 4))
	out2 := tr.Apply(p)
	x2, y2 := out2.Float64()
	assert.InDelta(t, 4, x2, 1e-9)
	assert.InDelta(t, 4, y2, 1e-9)
}

func TestNormalizeLoopReorients(t *testing.T) {
	cw := square(0, 0, 4).Reversed()
	require.False(t, cw.IsCCW())

	got := NormalizeLoop(cw.Verts, true)
	assert.True(t, got.IsCCW())
}

func TestBboxUnionAndFits(t *testing.T) {
	a := square(0, 0, 2).Bbox()
	b := square(5, 5, 1).Bbox()
	u := a.Union(b)
	assert.Equal(t, "6", u.Width().RatString())
	assert.Equal(t, "6", u.Height().RatString())

	small := square(0, 0, 1).Bbox()
	assert.True(t, small.Fits(a))
	assert.False(t, a.Fits(small))
}

// TestRoundTripTransformInverse is spec.md §8's round-trip property:
// translating every placement by the inverse of its Transform
// reconstructs the original polygon, up to rotation.
func TestRoundTripTransformInverse(t *testing.T) {
	p := square(0, 0, 4)
	theta := math.Pi / 6
	translate := NewPoint(5, -3)

	moved := p.Transformed(Rotation(theta).WithTranslate(translate))
	invRot := Rotation(-theta)

	for i, v := range moved.Verts {
		back := invRot.Apply(v.Sub(translate))
		bx, by := back.Float64()
		ox, oy := p.Verts[i].Float64()
		assert.InDelta(t, ox, bx, 1e-9)
		assert.InDelta(t, oy, by, 1e-9)
	}
}
