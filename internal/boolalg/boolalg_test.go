package boolalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestcore/nestcore/internal/geometry"
)

func square(x0, y0, side float64) geometry.SimplePolygon {
	return geometry.SimplePolygon{Verts: []geometry.Point{
		geometry.NewPoint(x0, y0),
		geometry.NewPoint(x0+side, y0),
		geometry.NewPoint(x0+side, y0+side),
		geometry.NewPoint(x0, y0+side),
	}}
}

func TestUnionOverlappingSquares(t *testing.T) {
	a := geometry.PolygonWithHoles{Outer: square(0, 0, 2)}
	b := geometry.PolygonWithHoles{Outer: square(1, 0, 2)}

	u := Union(FromPolygon(a), FromPolygon(b))
	require.Len(t, u, 1)
	assert.True(t, u[0].ContainsPoint(geometry.NewPoint(0.5, 1)))
	assert.True(t, u[0].ContainsPoint(geometry.NewPoint(2.5, 1)))
	assert.False(t, u[0].ContainsPoint(geometry.NewPoint(10, 10)))
}

func TestUnionDisjointSquares(t *testing.T) {
	a := geometry.PolygonWithHoles{Outer: square(0, 0, 1)}
	b := geometry.PolygonWithHoles{Outer: square(10, 10, 1)}

	u := Union(FromPolygon(a), FromPolygon(b))
	assert.Len(t, u, 2)
}

func TestDifferenceCarvesHole(t *testing.T) {
	outer := geometry.PolygonWithHoles{Outer: square(0, 0, 10)}
	sub := geometry.PolygonWithHoles{Outer: square(4, 4, 2)}

	d := Difference(FromPolygon(outer), FromPolygon(sub))
	require.Len(t, d, 1)
	assert.False(t, d[0].ContainsPoint(geometry.NewPoint(5, 5)))
	assert.True(t, d[0].ContainsPoint(geometry.NewPoint(1, 1)))
}

func TestDifferenceFullyCovered(t *testing.T) {
	outer := geometry.PolygonWithHoles{Outer: square(0, 0, 2)}
	sub := geometry.PolygonWithHoles{Outer: square(-1, -1, 10)}

	d := Difference(FromPolygon(outer), FromPolygon(sub))
	assert.Len(t, d, 0)
}

func TestSetContainsPointEntirePlane(t *testing.T) {
	s := Set{geometry.EntirePlane}
	assert.True(t, s.ContainsPoint(geometry.NewPoint(1e6, -1e6)))
}

// TestDifferenceHasNoOverlapWithSubtrahend is spec.md §8's "No overlap"
// property specialized to boolalg's own primitive: a region minus a set
// of shapes must not contain any point drawn from inside those shapes.
func TestDifferenceHasNoOverlapWithSubtrahend(t *testing.T) {
	outer := geometry.PolygonWithHoles{Outer: square(0, 0, 10)}
	sub1 := geometry.PolygonWithHoles{Outer: square(1, 1, 2)}
	sub2 := geometry.PolygonWithHoles{Outer: square(6, 6, 2)}

	subtrahend := Union(FromPolygon(sub1), FromPolygon(sub2))
	d := Difference(FromPolygon(outer), subtrahend)

	probes := []geometry.Point{
		geometry.NewPoint(2, 2),
		geometry.NewPoint(7, 7),
	}
	for _, p := range probes {
		assert.False(t, d.ContainsPoint(p), "point %v should have been carved out", p)
	}
	assert.True(t, d.ContainsPoint(geometry.NewPoint(9, 9)))
}
