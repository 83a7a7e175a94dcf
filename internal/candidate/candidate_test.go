package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestcore/nestcore/internal/boolalg"
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

func TestPointsWithNoNFPsReturnsBoundaryVertices(t *testing.T) {
	s := NewSet()
	s.SetBoundary(boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: square(0, 0, 10)}))

	pts := s.Points()
	assert.Len(t, pts, 4)
}

func TestPointsWithEmptyBoundaryReturnsNil(t *testing.T) {
	s := NewSet()
	s.SetBoundary(nil)

	pts := s.Points()
	assert.Nil(t, pts)
}

func TestPointsExcludesNFPRegion(t *testing.T) {
	s := NewSet()
	s.SetBoundary(boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: square(0, 0, 10)}))
	s.AddNFP(boolalg.FromPolygon(geometry.PolygonWithHoles{Outer: square(-5, -5, 10)}))

	pts := s.Points()
	require.NotEmpty(t, pts)
}
