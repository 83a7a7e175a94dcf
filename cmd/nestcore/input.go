package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nestcore/nestcore/internal/geometry"
	"github.com/nestcore/nestcore/internal/model"
	"github.com/nestcore/nestcore/internal/state"
)

// inputDoc is the plain JSON shape cmd/nestcore reads: a list of sheets
// and a list of part polygons. SVG parsing itself is the explicit
// external-collaborator boundary SPEC_FULL.md draws around this package
// (spec.md names SVG parsing/serialization as out of scope), so this
// harness deliberately works off a minimal JSON description of vertex
// coordinates rather than reimplementing an SVG front end.
type inputDoc struct {
	Sheets []sheetDoc `json:"sheets"`
	Parts  []partDoc  `json:"parts"`
}

type sheetDoc struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Holes  []holeDoc `json:"holes,omitempty"`
}

// holeDoc is a forbidden region on a sheet: an outer loop plus, rarely,
// its own islands of usable space (a donut-shaped bracket footprint).
// Shares partDoc's outer/holes shape since both describe a
// PolygonWithHoles.
type holeDoc struct {
	Outer [][2]float64   `json:"outer"`
	Holes [][][2]float64 `json:"holes,omitempty"`
}

type partDoc struct {
	ID    string         `json:"id,omitempty"`
	Outer [][2]float64   `json:"outer"`
	Holes [][][2]float64 `json:"holes,omitempty"`
}

func readInput(r io.Reader, st *state.State) ([]model.Sheet, []model.Part, error) {
	var doc inputDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode input: %w", err)
	}

	sheets := make([]model.Sheet, len(doc.Sheets))
	for i, s := range doc.Sheets {
		holes := make([]geometry.PolygonWithHoles, len(s.Holes))
		for j, h := range s.Holes {
			holes[j] = polygonFromDoc(h.Outer, h.Holes)
		}
		sheet := model.Sheet{Width: s.Width, Height: s.Height}
		model.SheetAddHoles(&sheet, holes, st)
		sheets[i] = sheet
	}

	parts := make([]model.Part, len(doc.Parts))
	for i, p := range doc.Parts {
		if len(p.Outer) < 3 {
			return nil, nil, fmt.Errorf("part %d: outer loop needs at least 3 vertices, got %d", i, len(p.Outer))
		}
		poly := polygonFromDoc(p.Outer, p.Holes)
		if p.ID != "" {
			parts[i] = model.Part{ID: p.ID, Polygon: poly}
		} else {
			parts[i] = model.NewPart(poly)
		}
	}

	return sheets, parts, nil
}

func loopFromCoords(coords [][2]float64) geometry.SimplePolygon {
	verts := make([]geometry.Point, len(coords))
	for i, c := range coords {
		verts[i] = geometry.NewPoint(c[0], c[1])
	}
	return geometry.SimplePolygon{Verts: verts}
}

// polygonFromDoc builds a PolygonWithHoles from raw outer/hole loops,
// normalizing orientation (outer CCW, holes CW) the way the rest of the
// geometry package expects every polygon it's handed to already be.
func polygonFromDoc(outer [][2]float64, innerHoles [][][2]float64) geometry.PolygonWithHoles {
	holes := make([]geometry.SimplePolygon, len(innerHoles))
	for j, h := range innerHoles {
		holes[j] = geometry.NormalizeLoop(loopFromCoords(h).Verts, false)
	}
	return geometry.PolygonWithHoles{
		Outer: geometry.NormalizeLoop(loopFromCoords(outer).Verts, true),
		Holes: holes,
	}
}
