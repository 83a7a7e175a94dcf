package main

import "github.com/nestcore/nestcore/internal/pack"

// outputDoc mirrors pack.Result but with every exact big.Rat-backed field
// projected down to float64, since math/big.Rat keeps its numerator and
// denominator in unexported fields and so has nothing for
// encoding/json's reflection-based encoder to marshal. The exact
// representation is exactly what internal/pack and its dependencies need
// internally; the CLI is a presentation boundary, so lossy float64 output
// here is the right place for that projection to happen, not inside the
// packing engine itself.
type outputDoc struct {
	Sheets          []sheetResultDoc `json:"sheets"`
	UnplacedPartIDs []string         `json:"unplacedPartIds,omitempty"`
}

type sheetResultDoc struct {
	Placements []placementDoc `json:"placements"`
}

type placementDoc struct {
	PartID string  `json:"partId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	// Rotation is in degrees, matching pack.Result's external contract
	// (spec.md §6: "rotate is the rotation in degrees applied before
	// translation"); internal/pack converts to radians only when it builds
	// a geometry.Rotation.
	Rotation float64 `json:"rotation"`
}

func toOutputDoc(result pack.Result) outputDoc {
	out := outputDoc{UnplacedPartIDs: result.UnplacedPartIDs}
	for _, sr := range result.Sheets {
		sheetOut := sheetResultDoc{}
		for _, p := range sr.Placements {
			x, y := p.Transform.Translate.Float64()
			sheetOut.Placements = append(sheetOut.Placements, placementDoc{
				PartID:   p.PartID,
				X:        x,
				Y:        y,
				Rotation: p.Rotation,
			})
		}
		out.Sheets = append(out.Sheets, sheetOut)
	}
	return out
}
