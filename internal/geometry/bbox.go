package geometry

import "math/big"

// Bbox is an axis-aligned bounding box in exact rational coordinates.
type Bbox struct {
	MinX, MinY, MaxX, MaxY big.Rat
}

// BboxOfPoints computes the tight bounding box of pts. Panics on an empty
// slice; callers always have at least one vertex by construction.
func BboxOfPoints(pts []Point) Bbox {
	b := Bbox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X.Cmp(&b.MinX) < 0 {
			b.MinX = p.X
		}
		if p.X.Cmp(&b.MaxX) > 0 {
			b.MaxX = p.X
		}
		if p.Y.Cmp(&b.MinY) < 0 {
			b.MinY = p.Y
		}
		if p.Y.Cmp(&b.MaxY) > 0 {
			b.MaxY = p.Y
		}
	}
	return b
}

// Width returns MaxX - MinX.
func (b Bbox) Width() *big.Rat {
	var r big.Rat
	return r.Sub(&b.MaxX, &b.MinX)
}

// Height returns MaxY - MinY.
func (b Bbox) Height() *big.Rat {
	var r big.Rat
	return r.Sub(&b.MaxY, &b.MinY)
}

// Area returns Width*Height.
func (b Bbox) Area() *big.Rat {
	var r big.Rat
	return r.Mul(b.Width(), b.Height())
}

// Union returns the smallest Bbox enclosing both b and o.
func (b Bbox) Union(o Bbox) Bbox {
	u := b
	if o.MinX.Cmp(&u.MinX) < 0 {
		u.MinX = o.MinX
	}
	if o.MaxX.Cmp(&u.MaxX) > 0 {
		u.MaxX = o.MaxX
	}
	if o.MinY.Cmp(&u.MinY) < 0 {
		u.MinY = o.MinY
	}
	if o.MaxY.Cmp(&u.MaxY) > 0 {
		u.MaxY = o.MaxY
	}
	return u
}

// Fits reports whether b fits inside container without rotation, i.e. b's
// width and height are each no larger than container's.
func (b Bbox) Fits(container Bbox) bool {
	return b.Width().Cmp(container.Width()) <= 0 && b.Height().Cmp(container.Height()) <= 0
}
