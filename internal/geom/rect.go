package geom

// Rect is an axis-aligned bounding box. The zero Rect is empty.
type Rect struct {
	Min, Max Point
	valid    bool
}

// Empty reports whether the rect contains no points.
func (r Rect) Empty() bool {
	return !r.valid
}

// Extend grows r to contain p.
func (r Rect) Extend(p Point) Rect {
	if !r.valid {
		return Rect{Min: p, Max: p, valid: true}
	}
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if !o.valid {
		return r
	}
	return r.Extend(o.Min).Extend(o.Max)
}

// Overlaps reports whether the two rects share any area, edges included.
func (r Rect) Overlaps(o Rect) bool {
	if !r.valid || !o.valid {
		return false
	}
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X ||
		r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y)
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}
