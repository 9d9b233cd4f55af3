package scene

import "math"

// Rect is an axis-aligned bounding box. The zero value is empty.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
	nonEmpty               bool
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool { return !r.nonEmpty }

// Width returns the extent along x.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the extent along y.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Extend returns r grown to include (x, y).
func (r Rect) Extend(x, y float64) Rect {
	if !r.nonEmpty {
		return Rect{MinX: x, MinY: y, MaxX: x, MaxY: y, nonEmpty: true}
	}
	r.MinX = math.Min(r.MinX, x)
	r.MinY = math.Min(r.MinY, y)
	r.MaxX = math.Max(r.MaxX, x)
	r.MaxY = math.Max(r.MaxY, y)
	return r
}

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	if !o.nonEmpty {
		return r
	}
	return r.Extend(o.MinX, o.MinY).Extend(o.MaxX, o.MaxY)
}

func boundsOf(pts ...Point) Rect {
	var r Rect
	for _, p := range pts {
		r = r.Extend(p.Abs())
	}
	return r
}
