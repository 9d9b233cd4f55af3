package scene

// Polyline is an ordered sequence of vertices, optionally closed into a
// polygon.
type Polyline struct {
	node
	pts    []Point
	closed bool
}

// NewPolyline returns a detached open polyline through pts.
func NewPolyline(pts ...Point) *Polyline {
	own := make([]Point, len(pts))
	for i, p := range pts {
		own[i] = p.Absolute()
	}
	return &Polyline{pts: own}
}

// NewPolygon returns a detached closed polyline through pts.
func NewPolygon(pts ...Point) *Polyline {
	return NewPolyline(pts...).SetClosed(true)
}

// Kind returns [KindPolyline].
func (p *Polyline) Kind() Kind { return KindPolyline }

// Closed reports whether the last vertex connects back to the first.
func (p *Polyline) Closed() bool { return p.closed }

// SetClosed sets whether the polyline is closed.
func (p *Polyline) SetClosed(closed bool) *Polyline {
	p.closed = closed
	return p
}

// SetStyle replaces the polyline's own style.
func (p *Polyline) SetStyle(s Style) *Polyline {
	p.style = s
	return p
}

// Len returns the number of vertices.
func (p *Polyline) Len() int { return len(p.pts) }

// Points returns a copy of the vertices in order.
func (p *Polyline) Points() []Point {
	out := make([]Point, len(p.pts))
	copy(out, p.pts)
	return out
}

// Centroid returns the mean of the vertices.
func (p *Polyline) Centroid() Point { return centroid(p.pts) }

// Bounds returns the box spanned by the vertices.
func (p *Polyline) Bounds() Rect { return boundsOf(p.pts...) }

// Transform applies m to every vertex.
func (p *Polyline) Transform(m Affine) error { return transform(p, m) }

func (p *Polyline) check(Affine) error { return nil }

func (p *Polyline) apply(m Affine) {
	for i := range p.pts {
		p.pts[i].Transform(m)
	}
}

// Clone returns a detached deep copy.
func (p *Polyline) Clone() Spatial { return p.Copy() }

// Copy returns a detached deep copy.
func (p *Polyline) Copy() *Polyline {
	return &Polyline{node: node{style: p.style}, pts: p.Points(), closed: p.closed}
}

// Translate moves every vertex by (dx, dy).
func (p *Polyline) Translate(dx, dy float64) *Polyline {
	p.apply(Translation(dx, dy))
	return p
}

// Rotate rotates the polyline about the mean of its vertices.
func (p *Polyline) Rotate(deg float64) *Polyline { return p.RotateAround(deg, p.Centroid()) }

// RotateAround rotates the polyline about c.
func (p *Polyline) RotateAround(deg float64, c Point) *Polyline {
	p.apply(Rotation(deg).Around(c))
	return p
}

// Scale scales the polyline uniformly about the mean of its vertices.
func (p *Polyline) Scale(s float64) *Polyline {
	p.apply(Scaling(s, s).Around(p.Centroid()))
	return p
}

// ScaleXY scales the polyline about the mean of its vertices.
func (p *Polyline) ScaleXY(sx, sy float64) (*Polyline, error) { return p, scaleXY(p, sx, sy) }

// ScaleAround scales the polyline about c.
func (p *Polyline) ScaleAround(sx, sy float64, c Point) (*Polyline, error) {
	return p, scaleAround(p, sx, sy, c)
}

// Mirror reflects the polyline across the line through a and b.
func (p *Polyline) Mirror(a, b Point) (*Polyline, error) { return p, mirror(p, a, b) }

// FlipLR mirrors the polyline across the vertical through its centroid.
func (p *Polyline) FlipLR() *Polyline {
	flipLR(p)
	return p
}

// FlipUD mirrors the polyline across the horizontal through its centroid.
func (p *Polyline) FlipUD() *Polyline {
	flipUD(p)
	return p
}
