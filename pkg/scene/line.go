package scene

// Line is a straight segment between two points.
type Line struct {
	node
	p1, p2 Point
}

// NewLine returns a detached line from p1 to p2.
func NewLine(p1, p2 Point) *Line {
	return &Line{p1: p1.Absolute(), p2: p2.Absolute()}
}

// Kind returns [KindLine].
func (l *Line) Kind() Kind { return KindLine }

// Start returns the first endpoint.
func (l *Line) Start() Point { return l.p1 }

// End returns the second endpoint.
func (l *Line) End() Point { return l.p2 }

// Length returns the distance between the endpoints.
func (l *Line) Length() float64 {
	return distance(l.p1, l.p2)
}

// SetStyle replaces the line's own style.
func (l *Line) SetStyle(s Style) *Line {
	l.style = s
	return l
}

// Points returns both endpoints.
func (l *Line) Points() []Point { return []Point{l.p1, l.p2} }

// Centroid returns the midpoint.
func (l *Line) Centroid() Point { return centroid(l.Points()) }

// Bounds returns the box spanned by the endpoints.
func (l *Line) Bounds() Rect { return boundsOf(l.p1, l.p2) }

// Transform applies m to both endpoints.
func (l *Line) Transform(m Affine) error { return transform(l, m) }

func (l *Line) check(Affine) error { return nil }

func (l *Line) apply(m Affine) {
	l.p1.Transform(m)
	l.p2.Transform(m)
}

// Clone returns a detached deep copy.
func (l *Line) Clone() Spatial { return l.Copy() }

// Copy returns a detached deep copy.
func (l *Line) Copy() *Line {
	return &Line{node: node{style: l.style}, p1: l.p1, p2: l.p2}
}

// Translate moves the line by (dx, dy).
func (l *Line) Translate(dx, dy float64) *Line {
	l.apply(Translation(dx, dy))
	return l
}

// Rotate rotates the line about its midpoint.
func (l *Line) Rotate(deg float64) *Line { return l.RotateAround(deg, l.Centroid()) }

// RotateAround rotates the line about c.
func (l *Line) RotateAround(deg float64, c Point) *Line {
	l.apply(Rotation(deg).Around(c))
	return l
}

// Scale scales the line uniformly about its midpoint.
func (l *Line) Scale(s float64) *Line {
	l.apply(Scaling(s, s).Around(l.Centroid()))
	return l
}

// ScaleXY scales the line about its midpoint.
func (l *Line) ScaleXY(sx, sy float64) (*Line, error) { return l, scaleXY(l, sx, sy) }

// ScaleAround scales the line about c.
func (l *Line) ScaleAround(sx, sy float64, c Point) (*Line, error) {
	return l, scaleAround(l, sx, sy, c)
}

// Mirror reflects the line across the line through a and b.
func (l *Line) Mirror(a, b Point) (*Line, error) { return l, mirror(l, a, b) }

// FlipLR mirrors the line across the vertical through its midpoint.
func (l *Line) FlipLR() *Line {
	flipLR(l)
	return l
}

// FlipUD mirrors the line across the horizontal through its midpoint.
func (l *Line) FlipUD() *Line {
	flipUD(l)
	return l
}
