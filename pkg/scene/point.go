package scene

import "fmt"

// Point is a 2D position.
//
// When Ref is set, X and Y are offsets from the referenced point and the
// absolute position is resolved at read time with [Point.Abs]. Ref is a
// non-owning reference: moving the referenced point moves every point that
// refers to it. Reference chains must not be cyclic.
type Point struct {
	X, Y float64
	Ref  *Point
}

// Pt returns the absolute point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Abs returns the absolute coordinates of p.
func (p Point) Abs() (x, y float64) {
	x, y = p.X, p.Y
	for r := p.Ref; r != nil; r = r.Ref {
		x += r.X
		y += r.Y
	}
	return x, y
}

// Absolute returns p resolved to an absolute point without a reference.
func (p Point) Absolute() Point {
	x, y := p.Abs()
	return Pt(x, y)
}

// String returns the absolute coordinates as "(x, y)".
func (p Point) String() string {
	x, y := p.Abs()
	return fmt.Sprintf("(%g, %g)", x, y)
}

// Offset returns a point positioned (dx, dy) from p that follows p.
func (p *Point) Offset(dx, dy float64) *Point {
	return &Point{X: dx, Y: dy, Ref: p}
}

// RightOf returns a point d units to the right of p that follows p.
func (p *Point) RightOf(d float64) *Point { return p.Offset(d, 0) }

// LeftOf returns a point d units to the left of p that follows p.
func (p *Point) LeftOf(d float64) *Point { return p.Offset(-d, 0) }

// Above returns a point d units above p that follows p. The y axis points
// down, so above means a smaller y.
func (p *Point) Above(d float64) *Point { return p.Offset(0, -d) }

// Below returns a point d units below p that follows p.
func (p *Point) Below(d float64) *Point { return p.Offset(0, d) }

// Detach freezes p at its current absolute position and drops its reference.
func (p *Point) Detach() *Point {
	*p = p.Absolute()
	return p
}

// ToLocal expresses q in the coordinate frame p's offsets are measured in,
// that is relative to p.Ref, or absolute when p has no reference.
func (p *Point) ToLocal(q Point) (x, y float64) {
	x, y = q.Abs()
	if p.Ref != nil {
		rx, ry := p.Ref.Abs()
		x -= rx
		y -= ry
	}
	return x, y
}

// Copy returns a new point with the same offsets and reference.
func (p *Point) Copy() *Point {
	c := *p
	return &c
}

// Transform applies m to the absolute position of p, keeping p relative to
// its reference.
func (p *Point) Transform(m Affine) *Point {
	x, y := m.Apply(p.Abs())
	if p.Ref != nil {
		rx, ry := p.Ref.Abs()
		x -= rx
		y -= ry
	}
	p.X, p.Y = x, y
	return p
}

// Translate moves p by (dx, dy).
func (p *Point) Translate(dx, dy float64) *Point {
	p.X += dx
	p.Y += dy
	return p
}

// Rotate rotates p about itself, which leaves it in place.
func (p *Point) Rotate(deg float64) *Point {
	return p
}

// RotateAround rotates p by deg degrees about c.
func (p *Point) RotateAround(deg float64, c Point) *Point {
	return p.Transform(Rotation(deg).Around(c))
}

// Scale scales p about itself, which leaves it in place.
func (p *Point) Scale(sx, sy float64) *Point {
	return p
}

// ScaleAround scales p by (sx, sy) about c.
func (p *Point) ScaleAround(sx, sy float64, c Point) *Point {
	return p.Transform(Scaling(sx, sy).Around(c))
}

// Mirror reflects p across the line through a and b.
func (p *Point) Mirror(a, b Point) (*Point, error) {
	m, err := Reflection(a, b)
	if err != nil {
		return p, err
	}
	return p.Transform(m), nil
}

// FlipLR mirrors p across the y axis.
func (p *Point) FlipLR() *Point {
	return p.Transform(Scaling(-1, 1))
}

// FlipUD mirrors p across the x axis.
func (p *Point) FlipUD() *Point {
	return p.Transform(Scaling(1, -1))
}
