package scene

import "math"

// Circle is a circle, or an ellipse once it has been scaled anisotropically.
// An ellipse is described by its centre, the radii along its own axes and
// the rotation of those axes in degrees.
type Circle struct {
	node
	center   Point
	rx, ry   float64
	rotation float64
}

// NewCircle returns a detached circle.
func NewCircle(center Point, r float64) *Circle {
	return &Circle{center: center.Absolute(), rx: r, ry: r}
}

// Kind returns [KindCircle].
func (c *Circle) Kind() Kind { return KindCircle }

// Center returns the centre.
func (c *Circle) Center() Point { return c.center }

// Radius returns the radius along the first axis.
func (c *Circle) Radius() float64 { return c.rx }

// Radii returns the radii along both axes.
func (c *Circle) Radii() (rx, ry float64) { return c.rx, c.ry }

// Rotation returns the rotation of the axes in degrees.
func (c *Circle) Rotation() float64 { return c.rotation }

// IsEllipse reports whether the radii differ.
func (c *Circle) IsEllipse() bool { return c.rx != c.ry }

// SetStyle replaces the circle's own style.
func (c *Circle) SetStyle(s Style) *Circle {
	c.style = s
	return c
}

// SetRadii sets both radii, turning the circle into an ellipse if they
// differ.
func (c *Circle) SetRadii(rx, ry float64) *Circle {
	c.rx, c.ry = rx, ry
	return c
}

// SetRotation sets the rotation of the axes in degrees.
func (c *Circle) SetRotation(deg float64) *Circle {
	c.rotation = deg
	return c
}

// Points returns the centre.
func (c *Circle) Points() []Point { return []Point{c.center} }

// Centroid returns the centre.
func (c *Circle) Centroid() Point { return c.center }

// Bounds returns the box enclosing the (possibly rotated) ellipse.
func (c *Circle) Bounds() Rect {
	sin, cos := sincos(c.rotation)
	hx := math.Hypot(c.rx*cos, c.ry*sin)
	hy := math.Hypot(c.rx*sin, c.ry*cos)
	x, y := c.center.Abs()
	return Rect{}.Extend(x-hx, y-hy).Extend(x+hx, y+hy)
}

// Transform applies m. Any affine map is accepted; anisotropic maps turn the
// circle into an ellipse.
func (c *Circle) Transform(m Affine) error { return transform(c, m) }

func (c *Circle) check(Affine) error { return nil }

func (c *Circle) apply(m Affine) {
	c.center.Transform(m)
	if m.IsSimilarity() {
		k, rot, reflect := m.similarity()
		c.rx *= k
		c.ry *= k
		if !c.IsEllipse() {
			return
		}
		if reflect {
			c.rotation = normAngle(rot - c.rotation)
		} else {
			c.rotation = normAngle(c.rotation + rot)
		}
		return
	}

	// The image of the unit disc under L = M*R(rotation)*diag(rx, ry) is the
	// ellipse whose axes are the eigenvectors of L*Lt.
	ax, ay := m.ApplyVector(rotateVector(c.rx, 0, c.rotation))
	bx, by := m.ApplyVector(rotateVector(0, c.ry, c.rotation))
	p := ax*ax + bx*bx
	q := ax*ay + bx*by
	r := ay*ay + by*by
	mean := (p + r) / 2
	d := math.Hypot((p-r)/2, q)
	c.rx = math.Sqrt(mean + d)
	c.ry = math.Sqrt(math.Max(mean-d, 0))
	c.rotation = normAngle(atan2deg(2*q, p-r) / 2)
}

// Clone returns a detached deep copy.
func (c *Circle) Clone() Spatial { return c.Copy() }

// Copy returns a detached deep copy.
func (c *Circle) Copy() *Circle {
	cp := *c
	cp.node = node{style: c.style}
	return &cp
}

// Translate moves the circle by (dx, dy).
func (c *Circle) Translate(dx, dy float64) *Circle {
	c.apply(Translation(dx, dy))
	return c
}

// Rotate rotates the circle about its centre.
func (c *Circle) Rotate(deg float64) *Circle { return c.RotateAround(deg, c.center) }

// RotateAround rotates the circle about p.
func (c *Circle) RotateAround(deg float64, p Point) *Circle {
	c.apply(Rotation(deg).Around(p))
	return c
}

// Scale scales the circle uniformly about its centre.
func (c *Circle) Scale(s float64) *Circle {
	c.apply(Scaling(s, s).Around(c.center))
	return c
}

// ScaleXY scales the circle about its centre.
func (c *Circle) ScaleXY(sx, sy float64) (*Circle, error) { return c, scaleXY(c, sx, sy) }

// ScaleAround scales the circle about p.
func (c *Circle) ScaleAround(sx, sy float64, p Point) (*Circle, error) {
	return c, scaleAround(c, sx, sy, p)
}

// Mirror reflects the circle across the line through a and b.
func (c *Circle) Mirror(a, b Point) (*Circle, error) { return c, mirror(c, a, b) }

// FlipLR mirrors the circle across the vertical through its centre.
func (c *Circle) FlipLR() *Circle {
	flipLR(c)
	return c
}

// FlipUD mirrors the circle across the horizontal through its centre.
func (c *Circle) FlipUD() *Circle {
	flipUD(c)
	return c
}
