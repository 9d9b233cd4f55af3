package scene

import (
	"math"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Rectangle is an oriented rectangle: a corner, a width and height along
// its own axes, and the rotation of those axes about the corner in degrees.
// With zero rotation the corner is the top-left one.
type Rectangle struct {
	node
	origin   Point
	w, h     float64
	rotation float64
}

// NewRectangle returns a detached axis-aligned rectangle.
func NewRectangle(origin Point, width, height float64) *Rectangle {
	return &Rectangle{origin: origin.Absolute(), w: width, h: height}
}

// Kind returns [KindRectangle].
func (r *Rectangle) Kind() Kind { return KindRectangle }

// Origin returns the corner the rectangle is anchored at.
func (r *Rectangle) Origin() Point { return r.origin }

// Size returns the width and height.
func (r *Rectangle) Size() (w, h float64) { return r.w, r.h }

// Rotation returns the rotation about the origin in degrees.
func (r *Rectangle) Rotation() float64 { return r.rotation }

// SetStyle replaces the rectangle's own style.
func (r *Rectangle) SetStyle(s Style) *Rectangle {
	r.style = s
	return r
}

// SetRotation sets the rotation about the origin in degrees.
func (r *Rectangle) SetRotation(deg float64) *Rectangle {
	r.rotation = deg
	return r
}

// Corners returns the four corners, starting at the origin and going along
// the width first.
func (r *Rectangle) Corners() [4]Point {
	ox, oy := r.origin.Abs()
	ux, uy := rotateVector(r.w, 0, r.rotation)
	vx, vy := rotateVector(0, r.h, r.rotation)
	return [4]Point{
		Pt(ox, oy),
		Pt(ox+ux, oy+uy),
		Pt(ox+ux+vx, oy+uy+vy),
		Pt(ox+vx, oy+vy),
	}
}

// Points returns the four corners.
func (r *Rectangle) Points() []Point {
	c := r.Corners()
	return c[:]
}

// Centroid returns the centre of the rectangle.
func (r *Rectangle) Centroid() Point { return centroid(r.Points()) }

// Bounds returns the box enclosing the corners.
func (r *Rectangle) Bounds() Rect { return boundsOf(r.Points()...) }

// Transform applies m. Maps that would shear the rectangle are rejected.
func (r *Rectangle) Transform(m Affine) error { return transform(r, m) }

func (r *Rectangle) check(m Affine) error {
	if m.IsSimilarity() {
		return nil
	}
	ux, uy, vx, vy := r.edges(m)
	dot := ux*vx + uy*vy
	if math.Abs(dot) > epsilon*math.Max(1, math.Hypot(ux, uy)*math.Hypot(vx, vy)) {
		return errors.GeometryError("rectangle cannot be sheared: edges would no longer be perpendicular")
	}
	return nil
}

// edges returns the images of the width and height edge vectors under m.
func (r *Rectangle) edges(m Affine) (ux, uy, vx, vy float64) {
	ux, uy = m.ApplyVector(rotateVector(r.w, 0, r.rotation))
	vx, vy = m.ApplyVector(rotateVector(0, r.h, r.rotation))
	return ux, uy, vx, vy
}

func (r *Rectangle) apply(m Affine) {
	if m.IsSimilarity() {
		k, rot, reflect := m.similarity()
		ox, oy := m.Apply(r.origin.Abs())
		if reflect {
			// The origin corner would become a bottom-left corner; re-anchor
			// on the image of the opposite end of the height edge.
			vx, vy := m.ApplyVector(rotateVector(0, r.h, r.rotation))
			ox += vx
			oy += vy
			r.rotation = normAngle(rot - r.rotation)
		} else {
			r.rotation = normAngle(r.rotation + rot)
		}
		r.origin = Pt(ox, oy)
		r.w *= k
		r.h *= k
		r.canonicalize()
		return
	}

	ux, uy, vx, vy := r.edges(m)
	ox, oy := m.Apply(r.origin.Abs())
	if ux*vy-uy*vx < 0 {
		ox += vx
		oy += vy
	}
	r.origin = Pt(ox, oy)
	r.w = math.Hypot(ux, uy)
	r.h = math.Hypot(vx, vy)
	r.rotation = normAngle(atan2deg(uy, ux))
	r.canonicalize()
}

// canonicalize re-anchors a half-turned rectangle on its top-left corner.
func (r *Rectangle) canonicalize() {
	if r.rotation != 180 {
		return
	}
	ox, oy := r.origin.Abs()
	r.origin = Pt(ox-r.w, oy-r.h)
	r.rotation = 0
}

// Clone returns a detached deep copy.
func (r *Rectangle) Clone() Spatial { return r.Copy() }

// Copy returns a detached deep copy.
func (r *Rectangle) Copy() *Rectangle {
	cp := *r
	cp.node = node{style: r.style}
	return &cp
}

// Translate moves the rectangle by (dx, dy).
func (r *Rectangle) Translate(dx, dy float64) *Rectangle {
	r.apply(Translation(dx, dy))
	return r
}

// Rotate rotates the rectangle about its centre.
func (r *Rectangle) Rotate(deg float64) *Rectangle { return r.RotateAround(deg, r.Centroid()) }

// RotateAround rotates the rectangle about c.
func (r *Rectangle) RotateAround(deg float64, c Point) *Rectangle {
	r.apply(Rotation(deg).Around(c))
	return r
}

// Scale scales the rectangle uniformly about its centre.
func (r *Rectangle) Scale(s float64) *Rectangle {
	r.apply(Scaling(s, s).Around(r.Centroid()))
	return r
}

// ScaleXY scales the rectangle about its centre. It fails for a rotated
// rectangle unless the rotation is a multiple of 90 degrees.
func (r *Rectangle) ScaleXY(sx, sy float64) (*Rectangle, error) { return r, scaleXY(r, sx, sy) }

// ScaleAround scales the rectangle about c.
func (r *Rectangle) ScaleAround(sx, sy float64, c Point) (*Rectangle, error) {
	return r, scaleAround(r, sx, sy, c)
}

// Mirror reflects the rectangle across the line through a and b.
func (r *Rectangle) Mirror(a, b Point) (*Rectangle, error) { return r, mirror(r, a, b) }

// FlipLR mirrors the rectangle across the vertical through its centre.
func (r *Rectangle) FlipLR() *Rectangle {
	flipLR(r)
	return r
}

// FlipUD mirrors the rectangle across the horizontal through its centre.
func (r *Rectangle) FlipUD() *Rectangle {
	flipUD(r)
	return r
}
