package scene

import (
	"math"

	"github.com/matzehuels/minidraw/pkg/errors"
)

// Arc is a circular arc. Angles are in degrees, measured from +x towards +y
// (clockwise on screen), and the arc runs from Start to End.
type Arc struct {
	node
	center     Point
	r          float64
	start, end float64
}

// NewArc returns a detached arc.
func NewArc(center Point, r, start, end float64) *Arc {
	return &Arc{center: center.Absolute(), r: r, start: start, end: end}
}

// Kind returns [KindArc].
func (a *Arc) Kind() Kind { return KindArc }

// Center returns the centre of the supporting circle.
func (a *Arc) Center() Point { return a.center }

// Radius returns the radius.
func (a *Arc) Radius() float64 { return a.r }

// Angles returns the start and end angles in degrees.
func (a *Arc) Angles() (start, end float64) { return a.start, a.end }

// Sweep returns end minus start.
func (a *Arc) Sweep() float64 { return a.end - a.start }

// SetStyle replaces the arc's own style.
func (a *Arc) SetStyle(s Style) *Arc {
	a.style = s
	return a
}

// PointAt returns the point on the supporting circle at deg degrees.
func (a *Arc) PointAt(deg float64) Point {
	cx, cy := a.center.Abs()
	sin, cos := sincos(deg)
	return Pt(cx+a.r*cos, cy+a.r*sin)
}

// Endpoints returns the start and end points.
func (a *Arc) Endpoints() (Point, Point) {
	return a.PointAt(a.start), a.PointAt(a.end)
}

// Points returns the centre.
func (a *Arc) Points() []Point { return []Point{a.center} }

// Centroid returns the centre.
func (a *Arc) Centroid() Point { return a.center }

// Bounds returns the box enclosing the endpoints and every axis extreme the
// arc passes through.
func (a *Arc) Bounds() Rect {
	lo, hi := math.Min(a.start, a.end), math.Max(a.start, a.end)
	p, q := a.Endpoints()
	r := boundsOf(p, q)
	if hi-lo >= 360 {
		return r.Union(NewCircle(a.center, a.r).Bounds())
	}
	for deg := math.Ceil(lo/90) * 90; deg <= hi; deg += 90 {
		r = r.Extend(a.PointAt(deg).Abs())
	}
	return r
}

// Transform applies m. Only similarity maps are accepted.
func (a *Arc) Transform(m Affine) error { return transform(a, m) }

func (a *Arc) check(m Affine) error {
	if !m.IsSimilarity() {
		return errors.GeometryError("arc cannot represent a non-uniform transform")
	}
	return nil
}

func (a *Arc) apply(m Affine) {
	a.center.Transform(m)
	k, rot, reflect := m.similarity()
	a.r *= k
	switch {
	case reflect:
		a.start, a.end = rot-a.end, rot-a.start
	case rot != 0:
		a.start += rot
		a.end += rot
	default:
		return
	}
	if shift := normAngle(a.start) - a.start; shift != 0 {
		a.start += shift
		a.end += shift
	}
}

// Clone returns a detached deep copy.
func (a *Arc) Clone() Spatial { return a.Copy() }

// Copy returns a detached deep copy.
func (a *Arc) Copy() *Arc {
	cp := *a
	cp.node = node{style: a.style}
	return &cp
}

// Translate moves the arc by (dx, dy).
func (a *Arc) Translate(dx, dy float64) *Arc {
	a.apply(Translation(dx, dy))
	return a
}

// Rotate rotates the arc about its centre.
func (a *Arc) Rotate(deg float64) *Arc { return a.RotateAround(deg, a.center) }

// RotateAround rotates the arc about c.
func (a *Arc) RotateAround(deg float64, c Point) *Arc {
	a.apply(Rotation(deg).Around(c))
	return a
}

// Scale scales the arc uniformly about its centre.
func (a *Arc) Scale(s float64) *Arc {
	a.apply(Scaling(s, s).Around(a.center))
	return a
}

// ScaleXY scales the arc about its centre. Unequal factors are rejected.
func (a *Arc) ScaleXY(sx, sy float64) (*Arc, error) { return a, scaleXY(a, sx, sy) }

// ScaleAround scales the arc about c. Unequal factors are rejected.
func (a *Arc) ScaleAround(sx, sy float64, c Point) (*Arc, error) {
	return a, scaleAround(a, sx, sy, c)
}

// Mirror reflects the arc across the line through p and q.
func (a *Arc) Mirror(p, q Point) (*Arc, error) { return a, mirror(a, p, q) }

// FlipLR mirrors the arc across the vertical through its centre.
func (a *Arc) FlipLR() *Arc {
	flipLR(a)
	return a
}

// FlipUD mirrors the arc across the horizontal through its centre.
func (a *Arc) FlipUD() *Arc {
	flipUD(a)
	return a
}
