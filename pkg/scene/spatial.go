package scene

import "math"

// Kind identifies the concrete type of a scene node.
type Kind uint8

// Node kinds.
const (
	KindGroup Kind = iota
	KindLine
	KindCircle
	KindRectangle
	KindPolyline
	KindArc
	KindText
)

var kindNames = [...]string{
	KindGroup:     "Group",
	KindLine:      "Line",
	KindCircle:    "Circle",
	KindRectangle: "Rectangle",
	KindPolyline:  "Polyline",
	KindArc:       "Arc",
	KindText:      "Text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spatial is implemented by every primitive and by [Group]. The set of
// implementations is closed.
type Spatial interface {
	// Kind returns the node's concrete kind.
	Kind() Kind
	// Style returns the node's own style, not the effective one.
	Style() Style
	// Parent returns the group the node belongs to, or nil.
	Parent() *Group
	// Centroid returns the default centre for rotation and scaling.
	Centroid() Point
	// Points returns the node's characteristic points.
	Points() []Point
	// Bounds returns the axis-aligned bounding box of the geometry.
	Bounds() Rect
	// Transform applies m, or returns a GEOMETRY error and leaves the node
	// unchanged if the node cannot represent the result.
	Transform(m Affine) error
	// Clone returns a deep, detached copy.
	Clone() Spatial

	base() *node
	check(m Affine) error
	apply(m Affine)
}

// node holds the state shared by every Spatial.
type node struct {
	parent *Group
	style  Style
}

func (n *node) base() *node { return n }

// Parent returns the containing group, or nil when detached.
func (n *node) Parent() *Group { return n.parent }

// Style returns the node's own style.
func (n *node) Style() Style { return n.style }

// transform is the shared implementation of Spatial.Transform.
func transform(s Spatial, m Affine) error {
	if err := s.check(m); err != nil {
		return err
	}
	s.apply(m)
	return nil
}

// centroid returns the mean of pts, or the origin when pts is empty.
func centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Pt(0, 0)
	}
	var sx, sy float64
	for _, p := range pts {
		x, y := p.Abs()
		sx += x
		sy += y
	}
	n := float64(len(pts))
	return Pt(sx/n, sy/n)
}

// rotateVector rotates (x, y) by deg degrees.
func rotateVector(x, y, deg float64) (float64, float64) {
	sin, cos := sincos(deg)
	return x*cos - y*sin, x*sin + y*cos
}

// normAngle maps deg into (-180, 180].
func normAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// The per-type chainable helpers all reduce to these.

func scaleXY(s Spatial, sx, sy float64) error {
	return transform(s, Scaling(sx, sy).Around(s.Centroid()))
}

func scaleAround(s Spatial, sx, sy float64, c Point) error {
	return transform(s, Scaling(sx, sy).Around(c))
}

func mirror(s Spatial, a, b Point) error {
	m, err := Reflection(a, b)
	if err != nil {
		return err
	}
	return transform(s, m)
}

func flipLR(s Spatial) {
	s.apply(Scaling(-1, 1).Around(s.Centroid()))
}

func flipUD(s Spatial) {
	s.apply(Scaling(1, -1).Around(s.Centroid()))
}

func distance(p, q Point) float64 {
	px, py := p.Abs()
	qx, qy := q.Abs()
	return math.Hypot(qx-px, qy-py)
}
