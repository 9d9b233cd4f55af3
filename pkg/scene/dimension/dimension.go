package dimension

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/minidraw/pkg/scene"
)

// arrowAngle is the half-angle of the arrow heads, in degrees.
const arrowAngle = 30

// Shape is a composite that generates its primitives procedurally.
type Shape interface {
	Elements() []scene.Spatial
}

// Add appends the elements of every shape to g.
func Add(g *scene.Group, shapes ...Shape) error {
	for _, s := range shapes {
		if err := g.Add(s.Elements()...); err != nil {
			return err
		}
	}
	return nil
}

// Group returns a new group holding the elements of s.
func Group(s Shape, opts ...scene.StyleOption) *scene.Group {
	g := scene.NewGroup(opts...)
	// Fresh elements cannot be attached elsewhere or form cycles.
	_ = g.Add(s.Elements()...)
	return g
}

// Style holds the geometry and formatting shared by dimension annotations.
type Style struct {
	// Scale multiplies the measured length before it is formatted.
	Scale float64
	// Units is appended to the label, separated by a space, when set.
	Units string
	// Offset is the perpendicular distance from the measured points to the
	// dimension line.
	Offset float64
	// TextOffset is the distance of the label from the dimension line.
	TextOffset float64
	// ArrowSize is the leg length of the arrow heads.
	ArrowSize float64
	// Extension is how far extension lines overshoot the dimension line.
	Extension float64
	// ConnectionOffset is the gap between a measured point and the start of
	// its extension line.
	ConnectionOffset float64
	// Precision is the number of decimals in the label.
	Precision int
	// Format, when set, is a fmt verb string applied to the scaled length
	// instead of Precision and Units, e.g. "%.2f in".
	Format string

	LabelStyle scene.Style
	ArrowStyle scene.Style
}

// DefaultStyle returns the style used when none is given.
func DefaultStyle() Style {
	return Style{
		Scale:            1,
		Offset:           10,
		TextOffset:       4,
		ArrowSize:        4,
		Extension:        2,
		ConnectionOffset: 1,
		Precision:        1,
		LabelStyle:       scene.NewStyle(scene.Stroke("none"), scene.Fill("#000"), scene.TextAnchor("middle")),
		ArrowStyle:       scene.NewStyle(scene.Stroke("#000"), scene.StrokeWidth(0.5)),
	}
}

// FormatLabel returns the label text for a measured length.
func (s Style) FormatLabel(length float64) string {
	scaled := length * s.Scale
	if s.Format != "" {
		return fmt.Sprintf(s.Format, scaled)
	}
	out := strconv.FormatFloat(scaled, 'f', max(s.Precision, 0), 64)
	if s.Units != "" {
		out += " " + s.Units
	}
	return out
}

// Option configures a [Length].
type Option func(*Length)

// WithStyle replaces the whole dimension style.
func WithStyle(s Style) Option { return func(l *Length) { l.Style = s } }

// WithLabel sets a fixed label instead of the formatted length.
func WithLabel(label string) Option { return func(l *Length) { l.Label = label } }

// WithUnits sets the units appended to the formatted length.
func WithUnits(units string) Option { return func(l *Length) { l.Style.Units = units } }

// WithOffset sets the distance of the dimension line from the measured points.
func WithOffset(d float64) Option { return func(l *Length) { l.Style.Offset = d } }

// Length is a linear dimension between two points.
type Length struct {
	P1, P2 scene.Point
	Label  string
	Style  Style
}

// NewLength returns a dimension measuring p1 to p2 with the default style
// and opts applied. Endpoints that carry a reference are resolved each time
// elements are generated, so the dimension follows the referenced points.
func NewLength(p1, p2 scene.Point, opts ...Option) *Length {
	l := &Length{P1: p1, P2: p2, Style: DefaultStyle()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Measure returns the unscaled distance between the endpoints.
func (l *Length) Measure() float64 {
	x1, y1 := l.P1.Abs()
	x2, y2 := l.P2.Abs()
	return math.Hypot(x2-x1, y2-y1)
}

// Elements returns the extension lines, the dimension line, the two arrow
// heads and the label, in that order. Coincident endpoints produce no
// elements.
func (l *Length) Elements() []scene.Spatial {
	s := l.Style
	x1, y1 := l.P1.Abs()
	x2, y2 := l.P2.Abs()
	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return nil
	}

	ux, uy := (x2-x1)/length, (y2-y1)/length
	nx, ny := uy, -ux

	along := func(x, y, d float64) scene.Point { return scene.Pt(x+nx*d, y+ny*d) }
	d1 := along(x1, y1, s.Offset)
	d2 := along(x2, y2, s.Offset)
	d1x, d1y := d1.Abs()
	d2x, d2y := d2.Abs()

	label := l.Label
	if label == "" {
		label = s.FormatLabel(length)
	}
	center := along((d1x+d2x)/2, (d1y+d2y)/2, s.TextOffset)

	return []scene.Spatial{
		scene.NewLine(along(x1, y1, s.ConnectionOffset), along(d1x, d1y, s.Extension)).SetStyle(s.ArrowStyle),
		scene.NewLine(along(x2, y2, s.ConnectionOffset), along(d2x, d2y, s.Extension)).SetStyle(s.ArrowStyle),
		scene.NewLine(d1, d2).SetStyle(s.ArrowStyle),
		arrow(d1x, d1y, ux, uy, s.ArrowSize).SetStyle(s.ArrowStyle),
		arrow(d2x, d2y, -ux, -uy, s.ArrowSize).SetStyle(s.ArrowStyle),
		scene.NewText(center, label).
			SetRotation(math.Atan2(uy, ux) * 180 / math.Pi).
			SetStyle(s.LabelStyle),
	}
}

// arrow returns an open V whose tip is at (x, y) and whose legs point along
// (ux, uy), spread by arrowAngle to each side.
func arrow(x, y, ux, uy, size float64) *scene.Polyline {
	sin, cos := math.Sincos(arrowAngle * math.Pi / 180)
	left := scene.Pt(x+(cos*ux-sin*uy)*size, y+(sin*ux+cos*uy)*size)
	right := scene.Pt(x+(cos*ux+sin*uy)*size, y+(-sin*ux+cos*uy)*size)
	return scene.NewPolyline(left, scene.Pt(x, y), right)
}
