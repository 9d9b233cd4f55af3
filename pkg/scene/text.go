package scene

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text is a string placed at an anchor point and rotated about it.
type Text struct {
	node
	anchor   Point
	content  string
	rotation float64
}

// NewText returns a detached text. The content is stored in Unicode
// normalisation form C; invalid UTF-8 is replaced.
func NewText(anchor Point, content string) *Text {
	return &Text{anchor: anchor.Absolute(), content: normalize(content)}
}

func normalize(s string) string {
	return norm.NFC.String(strings.ToValidUTF8(s, "�"))
}

// Kind returns [KindText].
func (t *Text) Kind() Kind { return KindText }

// Anchor returns the anchor point.
func (t *Text) Anchor() Point { return t.anchor }

// Content returns the text.
func (t *Text) Content() string { return t.content }

// Rotation returns the rotation about the anchor in degrees.
func (t *Text) Rotation() float64 { return t.rotation }

// SetStyle replaces the text's own style.
func (t *Text) SetStyle(s Style) *Text {
	t.style = s
	return t
}

// SetRotation sets the rotation about the anchor in degrees.
func (t *Text) SetRotation(deg float64) *Text {
	t.rotation = deg
	return t
}

// Points returns the anchor.
func (t *Text) Points() []Point { return []Point{t.anchor} }

// Centroid returns the anchor.
func (t *Text) Centroid() Point { return t.anchor }

// Bounds returns the anchor only; glyph extents depend on the backend.
func (t *Text) Bounds() Rect { return boundsOf(t.anchor) }

// Transform moves the anchor and turns the baseline with m. Glyphs are never
// distorted, so every map is accepted.
func (t *Text) Transform(m Affine) error { return transform(t, m) }

func (t *Text) check(Affine) error { return nil }

func (t *Text) apply(m Affine) {
	t.anchor.Transform(m)
	if m.IsSimilarity() {
		_, rot, reflect := m.similarity()
		switch {
		case reflect:
			t.rotation = normAngle(rot - t.rotation)
		case rot != 0:
			t.rotation = normAngle(t.rotation + rot)
		}
		return
	}
	x, y := m.ApplyVector(rotateVector(1, 0, t.rotation))
	t.rotation = normAngle(atan2deg(y, x))
}

// Clone returns a detached deep copy.
func (t *Text) Clone() Spatial { return t.Copy() }

// Copy returns a detached deep copy.
func (t *Text) Copy() *Text {
	cp := *t
	cp.node = node{style: t.style}
	return &cp
}

// Translate moves the anchor by (dx, dy).
func (t *Text) Translate(dx, dy float64) *Text {
	t.apply(Translation(dx, dy))
	return t
}

// Rotate turns the text about its anchor.
func (t *Text) Rotate(deg float64) *Text { return t.RotateAround(deg, t.anchor) }

// RotateAround rotates the text about c.
func (t *Text) RotateAround(deg float64, c Point) *Text {
	t.apply(Rotation(deg).Around(c))
	return t
}

// Scale scales the anchor position about itself, which leaves the text in
// place. Font size is a style attribute and is not affected.
func (t *Text) Scale(s float64) *Text {
	t.apply(Scaling(s, s).Around(t.anchor))
	return t
}

// ScaleXY scales the anchor position about itself.
func (t *Text) ScaleXY(sx, sy float64) (*Text, error) { return t, scaleXY(t, sx, sy) }

// ScaleAround scales the anchor position about c.
func (t *Text) ScaleAround(sx, sy float64, c Point) (*Text, error) {
	return t, scaleAround(t, sx, sy, c)
}

// Mirror reflects the anchor across the line through a and b.
func (t *Text) Mirror(a, b Point) (*Text, error) { return t, mirror(t, a, b) }

// FlipLR mirrors the text across the vertical through its anchor.
func (t *Text) FlipLR() *Text {
	flipLR(t)
	return t
}

// FlipUD mirrors the text across the horizontal through its anchor.
func (t *Text) FlipUD() *Text {
	flipUD(t)
	return t
}
