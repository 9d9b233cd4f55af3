package svg

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/minidraw/pkg/scene"
)

// measureFace is the reference face for text extents. Its metrics are in
// pixels at a nominal size of 13.
var measureFace = basicfont.Face7x13

const measureSize = 13.0

// MeasureText returns the approximate advance width, ascent and descent of
// s set at the given font size.
func MeasureText(s string, size float64) (width, ascent, descent float64) {
	k := size / measureSize
	adv := font.MeasureString(measureFace, s)
	width = float64(adv) / 64 * k
	ascent = float64(measureFace.Ascent) * k
	descent = float64(measureFace.Descent) * k
	return width, ascent, descent
}

// primitiveBounds returns the view box contribution of s. Text is measured
// with its effective font size and anchor; other primitives use their own
// bounds.
func primitiveBounds(s scene.Spatial, st scene.Style) scene.Rect {
	t, ok := s.(*scene.Text)
	if !ok {
		return s.Bounds()
	}

	w, asc, desc := MeasureText(t.Content(), orNum(st.FontSize, defaultFontSize))
	var x0 float64
	switch orStr(st.TextAnchor, defaultTextAnchor) {
	case "middle":
		x0 = -w / 2
	case "end":
		x0 = -w
	}

	ax, ay := t.Anchor().Abs()
	m := scene.Rotation(t.Rotation())
	var r scene.Rect
	for _, c := range [4][2]float64{{x0, -asc}, {x0 + w, -asc}, {x0 + w, desc}, {x0, desc}} {
		x, y := m.Apply(c[0], c[1])
		r = r.Extend(ax+x, ay+y)
	}
	return r
}
