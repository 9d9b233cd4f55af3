package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Target is the registry name of the backend.
const Target = "svg"

const defaultMargin = 10

// Backend-side defaults for attributes absent from the effective style.
const (
	defaultStroke      = "black"
	defaultStrokeWidth = 1.0
	defaultFill        = "none"
	defaultOpacity     = 1.0
	defaultTextFill    = "black"
	defaultFontSize    = 10.0
	defaultFontFamily  = "sans-serif"
	defaultTextAnchor  = "start"
)

func init() {
	scene.Register(Target, New())
}

// Option configures a [Backend].
type Option func(*Backend)

// WithMargin sets the space added around the drawing bounds.
func WithMargin(m float64) Option { return func(b *Backend) { b.margin = m } }

// Backend renders drawings to SVG.
type Backend struct {
	margin float64
}

// New returns a backend with opts applied.
func New(opts ...Option) *Backend {
	b := &Backend{margin: defaultMargin}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extensions returns the file extensions claimed by the backend.
func (b *Backend) Extensions() []string { return []string{".svg"} }

// Render returns the SVG document for d.
func (b *Backend) Render(d *scene.Drawing) (string, error) {
	var body bytes.Buffer
	var bounds scene.Rect

	err := scene.Walk(d, func(ev scene.Event) error {
		if ev.Step != scene.StepPrimitive {
			return nil
		}
		if err := writeElement(&body, ev.Resolved, ev.Style); err != nil {
			return err
		}
		bounds = bounds.Union(primitiveBounds(ev.Resolved, ev.Style))
		return nil
	})
	if err != nil {
		return "", err
	}

	minX, minY, w, h := -10.0, -10.0, 120.0, 120.0
	if !bounds.IsEmpty() {
		minX, minY = bounds.MinX-b.margin, bounds.MinY-b.margin
		w, h = bounds.Width()+2*b.margin, bounds.Height()+2*b.margin
	}
	if !finite(minX, minY, w, h) {
		return "", errors.GeometryError("drawing bounds are not finite")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(w), num(h), num(minX), num(minY), num(w), num(h))
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.String(), nil
}

// =============================================================================
// Elements
// =============================================================================

func writeElement(buf *bytes.Buffer, s scene.Spatial, st scene.Style) error {
	switch v := s.(type) {
	case *scene.Line:
		x1, y1 := v.Start().Abs()
		x2, y2 := v.End().Abs()
		if !finite(x1, y1, x2, y2) {
			return nonFinite(v)
		}
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"`, num(x1), num(y1), num(x2), num(y2))
		writeStroke(buf, st, false)

	case *scene.Circle:
		cx, cy := v.Center().Abs()
		rx, ry := v.Radii()
		if !finite(cx, cy, rx, ry, v.Rotation()) {
			return nonFinite(v)
		}
		if v.IsEllipse() {
			fmt.Fprintf(buf, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s"`, num(cx), num(cy), num(math.Abs(rx)), num(math.Abs(ry)))
			writeRotate(buf, v.Rotation(), cx, cy)
		} else {
			fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s"`, num(cx), num(cy), num(math.Abs(rx)))
		}
		writeStroke(buf, st, true)

	case *scene.Rectangle:
		ox, oy := v.Origin().Abs()
		w, h := v.Size()
		if !finite(ox, oy, w, h, v.Rotation()) {
			return nonFinite(v)
		}
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"`,
			num(ox+math.Min(0, w)), num(oy+math.Min(0, h)), num(math.Abs(w)), num(math.Abs(h)))
		writeRotate(buf, v.Rotation(), ox, oy)
		writeStroke(buf, st, true)

	case *scene.Polyline:
		tag := "polyline"
		if v.Closed() {
			tag = "polygon"
		}
		pts := make([]string, 0, v.Len())
		for _, p := range v.Points() {
			x, y := p.Abs()
			if !finite(x, y) {
				return nonFinite(v)
			}
			pts = append(pts, num(x)+","+num(y))
		}
		fmt.Fprintf(buf, `  <%s points="%s"`, tag, strings.Join(pts, " "))
		writeStroke(buf, st, true)

	case *scene.Arc:
		d, err := arcPath(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, `  <path d="%s"`, d)
		writeStroke(buf, st, true)

	case *scene.Text:
		return writeText(buf, v, st)

	default:
		return errors.New(errors.ErrCodeInternal, "svg: unsupported primitive %s", s.Kind())
	}
	buf.WriteString("/>\n")
	return nil
}

func writeText(buf *bytes.Buffer, t *scene.Text, st scene.Style) error {
	x, y := t.Anchor().Abs()
	if !finite(x, y, t.Rotation()) {
		return nonFinite(t)
	}
	size := orNum(st.FontSize, defaultFontSize)
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-size="%s" font-family="%s" text-anchor="%s" fill="%s" opacity="%s"`,
		num(x), num(y), num(size),
		attr(orStr(st.FontFamily, defaultFontFamily)),
		attr(orStr(st.TextAnchor, defaultTextAnchor)),
		attr(orStr(st.Fill, defaultTextFill)),
		num(orNum(st.Opacity, defaultOpacity)))
	writeRotate(buf, t.Rotation(), x, y)
	buf.WriteString(">")
	_ = xml.EscapeText(buf, []byte(t.Content()))
	buf.WriteString("</text>\n")
	return nil
}

// writeStroke writes the stroke, fill and opacity attributes. Lines have no
// interior and get no fill.
func writeStroke(buf *bytes.Buffer, st scene.Style, fill bool) {
	fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`,
		attr(orStr(st.Stroke, defaultStroke)), num(orNum(st.StrokeWidth, defaultStrokeWidth)))
	if fill {
		fmt.Fprintf(buf, ` fill="%s"`, attr(orStr(st.Fill, defaultFill)))
	}
	fmt.Fprintf(buf, ` opacity="%s"`, num(orNum(st.Opacity, defaultOpacity)))
	if dash, ok := st.Dash(); ok && len(dash) > 0 {
		parts := make([]string, len(dash))
		for i, v := range dash {
			parts[i] = num(v)
		}
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	if v, ok := st.LineCap(); ok {
		fmt.Fprintf(buf, ` stroke-linecap="%s"`, attr(v))
	}
	if v, ok := st.LineJoin(); ok {
		fmt.Fprintf(buf, ` stroke-linejoin="%s"`, attr(v))
	}
}

func writeRotate(buf *bytes.Buffer, deg, cx, cy float64) {
	if num(deg) == "0" {
		return
	}
	fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, num(deg), num(cx), num(cy))
}

// arcPath returns the path data of a. Sweeps of a full turn or more are
// drawn as two half arcs since a single arc command cannot close a circle.
func arcPath(a *scene.Arc) (string, error) {
	cx, cy := a.Center().Abs()
	start, end := a.Angles()
	r := math.Abs(a.Radius())
	if !finite(cx, cy, r, start, end) {
		return "", nonFinite(a)
	}
	sweep := end - start
	flag := 1
	if sweep < 0 {
		flag = 0
	}
	sx, sy := a.PointAt(start).Abs()
	rs := num(r)

	if math.Abs(sweep) >= 360 {
		mx, my := a.PointAt(start + math.Copysign(180, sweep)).Abs()
		return fmt.Sprintf("M %s %s A %s %s 0 1 %d %s %s A %s %s 0 1 %d %s %s",
			num(sx), num(sy), rs, rs, flag, num(mx), num(my), rs, rs, flag, num(sx), num(sy)), nil
	}

	large := 0
	if math.Abs(sweep) > 180 {
		large = 1
	}
	ex, ey := a.PointAt(end).Abs()
	return fmt.Sprintf("M %s %s A %s %s 0 %d %d %s %s",
		num(sx), num(sy), rs, rs, large, flag, num(ex), num(ey)), nil
}

// =============================================================================
// Formatting
// =============================================================================

// num formats v rounded to six decimals without trailing zeros.
func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func orStr(get func() (string, bool), def string) string {
	if v, ok := get(); ok {
		return v
	}
	return def
}

func orNum(get func() (float64, bool), def float64) float64 {
	if v, ok := get(); ok {
		return v
	}
	return def
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func nonFinite(s scene.Spatial) error {
	return errors.GeometryError("%s has non-finite geometry", s.Kind())
}
