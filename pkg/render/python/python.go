package python

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Target is the registry name of the backend.
const Target = "python"

const header = "from minidraw import Drawing, Group, Style, Line, Circle, Rectangle, Polyline, Arc, Text"

const footer = `d.render_to_file("output.svg")`

func init() {
	scene.Register(Target, New())
}

// Option configures a [Backend].
type Option func(*Backend)

// IgnoreStyle omits all style arguments.
func IgnoreStyle() Option { return func(b *Backend) { b.ignoreStyle = true } }

// Standalone controls whether the import header, the Drawing construction
// and the render call are emitted. Without them the output is a fragment
// that adds to an existing variable d.
func Standalone(on bool) Option { return func(b *Backend) { b.standalone = on } }

// Backend renders drawings as Python source.
type Backend struct {
	ignoreStyle bool
	standalone  bool
}

// New returns a standalone backend with opts applied.
func New(opts ...Option) *Backend {
	b := &Backend{standalone: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extensions returns the file extensions claimed by the backend.
func (b *Backend) Extensions() []string { return []string{".py"} }

// Render returns the Python program for d.
func (b *Backend) Render(d *scene.Drawing) (string, error) {
	w := &writer{ignoreStyle: b.ignoreStyle}
	var vars []string
	groups := 0

	err := scene.Walk(d, func(ev scene.Event) error {
		switch ev.Step {
		case scene.StepEnter:
			if ev.Depth == 0 {
				if b.standalone {
					w.line(header)
					w.line("")
					w.line("d = Drawing(%s)", w.styleKwarg(ev.Node.Style()))
				}
				vars = append(vars, "d")
				return nil
			}
			groups++
			name := fmt.Sprintf("g%d", groups)
			w.line("%s = Group(%s)", name, w.styleKwarg(ev.Node.Style()))
			vars = append(vars, name)
		case scene.StepLeave:
			name := vars[len(vars)-1]
			vars = vars[:len(vars)-1]
			if ev.Depth > 0 {
				w.line("%s.add(%s)", vars[len(vars)-1], name)
			}
		case scene.StepPrimitive:
			expr, err := w.primitive(ev.Resolved, ev.Node.Style())
			if err != nil {
				return err
			}
			w.line("%s.add(%s)", vars[len(vars)-1], expr)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if w.err != nil {
		return "", w.err
	}

	if b.standalone {
		w.line("")
		w.line(footer)
	}
	return w.buf.String(), nil
}

// =============================================================================
// Statements
// =============================================================================

type writer struct {
	buf         bytes.Buffer
	ignoreStyle bool
	err         error
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) primitive(s scene.Spatial, own scene.Style) (string, error) {
	var args []string
	switch v := s.(type) {
	case *scene.Line:
		args = []string{w.point(v.Start()), w.point(v.End())}
		return w.call("Line", args, own)

	case *scene.Circle:
		rx, ry := v.Radii()
		args = []string{w.point(v.Center()), w.float(rx)}
		if v.IsEllipse() {
			args = append(args, "ry="+w.float(ry))
		}
		if v.Rotation() != 0 {
			args = append(args, "rotation="+w.float(v.Rotation()))
		}
		return w.call("Circle", args, own)

	case *scene.Rectangle:
		width, height := v.Size()
		args = []string{w.point(v.Origin()), w.pair(width, height)}
		if v.Rotation() != 0 {
			args = append(args, "rotation="+w.float(v.Rotation()))
		}
		return w.call("Rectangle", args, own)

	case *scene.Polyline:
		pts := make([]string, 0, v.Len())
		for _, p := range v.Points() {
			pts = append(pts, w.point(p))
		}
		args = []string{"[" + strings.Join(pts, ", ") + "]"}
		if v.Closed() {
			args = append(args, "closed=True")
		}
		return w.call("Polyline", args, own)

	case *scene.Arc:
		start, end := v.Angles()
		args = []string{w.point(v.Center()), w.float(v.Radius()), w.float(start), w.float(end)}
		return w.call("Arc", args, own)

	case *scene.Text:
		args = []string{w.point(v.Anchor()), strconv.Quote(v.Content())}
		if v.Rotation() != 0 {
			args = append(args, "rotation="+w.float(v.Rotation()))
		}
		return w.call("Text", args, own)
	}
	return "", errors.New(errors.ErrCodeInternal, "python: unsupported primitive %s", s.Kind())
}

func (w *writer) call(ctor string, args []string, own scene.Style) (string, error) {
	if kw := w.styleKwarg(own); kw != "" {
		args = append(args, kw)
	}
	if w.err != nil {
		return "", w.err
	}
	return ctor + "(" + strings.Join(args, ", ") + ")", nil
}

// styleKwarg returns the style= argument for s, or "" when there is nothing
// to emit.
func (w *writer) styleKwarg(s scene.Style) string {
	if w.ignoreStyle || s.IsEmpty() {
		return ""
	}
	attrs := s.Attrs()
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		v, _ := s.Get(a)
		parts = append(parts, a.String()+"="+w.value(v))
	}
	return "style=Style(" + strings.Join(parts, ", ") + ")"
}

func (w *writer) value(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return w.float(v)
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = w.float(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "None"
}

func (w *writer) point(p scene.Point) string {
	return w.pair(p.Abs())
}

func (w *writer) pair(x, y float64) string {
	return "(" + w.float(x) + ", " + w.float(y) + ")"
}

// float formats f the way Python's repr does. Python has no literal for
// infinities or NaN, so those record an error instead.
func (w *writer) float(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if w.err == nil {
			w.err = errors.GeometryError("cannot export non-finite value %v", f)
		}
		return "0.0"
	}
	return FormatFloat(f)
}

// FormatFloat returns the shortest Python literal for f that reads back to
// the same value.
func FormatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	if a := math.Abs(f); a >= 1e16 || a < 1e-4 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
