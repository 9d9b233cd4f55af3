package gocode

import (
	"bytes"
	"fmt"
	"go/format"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Target is the registry name of the backend.
const Target = "go"

const defaultOutput = "output.svg"

const header = `// Code generated by minidraw. DO NOT EDIT.

package main

import (
	"log"

	_ "github.com/matzehuels/minidraw/pkg/render"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func main() {
`

func init() {
	scene.Register(Target, New())
}

// Option configures a [Backend].
type Option func(*Backend)

// WithOutput sets the file the generated program renders to. The target is
// inferred from its extension when the program runs.
func WithOutput(path string) Option { return func(b *Backend) { b.output = path } }

// Backend renders drawings as Go source.
type Backend struct {
	output string
}

// New returns a backend with opts applied.
func New(opts ...Option) *Backend {
	b := &Backend{output: defaultOutput}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extensions returns the file extensions claimed by the backend.
func (b *Backend) Extensions() []string { return []string{".go"} }

// Render returns the formatted Go program for d.
func (b *Backend) Render(d *scene.Drawing) (string, error) {
	w := &writer{}
	w.buf.WriteString(header)

	var vars []string
	groups := 0
	err := scene.Walk(d, func(ev scene.Event) error {
		switch ev.Step {
		case scene.StepEnter:
			if ev.Depth == 0 {
				w.line("d := scene.New(%s)", w.options(ev.Node.Style()))
				vars = append(vars, "d")
				return nil
			}
			parent := vars[len(vars)-1]
			call := fmt.Sprintf("%s.SubGroup(%s)", parent, w.options(ev.Node.Style()))
			if ev.Node.(*scene.Group).Len() == 0 {
				w.line("%s", call)
				vars = append(vars, "")
				return nil
			}
			groups++
			name := fmt.Sprintf("g%d", groups)
			w.line("%s := %s", name, call)
			vars = append(vars, name)
		case scene.StepLeave:
			vars = vars[:len(vars)-1]
		case scene.StepPrimitive:
			stmt, err := w.primitive(vars[len(vars)-1], ev.Resolved, ev.Node.Style())
			if err != nil {
				return err
			}
			w.line("%s", stmt)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if w.err != nil {
		return "", w.err
	}

	w.line("")
	w.line("if err := d.RenderToFile(%s, %q); err != nil {", strconv.Quote(b.output), "")
	w.line("log.Fatal(err)")
	w.line("}")
	w.line("}")

	src, err := format.Source(w.buf.Bytes())
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "go: format generated source")
	}
	return string(src), nil
}

// =============================================================================
// Statements
// =============================================================================

type writer struct {
	buf bytes.Buffer
	err error
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) primitive(parent string, s scene.Spatial, own scene.Style) (string, error) {
	var stmt string
	switch v := s.(type) {
	case *scene.Line:
		stmt = fmt.Sprintf("%s.Line(%s, %s)", parent, w.point(v.Start()), w.point(v.End()))

	case *scene.Circle:
		rx, ry := v.Radii()
		stmt = fmt.Sprintf("%s.Circle(%s, %s)", parent, w.point(v.Center()), w.float(rx))
		if v.IsEllipse() {
			stmt += fmt.Sprintf(".SetRadii(%s, %s)", w.float(rx), w.float(ry))
		}
		if v.Rotation() != 0 {
			stmt += fmt.Sprintf(".SetRotation(%s)", w.float(v.Rotation()))
		}

	case *scene.Rectangle:
		width, height := v.Size()
		stmt = fmt.Sprintf("%s.Rectangle(%s, %s, %s)", parent, w.point(v.Origin()), w.float(width), w.float(height))
		if v.Rotation() != 0 {
			stmt += fmt.Sprintf(".SetRotation(%s)", w.float(v.Rotation()))
		}

	case *scene.Polyline:
		pts := make([]string, 0, v.Len())
		for _, p := range v.Points() {
			pts = append(pts, w.point(p))
		}
		fn := "Polyline"
		if v.Closed() {
			fn = "Polygon"
		}
		stmt = fmt.Sprintf("%s.%s(%s)", parent, fn, strings.Join(pts, ", "))

	case *scene.Arc:
		start, end := v.Angles()
		stmt = fmt.Sprintf("%s.Arc(%s, %s, %s, %s)", parent, w.point(v.Center()), w.float(v.Radius()), w.float(start), w.float(end))

	case *scene.Text:
		stmt = fmt.Sprintf("%s.Text(%s, %s)", parent, w.point(v.Anchor()), strconv.Quote(v.Content()))
		if v.Rotation() != 0 {
			stmt += fmt.Sprintf(".SetRotation(%s)", w.float(v.Rotation()))
		}

	default:
		return "", errors.New(errors.ErrCodeInternal, "go: unsupported primitive %s", s.Kind())
	}

	if !own.IsEmpty() {
		stmt += fmt.Sprintf(".SetStyle(scene.NewStyle(%s))", w.options(own))
	}
	return stmt, w.err
}

var optionNames = map[scene.Attr]string{
	scene.AttrStroke:      "Stroke",
	scene.AttrStrokeWidth: "StrokeWidth",
	scene.AttrFill:        "Fill",
	scene.AttrOpacity:     "Opacity",
	scene.AttrDash:        "Dash",
	scene.AttrLineCap:     "LineCap",
	scene.AttrLineJoin:    "LineJoin",
	scene.AttrFontSize:    "FontSize",
	scene.AttrFontFamily:  "FontFamily",
	scene.AttrTextAnchor:  "TextAnchor",
}

// options returns the style options that rebuild s, comma separated.
func (w *writer) options(s scene.Style) string {
	attrs := s.Attrs()
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		v, _ := s.Get(a)
		var arg string
		switch v := v.(type) {
		case string:
			arg = strconv.Quote(v)
		case float64:
			arg = w.float(v)
		case []float64:
			fs := make([]string, len(v))
			for i, f := range v {
				fs[i] = w.float(f)
			}
			arg = strings.Join(fs, ", ")
		}
		parts = append(parts, fmt.Sprintf("scene.%s(%s)", optionNames[a], arg))
	}
	return strings.Join(parts, ", ")
}

func (w *writer) point(p scene.Point) string {
	x, y := p.Abs()
	return "scene.Pt(" + w.float(x) + ", " + w.float(y) + ")"
}

// float formats f as the shortest Go constant that converts back to it.
func (w *writer) float(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if w.err == nil {
			w.err = errors.GeometryError("cannot export non-finite value %v", f)
		}
		return "0"
	}
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e16 || a < 1e-4 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
