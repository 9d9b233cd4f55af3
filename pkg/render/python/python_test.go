package python_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/render/python"
	_ "github.com/matzehuels/minidraw/pkg/render/svg"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func TestRender(t *testing.T) {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
	g := d.SubGroup(scene.Fill("red"))
	g.Circle(scene.Pt(50, 50), 20)
	g.Text(scene.Pt(0, 0), `say "hi"`).SetRotation(15)
	d.Polygon(scene.Pt(0, 0), scene.Pt(1, 0), scene.Pt(0, 1))

	got, err := d.RenderToString(python.Target)
	if err != nil {
		t.Fatal(err)
	}
	want := `from minidraw import Drawing, Group, Style, Line, Circle, Rectangle, Polyline, Arc, Text

d = Drawing(style=Style(stroke="black"))
d.add(Line((10.0, 10.0), (100.0, 60.0)))
g1 = Group(style=Style(fill="red"))
g1.add(Circle((50.0, 50.0), 20.0))
g1.add(Text((0.0, 0.0), "say \"hi\"", rotation=15.0))
d.add(g1)
d.add(Polyline([(0.0, 0.0), (1.0, 0.0), (0.0, 1.0)], closed=True))

d.render_to_file("output.svg")
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBakesFramesAndOwnStyles(t *testing.T) {
	d := scene.New()
	g := d.SubGroup()
	g.SetFrame(scene.Translation(5, 0))
	g.Rectangle(scene.Pt(0, 0), 2, 1).SetStyle(scene.NewStyle(scene.Dash(1, 0.5), scene.StrokeWidth(2)))
	g.Arc(scene.Pt(0, 0), 3, 0, 90)
	g.Circle(scene.Pt(0, 0), 4).SetRadii(4, 2)

	got, err := python.New(python.Standalone(false)).Render(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `g1 = Group()
g1.add(Rectangle((5.0, 0.0), (2.0, 1.0), style=Style(stroke_width=2.0, dash=[1.0, 0.5])))
g1.add(Arc((5.0, 0.0), 3.0, 0.0, 90.0))
g1.add(Circle((5.0, 0.0), 4.0, ry=2.0))
d.add(g1)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIgnoreStyle(t *testing.T) {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(0, 0), scene.Pt(1, 1)).SetStyle(scene.NewStyle(scene.Fill("red")))

	got, err := python.New(python.IgnoreStyle()).Render(d)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "Style(") {
		t.Errorf("style emitted:\n%s", got)
	}
	if !strings.Contains(got, "d = Drawing()\nd.add(Line((0.0, 0.0), (1.0, 1.0)))\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestRenderRejectsNonFinite(t *testing.T) {
	d := scene.New()
	d.Line(scene.Pt(math.Inf(1), 0), scene.Pt(0, 0))
	if _, err := d.RenderToString(python.Target); !errors.IsGeometry(err) {
		t.Errorf("error = %v, want GEOMETRY", err)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{123456789, "123456789.0"},
		{1e-5, "1e-05"},
		{1e16, "1e+16"},
		{0.30000000000000004, "0.30000000000000004"},
	}
	for _, tt := range tests {
		if got := python.FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// roundTripScene exercises every primitive, nested styles, frames and
// rotations that leave non-terminating decimals.
func roundTripScene() *scene.Drawing {
	d := scene.New(scene.Stroke("#333"), scene.FontFamily("serif"))
	d.Line(scene.Pt(10, 10), scene.Pt(100, 60)).SetStyle(scene.NewStyle(scene.Stroke("black")))

	g := d.SubGroup(scene.Fill("none"), scene.StrokeWidth(0.75))
	g.Circle(scene.Pt(40, 40), 10)
	g.Circle(scene.Pt(0, 0), 6).SetRadii(6, 3).SetRotation(20)
	g.Rectangle(scene.Pt(60, 20), 20, 10).Rotate(30)
	g.Polyline(scene.Pt(0, 0), scene.Pt(20, 0), scene.Pt(10, 15)).SetStyle(scene.NewStyle(scene.Dash(3, 1.5), scene.LineCap("round")))
	g.Arc(scene.Pt(50, 50), 15, 10, 250)
	g.Rotate(17)

	inner := g.SubGroup(scene.Opacity(0.5))
	inner.SetFrame(scene.Rotation(33).Multiply(scene.Translation(3, -7)))
	inner.Text(scene.Pt(5, 90), "minidraw é <&>").SetRotation(-12.5)
	inner.Polygon(scene.Pt(1, 1), scene.Pt(2, 3), scene.Pt(4, 1))

	d.SubGroup()
	return d
}

func TestRoundTrip(t *testing.T) {
	d := roundTripScene()
	src, err := d.RenderToString(python.Target)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := python.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error: %v\n%s", err, src)
	}

	want, err := d.RenderToString("svg")
	if err != nil {
		t.Fatal(err)
	}
	got, err := parsed.RenderToString("svg")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("svg of parsed program differs (-orig +parsed):\n%s", diff)
	}

	again, err := parsed.RenderToString(python.Target)
	if err != nil {
		t.Fatal(err)
	}
	if again != src {
		t.Errorf("re-export differs (-first +second):\n%s", cmp.Diff(src, again))
	}
}

func TestParseHandWritten(t *testing.T) {
	src := `# a hand written scene
from minidraw import *

d = Drawing()
c = Circle((0, 0), 5).translate(10, 10)
g = Group(c, *[Line((0, 0), (1, 0))], style=Style(stroke='blue', dash=[2, 1]))
d.add(g)
d.add(Text((1, 2), 'it\'s "quoted"'))
g.rotate(90, center=(0, 0))
d.render_to_file('out.svg')
`
	d, err := python.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Fatalf("drawing has %d children, want 2", d.Len())
	}

	g := d.Children()[0].(*scene.Group)
	if !g.Style().Equal(scene.NewStyle(scene.Stroke("blue"), scene.Dash(2, 1))) {
		t.Errorf("group style = %v", g.Style())
	}

	kids := g.Children()
	cx, cy := kids[0].(*scene.Circle).Center().Abs()
	l := kids[1].(*scene.Line)
	x1, y1 := l.Start().Abs()
	x2, y2 := l.End().Abs()
	got := []float64{cx, cy, x1, y1, x2, y2}
	want := []float64{-10, 10, 0, 0, 0, 1}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("geometry after rotate mismatch (-want +got):\n%s", diff)
	}

	if txt := d.Children()[1].(*scene.Text).Content(); txt != `it's "quoted"` {
		t.Errorf("text content = %q", txt)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"undefined name", "d = Drawing()\nd.add(x)", "python:2:7: undefined name x"},
		{"unknown constructor", "d = Drawing()\nd.add(Square((0, 0), 1))", "unknown constructor Square"},
		{"unexpected keyword", "d = Drawing()\nd.add(Line((0, 0), (1, 1), width=2))", "unexpected keyword argument width"},
		{"wrong arity", "d = Drawing()\nd.add(Arc((0, 0), 1, 2))", "Arc takes 4 to 4 positional arguments, got 3"},
		{"bad point", "d = Drawing()\nd.add(Line(1, (1, 1)))", "expected an (x, y) pair"},
		{"bad style", "d = Drawing(style=Style(stroke=1.0))", "INVALID_STYLE"},
		{"cycle", "d = Drawing()\ng = Group()\ng.add(g)", "CYCLE"},
		{"unknown method", "d = Drawing()\nd.explode()", "has no method explode"},
		{"unterminated string", "d = Drawing()\nd.add(Text((0, 0), 'oops))", "unterminated string"},
		{"no drawing", "x = 1.0", "does not construct a Drawing"},
		{"syntax", "d = Drawing(", "expected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := python.Parse(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Fatalf("Parse() error = %v, want INVALID_SCENE", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.msg)
			}
		})
	}
}
