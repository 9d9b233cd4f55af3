package gocode_test

import (
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/render/gocode"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func TestRender(t *testing.T) {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
	g := d.SubGroup(scene.Fill("red"))
	g.Circle(scene.Pt(50, 50), 20).SetRadii(20, 10)
	g.Text(scene.Pt(0, 0), `say "hi"`).SetRotation(15)
	d.SubGroup()
	d.Polygon(scene.Pt(0, 0), scene.Pt(1, 0), scene.Pt(0, 1)).SetStyle(scene.NewStyle(scene.Dash(2, 1)))

	got, err := d.RenderToString(gocode.Target)
	if err != nil {
		t.Fatal(err)
	}
	want := `// Code generated by minidraw. DO NOT EDIT.

package main

import (
	"log"

	_ "github.com/matzehuels/minidraw/pkg/render"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func main() {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(10, 10), scene.Pt(100, 60))
	g1 := d.SubGroup(scene.Fill("red"))
	g1.Circle(scene.Pt(50, 50), 20).SetRadii(20, 10)
	g1.Text(scene.Pt(0, 0), "say \"hi\"").SetRotation(15)
	d.SubGroup()
	d.Polygon(scene.Pt(0, 0), scene.Pt(1, 0), scene.Pt(0, 1)).SetStyle(scene.NewStyle(scene.Dash(2, 1)))

	if err := d.RenderToFile("output.svg", ""); err != nil {
		log.Fatal(err)
	}
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderParses(t *testing.T) {
	d := scene.New(scene.FontFamily("serif"))
	g := d.SubGroup(scene.StrokeWidth(0.75), scene.LineJoin("round"))
	g.SetFrame(scene.Rotation(33).Multiply(scene.Translation(3, -7)))
	g.Rectangle(scene.Pt(60, 20), 20, 10).SetRotation(30)
	g.Arc(scene.Pt(50, 50), 15, 10, 250)
	inner := g.SubGroup(scene.Opacity(0.5))
	inner.Text(scene.Pt(5, 90), "tab\there é")
	inner.SubGroup().SubGroup()
	d.Polyline(scene.Pt(1e-7, 0), scene.Pt(2e20, 1))

	src, err := gocode.New(gocode.WithOutput("pic.py")).Render(d)
	if err != nil {
		t.Fatal(err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), "main.go", src, parser.AllErrors)
	if err != nil {
		t.Fatalf("generated program does not parse: %v\n%s", err, src)
	}
	if f.Name.Name != "main" {
		t.Errorf("package = %s, want main", f.Name.Name)
	}

	var imports []string
	for _, imp := range f.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		imports = append(imports, path)
	}
	wantImports := []string{"log", "github.com/matzehuels/minidraw/pkg/render", "github.com/matzehuels/minidraw/pkg/scene"}
	if diff := cmp.Diff(wantImports, imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}

	for _, want := range []string{
		`d.RenderToFile("pic.py", "")`,
		`g1 := d.SubGroup(scene.StrokeWidth(0.75), scene.LineJoin("round"))`,
		`g2 := g1.SubGroup(scene.Opacity(0.5))`,
		`g3 := g2.SubGroup()`,
		"\tg3.SubGroup()\n",
		`"tab\there é"`,
		`d.Polyline(scene.Pt(1e-07, 0), scene.Pt(2e+20, 1))`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output does not contain %s\n%s", want, src)
		}
	}
}

func TestRenderRejectsNonFinite(t *testing.T) {
	d := scene.New()
	d.Circle(scene.Pt(0, 0), math.NaN())
	if _, err := d.RenderToString(gocode.Target); !errors.IsGeometry(err) {
		t.Errorf("error = %v, want GEOMETRY", err)
	}
}

func TestTargetForPath(t *testing.T) {
	got, err := scene.TargetForPath("main.go")
	if err != nil || got != gocode.Target {
		t.Errorf("TargetForPath() = %q, %v, want go", got, err)
	}
}
