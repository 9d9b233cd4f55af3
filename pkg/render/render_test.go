package render_test

import (
	"slices"
	"testing"

	"github.com/matzehuels/minidraw/pkg/render"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func TestBuiltinRegistered(t *testing.T) {
	registered := scene.Targets()
	for _, name := range render.Builtin() {
		if !slices.Contains(registered, name) {
			t.Errorf("backend %q not registered; have %v", name, registered)
		}
	}
	if !slices.IsSorted(render.Builtin()) {
		t.Error("Builtin() is not sorted")
	}
}

func TestTargetInference(t *testing.T) {
	tests := map[string]string{
		"a.svg":   "svg",
		"b.py":    "python",
		"c.go":    "go",
		"d.dot":   "dot",
		"e.gv":    "dot",
		"f/G.SVG": "svg",
	}
	for path, want := range tests {
		got, err := scene.TargetForPath(path)
		if err != nil || got != want {
			t.Errorf("TargetForPath(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
}

func TestEveryTargetRenders(t *testing.T) {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(0, 0), scene.Pt(10, 10))
	g := d.SubGroup(scene.Fill("red"))
	g.Circle(scene.Pt(5, 5), 3)
	g.Arc(scene.Pt(0, 0), 4, 0, 180)
	g.Text(scene.Pt(1, 1), "hi").SetRotation(10)

	for _, name := range render.Builtin() {
		out, err := d.RenderToString(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if out == "" {
			t.Errorf("%s: empty output", name)
		}
	}
}
