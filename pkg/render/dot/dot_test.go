package dot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/minidraw/pkg/render/dot"
	"github.com/matzehuels/minidraw/pkg/scene"
)

func sample() *scene.Drawing {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(0, 0), scene.Pt(1, 1))
	g := d.SubGroup(scene.Dash(2, 0.5))
	g.Text(scene.Pt(0, 0), `say "hi"`)
	d.Circle(scene.Pt(0, 0), 1).SetStyle(scene.NewStyle(scene.StrokeWidth(2)))
	return d
}

func TestToDOT(t *testing.T) {
	got := dot.ToDOT(sample(), dot.Options{Detailed: true})
	want := `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
  ranksep=0.5;
  nodesep=0.3;

  "n0" [label="Drawing\nstroke: black", style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black];
  "n1" [label="Line\nstroke: black"];
  "n2" [label="Group\nstroke: black\ndash: 2 0.5", style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black];
  "n3" [label="Text \"say \\\"hi\\\"\"\nstroke: black\ndash: 2 0.5"];
  "n4" [label="Circle\nstroke: black\nstroke_width: 2"];

  "n0" -> "n1";
  "n0" -> "n2";
  "n2" -> "n3";
  "n0" -> "n4";
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToDOT() mismatch (-want +got):\n%s", diff)
	}
}

func TestToDOTPlain(t *testing.T) {
	got := dot.ToDOT(sample(), dot.Options{})
	for _, want := range []string{`"n0" [label="Drawing"`, `"n1" [label="Line"]`, `"n4" [label="Circle"]`} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %s\n%s", want, got)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	got := dot.ToDOT(scene.New(), dot.Options{Detailed: true})
	if strings.Contains(got, "->") {
		t.Errorf("empty drawing has edges:\n%s", got)
	}
	if !strings.Contains(got, `"n0" [label="Drawing"`) {
		t.Errorf("root node missing:\n%s", got)
	}
}

func TestRegistered(t *testing.T) {
	got, err := sample().RenderToString(dot.Target)
	if err != nil {
		t.Fatal(err)
	}
	if got != dot.ToDOT(sample(), dot.Options{Detailed: true}) {
		t.Error("registered backend differs from ToDOT with details")
	}
	for _, path := range []string{"tree.dot", "tree.gv"} {
		if target, err := scene.TargetForPath(path); err != nil || target != dot.Target {
			t.Errorf("TargetForPath(%q) = %q, %v", path, target, err)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := dot.RenderSVG(dot.ToDOT(sample(), dot.Options{Detailed: true}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("svg element not normalized:\n%s", svg)
	}
	if !bytes.Contains(svg, []byte("stroke_width: 2")) {
		t.Error("label text missing from svg")
	}
}
