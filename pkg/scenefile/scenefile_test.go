package scenefile_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/observability"
	_ "github.com/matzehuels/minidraw/pkg/render/svg"
	"github.com/matzehuels/minidraw/pkg/scene"
	"github.com/matzehuels/minidraw/pkg/scenefile"
)

const sceneTOML = `
[style]
stroke = "black"

[[items]]
type = "line"
from = [10.0, 10.0]
to = [100.0, 60.0]
style = { stroke = "red", dash = [2, 1] }

[[items]]
type = "group"
style = { fill = "#eee" }
frame = [ { op = "translate", dx = 50.0, dy = 0.0 } ]

  [[items.items]]
  type = "circle"
  center = [0.0, 0.0]
  radius = 5.0

  [[items.items]]
  type = "rectangle"
  origin = [0.0, 0.0]
  width = 4.0
  height = 2.0
  transforms = [ { op = "rotate", angle = 90.0, center = [0.0, 0.0] } ]

[[items]]
type = "polyline"
points = [[0.0, 0.0], [10.0, 0.0], [5.0, 5.0]]
closed = true

[[items]]
type = "arc"
center = [0.0, 0.0]
radius = 10.0
start = 0.0
end = 90.0

[[items]]
type = "text"
at = [5.0, 90.0]
content = "minidraw"
rotation = 15.0
`

const sceneYAML = `
style:
  stroke: black
items:
  - type: line
    from: [10, 10]
    to: [100, 60]
    style: {stroke: red, dash: [2, 1]}
  - type: group
    style: {fill: "#eee"}
    frame:
      - {op: translate, dx: 50, dy: 0}
    items:
      - type: circle
        center: [0, 0]
        radius: 5
      - type: rectangle
        origin: [0, 0]
        width: 4
        height: 2
        transforms:
          - {op: rotate, angle: 90, center: [0, 0]}
  - type: polyline
    points: [[0, 0], [10, 0], [5, 5]]
    closed: true
  - type: arc
    center: [0, 0]
    radius: 10
    start: 0
    end: 90
  - type: text
    at: [5, 90]
    content: minidraw
    rotation: 15
`

const sceneJSON = `{
  "style": {"stroke": "black"},
  "items": [
    {"type": "line", "from": [10, 10], "to": [100, 60], "style": {"stroke": "red", "dash": [2, 1]}},
    {"type": "group", "style": {"fill": "#eee"}, "frame": [{"op": "translate", "dx": 50, "dy": 0}], "items": [
      {"type": "circle", "center": [0, 0], "radius": 5},
      {"type": "rectangle", "origin": [0, 0], "width": 4, "height": 2,
       "transforms": [{"op": "rotate", "angle": 90, "center": [0, 0]}]}
    ]},
    {"type": "polyline", "points": [[0, 0], [10, 0], [5, 5]], "closed": true},
    {"type": "arc", "center": [0, 0], "radius": 10, "start": 0, "end": 90},
    {"type": "text", "at": [5, 90], "content": "minidraw", "rotation": 15}
  ]
}`

// expected builds the drawing all three documents describe.
func expected() *scene.Drawing {
	d := scene.New(scene.Stroke("black"))
	d.Line(scene.Pt(10, 10), scene.Pt(100, 60)).SetStyle(scene.NewStyle(scene.Stroke("red"), scene.Dash(2, 1)))
	g := d.SubGroup(scene.Fill("#eee"))
	g.SetFrame(scene.Translation(50, 0))
	g.Circle(scene.Pt(0, 0), 5)
	g.Rectangle(scene.Pt(0, 0), 4, 2).RotateAround(90, scene.Pt(0, 0))
	d.Polygon(scene.Pt(0, 0), scene.Pt(10, 0), scene.Pt(5, 5))
	d.Arc(scene.Pt(0, 0), 10, 0, 90)
	d.Text(scene.Pt(5, 90), "minidraw").SetRotation(15)
	return d
}

func svgOf(t *testing.T, d *scene.Drawing) string {
	t.Helper()
	out, err := d.RenderToString("svg")
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestDecodeFormats(t *testing.T) {
	want := svgOf(t, expected())
	tests := []struct {
		format scenefile.Format
		src    string
	}{
		{scenefile.TOML, sceneTOML},
		{scenefile.YAML, sceneYAML},
		{scenefile.JSON, sceneJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			d, err := scenefile.Decode([]byte(tt.src), tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if d.Count() != 7 {
				t.Errorf("Count() = %d, want 7", d.Count())
			}
			if diff := cmp.Diff(want, svgOf(t, d)); diff != "" {
				t.Errorf("svg mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []scenefile.Format{scenefile.TOML, scenefile.YAML} {
		d, err := scenefile.Decode(nil, f)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if d.Len() != 0 {
			t.Errorf("%s: drawing has %d children", f, d.Len())
		}
	}
}

func TestTransforms(t *testing.T) {
	src := `
items:
  - type: line
    from: [0, 0]
    to: [2, 0]
    transforms:
      - {op: translate, dx: 1, dy: 1}
      - {op: rotate, angle: 90}
      - {op: scale, sx: 2}
  - type: line
    from: [1, 1]
    to: [3, 1]
    transforms:
      - {op: mirror, p1: [0, 0], p2: [1, 1]}
      - {op: flip_lr}
      - {op: flip_ud}
`
	d, err := scenefile.Decode([]byte(src), scenefile.YAML)
	if err != nil {
		t.Fatal(err)
	}
	var got []float64
	for _, c := range d.Children() {
		l := c.(*scene.Line)
		x1, y1 := l.Start().Abs()
		x2, y2 := l.End().Abs()
		got = append(got, x1, y1, x2, y2)
	}
	want := []float64{
		2, -1, 2, 3,
		1, 3, 1, 1,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("transformed geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format scenefile.Format
		src    string
		msg    string
	}{
		{"unknown type", scenefile.YAML, "items: [{type: square}]", `items[0]: unknown item type "square"`},
		{"missing type", scenefile.JSON, `{"items": [{"from": [0, 0]}]}`, "items[0]: missing type"},
		{"bad point", scenefile.YAML, "items: [{type: line, from: [0], to: [1, 1]}]", "items[0]: from must be [x, y]"},
		{"no radius", scenefile.YAML, "items: [{type: circle, center: [0, 0]}]", "circle needs radius or radii"},
		{"bad radii", scenefile.YAML, "items: [{type: circle, center: [0, 0], radii: [1, 2, 3]}]", "radii must be [rx, ry]"},
		{"no size", scenefile.YAML, "items: [{type: rectangle, origin: [0, 0], width: 1}]", "rectangle needs width and height"},
		{"arc radius", scenefile.YAML, "items: [{type: arc, center: [0, 0]}]", "arc needs radius"},
		{"nested", scenefile.YAML, "items: [{type: group, items: [{type: text}]}]", "items[0].items[0]: at must be [x, y]"},
		{"bad style", scenefile.YAML, "items: [{type: text, at: [0, 0], style: {colour: red}}]", `items[0].style: INVALID_STYLE: unknown style attribute "colour"`},
		{"drawing style", scenefile.JSON, `{"style": {"opacity": "high"}}`, "style: INVALID_STYLE"},
		{"unknown transform", scenefile.YAML, "items: [{type: text, at: [0, 0], transforms: [{op: shear}]}]", `items[0].transforms[0]: unknown transform "shear"`},
		{"scale without sx", scenefile.YAML, "items: [{type: text, at: [0, 0], transforms: [{op: scale}]}]", "scale needs sx"},
		{"degenerate mirror", scenefile.YAML, "items: [{type: text, at: [0, 0], transforms: [{op: mirror, p1: [1, 1], p2: [1, 1]}]}]", "items[0].transforms[0]"},
		{"frame", scenefile.YAML, "items: [{type: group, frame: [{op: spin}]}]", `items[0].frame[0]: unknown transform "spin"`},
		{"unknown yaml key", scenefile.YAML, "items: [{type: line, form: [0, 0]}]", "decode yaml"},
		{"unknown json key", scenefile.JSON, `{"itemz": []}`, "decode json"},
		{"unknown toml key", scenefile.TOML, "[[items]]\ntype = \"line\"\ncolour = \"red\"", "unknown key items.colour"},
		{"toml syntax", scenefile.TOML, "[[items]\n", "decode toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenefile.Decode([]byte(tt.src), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Fatalf("Decode() error = %v, want INVALID_SCENE", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tt.msg)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]scenefile.Format{
		"a.toml":   scenefile.TOML,
		"b.YAML":   scenefile.YAML,
		"c.yml":    scenefile.YAML,
		"d/e.json": scenefile.JSON,
	}
	for path, want := range tests {
		if got, err := scenefile.FormatForPath(path); err != nil || got != want {
			t.Errorf("FormatForPath(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
	if _, err := scenefile.FormatForPath("scene.xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("FormatForPath(scene.xml) error = %v, want INVALID_INPUT", err)
	}
}

type recordingHooks struct {
	observability.NoopSceneHooks
	started   []string
	completed []int
	errs      []error
}

func (h *recordingHooks) OnLoadStart(_ context.Context, path, format string) {
	h.started = append(h.started, path+":"+format)
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _, _ string, count int, _ time.Duration, err error) {
	h.completed = append(h.completed, count)
	h.errs = append(h.errs, err)
}

func TestLoad(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetSceneHooks(hooks)
	t.Cleanup(observability.Reset)

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "scenes/logo.toml", []byte(sceneTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := scenefile.Load(context.Background(), fs, "scenes/logo.toml")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(svgOf(t, expected()), svgOf(t, d)); diff != "" {
		t.Errorf("svg mismatch (-want +got):\n%s", diff)
	}

	if _, err := scenefile.Load(context.Background(), fs, "scenes/missing.yaml"); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("Load(missing) error = %v, want IO_ERROR", err)
	}
	if _, err := scenefile.Read(context.Background(), "inline.yaml", []byte("items: [{type: blob}]")); err == nil {
		t.Error("Read(blob) succeeded")
	}

	if diff := cmp.Diff([]string{"scenes/logo.toml:toml", "inline.yaml:yaml"}, hooks.started); diff != "" {
		t.Errorf("load starts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{7, 0}, hooks.completed); diff != "" {
		t.Errorf("load counts mismatch (-want +got):\n%s", diff)
	}
	if hooks.errs[0] != nil || hooks.errs[1] == nil {
		t.Errorf("load errors = %v", hooks.errs)
	}
}

func TestLoadWrapsPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "bad.json", []byte(`{"items": [{"type": "blob"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := scenefile.Load(context.Background(), fs, "bad.json")
	if !errors.Is(err, errors.ErrCodeInvalidScene) || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("Load() error = %v, want INVALID_SCENE naming the file", err)
	}
}

func TestExampleScenes(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), "../../examples/scenes"))
	tests := []struct {
		file  string
		nodes int
	}{
		{"bracket.toml", 6},
		{"logo.yaml", 6},
		{"star.json", 3},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d, err := scenefile.Load(context.Background(), fs, tt.file)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.Count(); got != tt.nodes {
				t.Errorf("Count() = %d, want %d", got, tt.nodes)
			}
			if _, err := d.RenderToString("svg"); err != nil {
				t.Errorf("render: %v", err)
			}
		})
	}
}
