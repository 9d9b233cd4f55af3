package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/observability"
)

const logoYAML = `style:
  stroke: black
items:
  - type: line
    from: [10, 10]
    to: [100, 60]
  - type: group
    style: {fill: red}
    items:
      - type: circle
        center: [50, 50]
        radius: 20
      - type: text
        at: [0, 0]
        content: hi
`

// runCLI executes the root command against fs with a scratch cache
// directory and returns what the command wrote to its output.
func runCLI(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.FS = fs
	c.CacheDir = "/cache"

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func sceneFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "scenes/logo.yaml", []byte(logoYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return fs
}

func countFiles(t *testing.T, fs afero.Fs, dir string) int {
	t.Helper()
	n := 0
	_ = afero.Walk(fs, dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestRenderDefaultOutput(t *testing.T) {
	fs := sceneFS(t)
	if _, err := runCLI(t, fs, "render", "scenes/logo.yaml"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := afero.ReadFile(fs, "scenes/logo.svg")
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := `<line x1="10" y1="10" x2="100" y2="60" stroke="black" stroke-width="1" opacity="1"/>`
	if !strings.Contains(string(data), want) {
		t.Errorf("svg lacks %s\n%s", want, data)
	}
}

func TestRenderTargetFromOutput(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		output string
		prefix string
	}{
		{"python", []string{"-o", "out/logo.py"}, "out/logo.py", "from minidraw import"},
		{"go", []string{"-o", "main.go"}, "main.go", "// Code generated by minidraw. DO NOT EDIT."},
		{"dot", []string{"-t", "dot"}, "scenes/logo.dot", "digraph"},
		{"explicit target wins", []string{"-t", "python", "-o", "logo.txt"}, "logo.txt", "from minidraw import"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := sceneFS(t)
			args := append([]string{"render", "scenes/logo.yaml"}, tt.args...)
			if _, err := runCLI(t, fs, args...); err != nil {
				t.Fatalf("render error: %v", err)
			}
			data, err := afero.ReadFile(fs, tt.output)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if !strings.HasPrefix(string(data), tt.prefix) {
				t.Errorf("output starts with %q, want %q", firstLine(string(data)), tt.prefix)
			}
		})
	}
}

func TestRenderStdout(t *testing.T) {
	out, err := runCLI(t, sceneFS(t), "render", "scenes/logo.yaml", "-t", "python", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `d = Drawing(style=Style(stroke="black"))`) {
		t.Errorf("stdout:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown target", []string{"render", "scenes/logo.yaml", "-t", "png"}, errors.ErrCodeUnknownTarget},
		{"unknown extension", []string{"render", "scenes/logo.yaml", "-o", "logo.png"}, errors.ErrCodeUnknownTarget},
		{"graph svg needs dot", []string{"render", "scenes/logo.yaml", "-t", "svg", "--graph-svg"}, errors.ErrCodeInvalidInput},
		{"missing scene", []string{"render", "scenes/nope.yaml"}, errors.ErrCodeIO},
		{"bad output path", []string{"render", "scenes/logo.yaml", "-t", "svg", "-o", "out/"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, sceneFS(t), tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderInvalidScene(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "bad.toml", []byte("[[items]]\ntype = \"blob\"\n"), 0o644)

	_, err := runCLI(t, fs, "render", "bad.toml")
	if err == nil || !strings.Contains(err.Error(), "bad.toml") {
		t.Errorf("error = %v, want it to name the file", err)
	}
	if ok, _ := afero.Exists(fs, "bad.svg"); ok {
		t.Error("output written for an invalid scene")
	}
}

func TestRenderUsesCache(t *testing.T) {
	fs := sceneFS(t)
	if _, err := runCLI(t, fs, "render", "scenes/logo.yaml"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, fs, "/cache"); n != 1 {
		t.Fatalf("cache holds %d entries after one render, want 1", n)
	}

	// A second render of the same source is served from the cache.
	_ = fs.Remove("scenes/logo.svg")
	if _, err := runCLI(t, fs, "render", "scenes/logo.yaml"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, fs, "/cache"); n != 1 {
		t.Errorf("cache holds %d entries after a repeat render, want 1", n)
	}
	if ok, _ := afero.Exists(fs, "scenes/logo.svg"); !ok {
		t.Error("cached render did not write the output")
	}

	if _, err := runCLI(t, fs, "render", "scenes/logo.yaml", "-t", "python"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, fs, "/cache"); n != 2 {
		t.Errorf("cache holds %d entries after a second target, want 2", n)
	}
}

func TestRenderNoCache(t *testing.T) {
	fs := sceneFS(t)
	if _, err := runCLI(t, fs, "render", "scenes/logo.yaml", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, fs, "/cache"); n != 0 {
		t.Errorf("cache holds %d entries with --no-cache", n)
	}
}

func TestCacheCommands(t *testing.T) {
	fs := sceneFS(t)
	out, err := runCLI(t, fs, "cache", "path")
	if err != nil || strings.TrimSpace(out) != "/cache" {
		t.Errorf("cache path = %q, %v", out, err)
	}

	if _, err := runCLI(t, fs, "cache", "clear"); err != nil {
		t.Errorf("clearing a missing cache: %v", err)
	}

	for _, target := range []string{"svg", "python", "go"} {
		if _, err := runCLI(t, fs, "render", "scenes/logo.yaml", "-t", target); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := runCLI(t, fs, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n := countFiles(t, fs, "/cache"); n != 0 {
		t.Errorf("cache holds %d entries after clear", n)
	}
}

func TestTargetsCommand(t *testing.T) {
	out, err := runCLI(t, afero.NewMemMapFs(), "targets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Target", "svg", "python", ".py", "go", "dot", ".gv", "built-in"} {
		if !strings.Contains(out, want) {
			t.Errorf("targets output lacks %q:\n%s", want, out)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := runCLI(t, sceneFS(t), "inspect", "scenes/logo.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Drawing", "Line", "Group", "Circle", `"hi"`, `stroke="black"`, `fill="red"`} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, afero.NewMemMapFs(), "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "minidraw") {
		t.Error("bash completion does not mention minidraw")
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.UnknownTargetError("png"), `✗ unknown render target "png" [UNKNOWN_TARGET]`},
		{context.Canceled, "✗ context canceled"},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.err); got != tt.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
