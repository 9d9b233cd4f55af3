package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/minidraw/pkg/errors"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// Target is the registry name of the backend.
const Target = "dot"

func init() {
	scene.Register(Target, New(Options{Detailed: true}))
}

// Options configures scene-tree rendering.
type Options struct {
	// Detailed adds the effective style to node labels. When false, only
	// the node kind is shown.
	Detailed bool
}

// Backend renders drawings as DOT source.
type Backend struct {
	opts Options
}

// New returns a backend using opts.
func New(opts Options) *Backend { return &Backend{opts: opts} }

// Extensions returns the file extensions claimed by the backend.
func (b *Backend) Extensions() []string { return []string{".dot", ".gv"} }

// Render returns the DOT digraph of d's scene tree.
func (b *Backend) Render(d *scene.Drawing) (string, error) {
	return ToDOT(d, b.opts), nil
}

// ToDOT converts the scene tree of d to Graphviz DOT format. Nodes are named
// n0, n1, ... in walk order; n0 is the drawing itself.
func ToDOT(d *scene.Drawing, opts Options) string {
	var nodes, edges bytes.Buffer
	var parents []string
	next := 0

	_ = scene.Walk(d, func(ev scene.Event) error {
		if ev.Step == scene.StepLeave {
			parents = parents[:len(parents)-1]
			return nil
		}
		id := "n" + strconv.Itoa(next)
		next++

		label := fmtLabel(ev, opts.Detailed)
		fmt.Fprintf(&nodes, "  %q [%s];\n", id, strings.Join(fmtAttrs(ev, label), ", "))
		if len(parents) > 0 {
			fmt.Fprintf(&edges, "  %q -> %q;\n", parents[len(parents)-1], id)
		}
		if ev.Step == scene.StepEnter {
			parents = append(parents, id)
		}
		return nil
	})

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	if edges.Len() > 0 {
		buf.WriteString("\n")
		buf.Write(edges.Bytes())
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(ev scene.Event, detailed bool) string {
	title := ev.Node.Kind().String()
	if ev.Depth == 0 {
		title = "Drawing"
	}
	if t, ok := ev.Node.(*scene.Text); ok {
		title += " " + strconv.Quote(t.Content())
	}
	if !detailed || ev.Style.IsEmpty() {
		return title
	}

	parts := []string{title}
	for _, a := range ev.Style.Attrs() {
		v, _ := ev.Style.Get(a)
		parts = append(parts, fmt.Sprintf("%s: %s", a, fmtValue(v)))
	}
	return strings.Join(parts, "\n")
}

func fmtValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprint(v)
}

func fmtAttrs(ev scene.Event, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if ev.Step == scene.StepEnter {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return RenderSVGContext(context.Background(), dot)
}

// RenderSVGContext is [RenderSVG] with a caller-supplied context.
func RenderSVGContext(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg element with one whose
// view box starts at the origin and whose size is in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
