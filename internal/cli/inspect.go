package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/minidraw/pkg/scene"
	"github.com/matzehuels/minidraw/pkg/scenefile"
)

// inspectCommand creates the inspect command that shows a scene's tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <scene.{toml,yaml,yml,json}>",
		Short: "Show the structure of a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if interactive {
				m, err := newTreeModel(d)
				if err != nil {
					return err
				}
				_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
				return err
			}
			writeTree(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the tree interactively")
	return cmd
}

func (c *CLI) loadScene(ctx context.Context, path string) (*scene.Drawing, error) {
	prog := newProgress(loggerFromContext(ctx))
	d, err := scenefile.Load(ctx, c.FS, path)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s with %d nodes", path, d.Count()))
	return d, nil
}

// writeTree prints the scene as an indented tree with one line per node.
func writeTree(w io.Writer, d *scene.Drawing) {
	if d.Len() == 0 {
		fmt.Fprintln(w, styleGroup.Render("Drawing")+" "+StyleDim.Render("(empty)"))
		return
	}
	t := buildTree(d.Root(), nodeLabel(d, true))
	fmt.Fprintln(w, t.String())
}

func buildTree(g *scene.Group, label string) *tree.Tree {
	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range g.Children() {
		if sub, ok := child.(*scene.Group); ok {
			t.Child(buildTree(sub, nodeLabel(sub, false)))
			continue
		}
		t.Child(nodeLabel(child, false))
	}
	return t
}

// nodeLabel renders a node as its kind, a geometry summary and its own
// style.
func nodeLabel(s scene.Spatial, root bool) string {
	kind := s.Kind().String()
	style := styleKind
	if root {
		kind = "Drawing"
	}
	if s.Kind() == scene.KindGroup {
		style = styleGroup
	}

	parts := []string{style.Render(kind)}
	if g := describe(s); g != "" {
		parts = append(parts, StyleValue.Render(g))
	}
	if own := s.Style(); !own.IsEmpty() {
		parts = append(parts, StyleDim.Render(own.String()))
	}
	return strings.Join(parts, " ")
}

// describe summarizes the geometry of s in one line.
func describe(s scene.Spatial) string {
	switch v := s.(type) {
	case *scene.Line:
		return v.Start().String() + " " + iconArrow + " " + v.End().String()
	case *scene.Circle:
		out := "c=" + v.Center().String()
		if v.IsEllipse() {
			rx, ry := v.Radii()
			out += " rx=" + num(rx) + " ry=" + num(ry)
		} else {
			out += " r=" + num(v.Radius())
		}
		return out + rotation(v.Rotation())
	case *scene.Rectangle:
		w, h := v.Size()
		return v.Origin().String() + " " + num(w) + "×" + num(h) + rotation(v.Rotation())
	case *scene.Polyline:
		out := strconv.Itoa(v.Len()) + " points"
		if v.Closed() {
			out += ", closed"
		}
		return out
	case *scene.Arc:
		start, end := v.Angles()
		return "c=" + v.Center().String() + " r=" + num(v.Radius()) + " " + num(start) + "°" + iconArrow + num(end) + "°"
	case *scene.Text:
		return strconv.Quote(v.Content()) + " at " + v.Anchor().String() + rotation(v.Rotation())
	case *scene.Group:
		out := fmt.Sprintf("%d children", v.Len())
		if !v.Frame().IsIdentity() {
			out += ", framed"
		}
		return out
	case *scene.Drawing:
		return fmt.Sprintf("%d nodes", v.Count())
	}
	return ""
}

func rotation(deg float64) string {
	if deg == 0 {
		return ""
	}
	return " rot=" + num(deg) + "°"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
