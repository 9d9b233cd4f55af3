package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/minidraw/pkg/render"
	"github.com/matzehuels/minidraw/pkg/scene"
)

// targetsCommand creates the targets command listing registered backends.
func (c *CLI) targetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the registered render targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeTargets(cmd.OutOrStdout())
			return nil
		},
	}
}

// targetRows returns one row per registered backend: name, extensions and
// whether it ships with minidraw.
func targetRows() [][]string {
	builtin := render.Builtin()
	var rows [][]string
	for _, name := range scene.Targets() {
		exts := "—"
		if b, err := scene.Lookup(name); err == nil {
			if e, ok := b.(scene.Extensioner); ok {
				exts = strings.Join(e.Extensions(), " ")
			}
		}
		kind := "plugin"
		if slices.Contains(builtin, name) {
			kind = "built-in"
		}
		rows = append(rows, []string{name, exts, kind})
	}
	return rows
}

func writeTargets(w io.Writer) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Target", "Extensions", "Source").
		Rows(targetRows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			case col == 2:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}
