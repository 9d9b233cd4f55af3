package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/minidraw/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// treeModel - Interactive scene browser
// =============================================================================

// treeEntry is one node of the flattened scene tree.
type treeEntry struct {
	node      scene.Spatial
	depth     int
	parent    int // index of the enclosing group entry, -1 for the root
	effective scene.Style
	label     string
}

// treeModel is the bubbletea model for browsing a drawing. Groups can be
// collapsed with enter; the panel below the list shows the selected node's
// own and effective style.
type treeModel struct {
	entries   []treeEntry
	collapsed map[int]bool
	visible   []int
	cursor    int
	offset    int
	height    int
}

// newTreeModel flattens d in walk order.
func newTreeModel(d *scene.Drawing) (treeModel, error) {
	m := treeModel{collapsed: map[int]bool{}, height: 15}
	var stack []int
	err := scene.Walk(d, func(ev scene.Event) error {
		if ev.Step == scene.StepLeave {
			stack = stack[:len(stack)-1]
			return nil
		}
		parent := -1
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		m.entries = append(m.entries, treeEntry{
			node:      ev.Node,
			depth:     ev.Depth,
			parent:    parent,
			effective: ev.Style,
			label:     nodeLabel(ev.Node, ev.Depth == 0),
		})
		if ev.Step == scene.StepEnter {
			stack = append(stack, len(m.entries)-1)
		}
		return nil
	})
	if err != nil {
		return treeModel{}, err
	}
	m.refresh()
	return m, nil
}

// refresh recomputes the visible rows after a collapse or expand.
func (m *treeModel) refresh() {
	m.visible = make([]int, 0, len(m.entries))
	for i, e := range m.entries {
		if !m.hidden(e.parent) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.clampOffset()
}

// hidden reports whether the entry at index i or any of its ancestors is
// collapsed.
func (m *treeModel) hidden(i int) bool {
	for ; i >= 0; i = m.entries[i].parent {
		if m.collapsed[i] {
			return true
		}
	}
	return false
}

func (m *treeModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m treeModel) selected() treeEntry {
	return m.entries[m.visible[m.cursor]]
}

func (m treeModel) Init() tea.Cmd {
	return nil
}

func (m treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.clampOffset()
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.clampOffset()
			}
		case "enter", " ":
			idx := m.visible[m.cursor]
			if m.entries[idx].node.Kind() == scene.KindGroup {
				m.collapsed = toggled(m.collapsed, idx)
				m.refresh()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 12
		if m.height < 5 {
			m.height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

// toggled returns a copy of set with key flipped, so models stay values.
func toggled(set map[int]bool, key int) map[int]bool {
	out := make(map[int]bool, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out[key] = !set[key]
	return out
}

func (m treeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.visible))
	for row := m.offset; row < end; row++ {
		idx := m.visible[row]
		e := m.entries[idx]

		cursor := "  "
		if row == m.cursor {
			cursor = "▸ "
		}
		marker := "  "
		if e.node.Kind() == scene.KindGroup {
			marker = "▾ "
			if m.collapsed[idx] {
				marker = "▸ "
			}
		}
		line := cursor + strings.Repeat("  ", e.depth) + marker + e.label
		if row == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(m.details()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.visible))))
	return b.String()
}

// details renders the panel for the selected node.
func (m treeModel) details() string {
	e := m.selected()
	kind := e.node.Kind().String()
	if e.depth == 0 {
		kind = "Drawing"
	}
	lines := []string{
		StyleHighlight.Render(kind) + " " + StyleDim.Render(fmt.Sprintf("depth %d", e.depth)),
		StyleDim.Render("geometry:  ") + StyleValue.Render(describe(e.node)),
		StyleDim.Render("own style: ") + StyleValue.Render(styleOrNone(e.node.Style())),
		StyleDim.Render("effective: ") + StyleValue.Render(styleOrNone(e.effective)),
	}
	return strings.Join(lines, "\n")
}

func styleOrNone(s scene.Style) string {
	if s.IsEmpty() {
		return "—"
	}
	return s.String()
}
