package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kzmshx/php-graph/pkg/errors"
	"github.com/kzmshx/php-graph/pkg/graph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ClassListModel - Interactive target selection
// =============================================================================

// classRow is one selectable class.
type classRow struct {
	ID         string
	Path       string
	Dependents int
}

// ClassListModel is the bubbletea model for picking a target class.
// Typing filters the list by substring and the arrows move the cursor.
type ClassListModel struct {
	all      []classRow
	visible  []classRow
	input    textinput.Model
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewClassListModel lists every class that was declared in a scanned file.
func NewClassListModel(g *graph.Graph) ClassListModel {
	var rows []classRow
	for _, id := range g.DeclaredIDs() {
		n, _ := g.Node(id)
		rows = append(rows, classRow{ID: id, Path: n.Path(), Dependents: n.DependentCount()})
	}
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "filter"
	ti.CharLimit = 256
	ti.Focus()

	return ClassListModel{all: rows, visible: rows, input: ti, Height: 15}
}

func (m ClassListModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
			}
		case tea.KeyDown:
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
			}
		case tea.KeyEnter:
			if len(m.visible) == 0 {
				return m, nil
			}
			m.Selected = m.visible[m.Cursor].ID
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if v := m.input.Value(); v != m.Filter {
				m.setFilter(v)
			}
			return m, cmd
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ClassListModel) setFilter(f string) {
	m.Filter = f
	m.Cursor = 0
	m.Offset = 0
	if f == "" {
		m.visible = m.all
		return
	}
	needle := strings.ToLower(f)
	m.visible = nil
	for _, r := range m.all {
		if strings.Contains(strings.ToLower(r.ID), needle) {
			m.visible = append(m.visible, r)
		}
	}
}

// scroll keeps the cursor inside the visible window.
func (m *ClassListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ClassListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Class"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.ID, fmt.Sprint(r.Dependents), r.Path})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Dependents", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				if col == 3 {
					return base.Bold(true)
				}
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  no matching classes"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	}

	return b.String()
}

// pickClass runs the picker on stderr and returns the chosen identity, or
// "" if the user quit without choosing.
func pickClass(g *graph.Graph) (string, error) {
	m := NewClassListModel(g)
	if len(m.all) == 0 {
		return "", errors.New(errors.ErrCodeClassNotFound, "no classes declared in scanned sources")
	}

	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "class picker")
	}
	return final.(ClassListModel).Selected, nil
}
