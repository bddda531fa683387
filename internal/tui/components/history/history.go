package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	dayhistory "github.com/julianstephens/daybook/internal/history"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	openStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

type Model struct {
	viewport viewport.Model
	days     []dayhistory.Day
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.days) == 0 {
		return "\n  No history yet."
	}
	return m.viewport.View()
}

// Len returns the number of archived days shown.
func (m Model) Len() int {
	return len(m.days)
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetDays shows days newest first.
func (m *Model) SetDays(days []dayhistory.Day) {
	m.days = days
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) Render() {
	var b strings.Builder
	for i := len(m.days) - 1; i >= 0; i-- {
		d := m.days[i]
		b.WriteString(dateStyle.Render(d.Date.String()))
		b.WriteString(countStyle.Render(fmt.Sprintf("  %d/%d done", d.Done(), len(d.Tasks))))
		b.WriteString("\n")
		for j, r := range d.Tasks {
			style, box := openStyle, "[ ]"
			if r.Done {
				style, box = doneStyle, "[x]"
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %d. %s", box, j+1, r.Subject)))
			b.WriteString("\n")
		}
		if i > 0 {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
}
