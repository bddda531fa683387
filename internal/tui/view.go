package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.taskList.View())
	case StateHistory:
		content = docStyle.Render(m.historyView.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirm:
		content = m.viewConfirm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	active := m.state
	if active > StateHistory {
		active = m.previousState
	}

	var tabs []string
	for i, title := range []string{"Today", "History"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}

	done, total := m.entry.Progress()
	tabs = append(tabs, progressStyle.Render(fmt.Sprintf("%s  %d/%d done", m.entry.Today(), done, total)))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return errorStyle.Render("✗ " + m.formError)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirm() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		dangerStyle.Render("This cannot be undone."),
		"",
		m.form.View(),
	)
	if m.width == 0 || m.height <= chromeHeight {
		return docStyle.Render(body)
	}
	return lipgloss.Place(m.width, m.height-chromeHeight, lipgloss.Center, lipgloss.Center, body)
}
