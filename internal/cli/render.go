package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// CheckBox renders a task's status the way the menu does.
func CheckBox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// RenderTasks formats tasks under a date header with a progress count.
func RenderTasks(date string, tasks []models.Task) string {
	var b strings.Builder
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	b.WriteString(headerStyle.Render(date))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d done", done, len(tasks))))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks."))
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range tasks {
		b.WriteString(renderRow(t.Index, t.Done, t.Subject))
	}
	return b.String()
}

// RenderDay formats one archived day.
func RenderDay(d history.Day) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(d.Date.String()))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d done", d.Done(), len(d.Tasks))))
	b.WriteString("\n")
	for i, r := range d.Tasks {
		b.WriteString(renderRow(i+1, r.Done, r.Subject))
	}
	return b.String()
}

func renderRow(index int, done bool, subject string) string {
	style := openStyle
	if done {
		style = doneStyle
	}
	return fmt.Sprintf("  %s %s\n", style.Render(CheckBox(done)), style.Render(fmt.Sprintf("%d. %s", index, subject)))
}
