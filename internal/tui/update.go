package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/tui/components/tasklist"
)

// chromeHeight is the space taken by tabs, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.taskList.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.historyView.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m, m.updateSubjectForm(msg)
	case StateConfirm:
		return m, m.updateConfirmation(msg)
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		return m, m.openSubjectForm(0, "")
	case tasklist.EditTaskMsg:
		return m, m.openSubjectForm(msg.Task.Index, msg.Task.Subject)
	case tasklist.ToggleTaskMsg:
		m.apply(m.entry.Toggle(msg.Index, msg.Done), fmt.Sprintf("Task %d updated", msg.Index))
		return m, nil
	case tasklist.SetAllMsg:
		label := "not done"
		if msg.Done {
			label = "done"
		}
		m.apply(m.entry.BulkToggle(msg.Done), "All tasks marked "+label)
		return m, nil
	case tasklist.DeleteTaskMsg:
		index := msg.Task.Index
		return m, m.openConfirmation(fmt.Sprintf("Delete %d. %s?", index, msg.Task.Subject), func(m *Model) error {
			return m.entry.Delete(index)
		}, "Task deleted")
	case tasklist.ResetMsg:
		if m.entry.Count() == 0 {
			return m, nil
		}
		return m, m.openConfirmation(fmt.Sprintf("Remove all %d tasks?", m.entry.Count()), func(m *Model) error {
			return m.entry.Reset()
		}, "Entry reset")

	case tea.KeyMsg:
		if m.state == StateToday && m.taskList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateHistory && key.Matches(msg, m.keys.EraseHistory):
			if m.eraseHistory == nil || m.historyView.Len() == 0 {
				return m, nil
			}
			return m, m.openConfirmation(fmt.Sprintf("Erase all %d archived days? A backup is made first.", m.historyView.Len()), (*Model).clearHistory, "History erased")
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

func (m *Model) openSubjectForm(index int, subject string) tea.Cmd {
	m.subjectForm = &SubjectFormModel{Index: index, Subject: subject}
	m.form = NewSubjectForm(m.subjectForm)
	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

func (m *Model) openConfirmation(message string, action func(*Model) error, status string) tea.Cmd {
	m.confirmForm = &ConfirmFormModel{Message: message}
	m.pendingAction = action
	m.pendingStatus = status
	m.form = NewConfirmationForm(m.confirmForm)
	m.previousState = m.state
	m.state = StateConfirm
	return m.form.Init()
}

func (m *Model) clearHistory() error {
	if err := m.eraseHistory(); err != nil {
		return err
	}
	m.historyView.SetDays(nil)
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.subjectForm = nil
	m.confirmForm = nil
	m.pendingAction = nil
	m.pendingStatus = ""
	m.state = m.previousState
}

// updateSubjectForm handles the add/change form
func (m *Model) updateSubjectForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.subjectForm
		if fm.Index == 0 {
			m.apply(m.entry.Add(fm.Subject, false, nil), "Task added")
		} else {
			m.apply(m.entry.Change(fm.Index, fm.Subject), fmt.Sprintf("Task %d changed", fm.Index))
		}
		m.closeForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

// updateConfirmation handles the generic confirmation state
func (m *Model) updateConfirmation(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmForm.Confirmed && m.pendingAction != nil {
			m.apply(m.pendingAction(m), m.pendingStatus)
		}
		m.closeForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}
