package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daybook/internal/entry"
	dayhistory "github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/tui/components/history"
	"github.com/julianstephens/daybook/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateEditing
	StateConfirm
)

const tabCount = 2

// SubjectFormModel backs the add and change forms. Index is 0 when adding.
type SubjectFormModel struct {
	Index   int
	Subject string
}

type ConfirmFormModel struct {
	Message   string
	Confirmed bool
}

type Model struct {
	entry         *entry.Entry
	save          func() error
	eraseHistory  func() error
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	taskList      tasklist.Model
	historyView   history.Model
	form          *huh.Form
	subjectForm   *SubjectFormModel
	confirmForm   *ConfirmFormModel
	pendingAction func(*Model) error
	pendingStatus string
	status        string
	formError     string // Error message to display for form operations
	quitting      bool
	width         int
	height        int
}

// NewModel shows e and the archived days. save, when set, runs after every
// change so the entry store tracks the menu.
func NewModel(e *entry.Entry, days []dayhistory.Day, save func() error) Model {
	hv := history.New(0, 0)
	hv.SetDays(days)

	return Model{
		entry:       e,
		save:        save,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		taskList:    tasklist.New(e.Tasks(), 0, 0),
		historyView: hv,
	}
}

// SetHistoryEraser enables erasing the archive from the History tab.
func (m *Model) SetHistoryEraser(erase func() error) {
	m.eraseHistory = erase
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch {
	case m.state == StateToday:
		keys = append(keys, m.taskList.Keys()[:3]...)
	case m.state == StateHistory && m.eraseHistory != nil:
		keys = append(keys, m.keys.EraseHistory)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Filter}
	if m.state == StateHistory && m.eraseHistory != nil {
		navigation = append(navigation, m.keys.EraseHistory)
	}
	if m.state != StateToday {
		return [][]key.Binding{global, navigation}
	}
	return [][]key.Binding{global, navigation, m.taskList.Keys()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the list from the entry and persists it.
func (m *Model) refresh() {
	m.taskList.SetTasks(m.entry.Tasks())
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		m.formError = "Save failed: " + err.Error()
	}
}

// apply reports the outcome of an entry operation in the status line.
func (m *Model) apply(err error, status string) {
	if err != nil {
		m.status = ""
		m.formError = err.Error()
		return
	}
	m.formError = ""
	m.status = status
	m.refresh()
}
