package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/models"
)

type AddTaskMsg struct{}

type ToggleTaskMsg struct {
	Index int
	Done  bool
}

type EditTaskMsg struct {
	Task models.Task
}

type DeleteTaskMsg struct {
	Task models.Task
}

type SetAllMsg struct {
	Done bool
}

type ResetMsg struct{}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	box := "[ ]"
	if i.Task.Done {
		box = "[x]"
	}
	return fmt.Sprintf("%s %d. %s", box, i.Task.Index, i.Task.Subject)
}
func (i Item) Description() string { return "" }
func (i Item) FilterValue() string { return i.Task.Subject }

type KeyMap struct {
	Toggle     key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	CheckAll   key.Binding
	UncheckAll key.Binding
	Reset      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "change"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CheckAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check all"),
		),
		UncheckAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "uncheck all"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
	}
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.CheckAll, k.UncheckAll, k.Reset}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(toItems(tasks), delegate, width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetStatusBarItemName("task", "tasks")
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = keys.bindings

	return Model{list: l, keys: keys}
}

func toItems(tasks []models.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	return items
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.list.SetItems(toItems(tasks))
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Keys returns the task bindings for the help view.
func (m Model) Keys() []key.Binding {
	return m.keys.bindings()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		selected, hasSelection := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.CheckAll):
			return m, func() tea.Msg { return SetAllMsg{Done: true} }
		case key.Matches(msg, m.keys.UncheckAll):
			return m, func() tea.Msg { return SetAllMsg{Done: false} }
		case key.Matches(msg, m.keys.Reset):
			return m, func() tea.Msg { return ResetMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if hasSelection {
				return m, func() tea.Msg { return ToggleTaskMsg{Index: selected.Task.Index, Done: !selected.Task.Done} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if hasSelection {
				return m, func() tea.Msg { return EditTaskMsg{Task: selected.Task} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if hasSelection {
				return m, func() tea.Msg { return DeleteTaskMsg{Task: selected.Task} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
