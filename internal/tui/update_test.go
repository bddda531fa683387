package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/entry"
	dayhistory "github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/tui/components/tasklist"
)

func newTestModel(t *testing.T, subjects ...string) (Model, *entry.Entry, *int) {
	t.Helper()
	e := entry.New(dates.FixedClock(dates.Date{Day: 5, Month: 3, Year: 2024}))
	for _, s := range subjects {
		if err := e.Add(s, false, nil); err != nil {
			t.Fatal(err)
		}
	}
	saves := 0
	m := NewModel(e, nil, func() error {
		saves++
		return nil
	})
	return m, e, &saves
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestToggleMsg(t *testing.T) {
	m, e, saves := newTestModel(t, "a", "b")

	m = update(t, m, tasklist.ToggleTaskMsg{Index: 2, Done: true})
	if task, _ := e.Get(2); !task.Done {
		t.Error("task 2 not marked done")
	}
	if *saves != 1 {
		t.Errorf("save called %d times, want 1", *saves)
	}
	if m.status == "" || m.formError != "" {
		t.Errorf("status = %q, error = %q", m.status, m.formError)
	}

	m = update(t, m, tasklist.ToggleTaskMsg{Index: 9, Done: true})
	if m.formError == "" {
		t.Error("toggling a missing task did not report an error")
	}
	if *saves != 1 {
		t.Errorf("failed toggle triggered a save")
	}
}

func TestSetAllMsg(t *testing.T) {
	m, e, _ := newTestModel(t, "a", "b", "c")

	m = update(t, m, tasklist.SetAllMsg{Done: true})
	if done, total := e.Progress(); done != total {
		t.Errorf("Progress() = %d/%d after check all", done, total)
	}
	update(t, m, tasklist.SetAllMsg{Done: false})
	if done, _ := e.Progress(); done != 0 {
		t.Errorf("%d tasks still done after uncheck all", done)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m, e, _ := newTestModel(t, "a", "b", "c")
	task, _ := e.Get(2)

	m = update(t, m, tasklist.DeleteTaskMsg{Task: task})
	if m.state != StateConfirm {
		t.Fatalf("state = %v, want StateConfirm", m.state)
	}
	if !strings.Contains(m.confirmForm.Message, "2. B") {
		t.Errorf("confirmation message = %q", m.confirmForm.Message)
	}
	if e.Count() != 3 {
		t.Fatal("task deleted before confirmation")
	}

	// Esc cancels
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateToday || e.Count() != 3 {
		t.Fatalf("esc did not cancel: state %v, %d tasks", m.state, e.Count())
	}

	// Confirm by running the pending action the form would trigger
	m = update(t, m, tasklist.DeleteTaskMsg{Task: task})
	m.confirmForm.Confirmed = true
	m.apply(m.pendingAction(&m), m.pendingStatus)
	m.closeForm()

	if e.Count() != 2 {
		t.Fatalf("Count() = %d after confirmed delete", e.Count())
	}
	if second, _ := e.Get(2); second.Subject != "C" {
		t.Errorf("index 2 = %q after delete, want C", second.Subject)
	}
	if m.state != StateToday {
		t.Errorf("state = %v after confirmation", m.state)
	}
}

func TestResetWithNoTasksIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, tasklist.ResetMsg{})
	if m.state != StateToday {
		t.Errorf("reset on empty entry opened a confirmation")
	}
}

func TestAddAndEditOpenForm(t *testing.T) {
	m, e, _ := newTestModel(t, "a")

	m = update(t, m, tasklist.AddTaskMsg{})
	if m.state != StateEditing || m.subjectForm == nil || m.subjectForm.Index != 0 {
		t.Fatalf("add did not open an empty form: state %v", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateToday {
		t.Fatalf("esc did not close the form")
	}

	task, _ := e.Get(1)
	m = update(t, m, tasklist.EditTaskMsg{Task: task})
	if m.subjectForm == nil || m.subjectForm.Index != 1 || m.subjectForm.Subject != "A" {
		t.Errorf("edit form = %+v", m.subjectForm)
	}
}

func TestTabSwitchAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHistory {
		t.Errorf("state after tab = %v", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateToday {
		t.Errorf("tab did not wrap around: %v", m.state)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).quitting || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestSaveFailureIsShown(t *testing.T) {
	e := entry.New(dates.FixedClock(dates.Date{Day: 5, Month: 3, Year: 2024}))
	if err := e.Add("a", false, nil); err != nil {
		t.Fatal(err)
	}
	m := NewModel(e, nil, func() error { return errors.New("disk full") })

	m = update(t, m, tasklist.ToggleTaskMsg{Index: 1, Done: true})
	if !strings.Contains(m.formError, "disk full") {
		t.Errorf("formError = %q", m.formError)
	}
}

func TestViewShowsProgress(t *testing.T) {
	m, e, _ := newTestModel(t, "a", "b")
	if err := e.Toggle(1, true); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if view := m.View(); !strings.Contains(view, "05.03.2024  1/2 done") {
		t.Errorf("header missing progress:\n%s", view)
	}
}

func TestEraseHistoryConfirmation(t *testing.T) {
	e := entry.New(dates.FixedClock(dates.Date{Day: 5, Month: 3, Year: 2024}))
	recs, err := record.DecodeAll([]string{"01.03.2024 + Old", "02.03.2024 - Older"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(e, dayhistory.Group(recs), nil)
	erased := 0
	m.SetHistoryEraser(func() error {
		erased++
		return nil
	})
	eraseKey := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")}

	// Only the History tab reacts
	m = update(t, m, eraseKey)
	if m.state != StateToday {
		t.Fatalf("erase key opened a form on the Today tab: %v", m.state)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, eraseKey)
	if m.state != StateConfirm || !strings.Contains(m.confirmForm.Message, "2 archived days") {
		t.Fatalf("state = %v, form = %+v", m.state, m.confirmForm)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHistory || erased != 0 || m.historyView.Len() != 2 {
		t.Fatalf("esc did not cancel: state %v, erased %d", m.state, erased)
	}

	m = update(t, m, eraseKey)
	m.confirmForm.Confirmed = true
	m.apply(m.pendingAction(&m), m.pendingStatus)
	m.closeForm()
	if erased != 1 || m.historyView.Len() != 0 {
		t.Errorf("erased = %d, days left = %d", erased, m.historyView.Len())
	}
	if m.status != "History erased" || m.state != StateHistory {
		t.Errorf("status = %q, state = %v", m.status, m.state)
	}

	// Nothing left to erase
	m = update(t, m, eraseKey)
	if m.state != StateHistory {
		t.Errorf("erase on empty history opened a confirmation")
	}
}

func TestEraseHistoryFailureKeepsDays(t *testing.T) {
	e := entry.New(dates.FixedClock(dates.Date{Day: 5, Month: 3, Year: 2024}))
	recs, err := record.DecodeAll([]string{"01.03.2024 + Old"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(e, dayhistory.Group(recs), nil)
	m.SetHistoryEraser(func() error { return errors.New("read-only file system") })

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")})
	m.apply(m.pendingAction(&m), m.pendingStatus)
	if !strings.Contains(m.formError, "read-only") || m.historyView.Len() != 1 {
		t.Errorf("formError = %q, days = %d", m.formError, m.historyView.Len())
	}
}
