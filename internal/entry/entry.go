// Package entry holds today's ordered task list and the operations the menu
// and command line run against it.
//
// Tasks are addressed by their display index. The index is looked up by
// scanning the stored Index field, never by list position, and every
// structural change renumbers the remaining tasks 1..N.
package entry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/tasklist"
)

var (
	ErrNilEntry     = errors.New("entry is not initialized")
	ErrEmptySubject = errors.New("subject must not be empty")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvariant    = errors.New("task indices are not contiguous")
)

// Prompter asks the user for a line of text of at most max characters.
type Prompter interface {
	PromptText(max int) (string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(max int) (string, error)

func (f PrompterFunc) PromptText(max int) (string, error) {
	return f(max)
}

// Visitor receives a copy of each task in order.
type Visitor interface {
	Visit(task models.Task)
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(task models.Task)

func (f VisitorFunc) Visit(task models.Task) {
	f(task)
}

type Entry struct {
	clock dates.Clock
	tasks *tasklist.List[*models.Task]
}

// New returns an empty entry stamped by clock.
func New(clock dates.Clock) *Entry {
	return &Entry{
		clock: clock,
		tasks: tasklist.New((*models.Task).Release),
	}
}

// Today returns the day new tasks are stamped with.
func (e *Entry) Today() dates.Date {
	return e.clock.Today()
}

// Count returns the number of tasks.
func (e *Entry) Count() int {
	if e == nil || e.tasks == nil {
		return 0
	}
	return e.tasks.Len()
}

// Progress returns the number of done tasks and the total.
func (e *Entry) Progress() (done, total int) {
	e.Each(VisitorFunc(func(t models.Task) {
		if t.Done {
			done++
		}
		total++
	}))
	return done, total
}

// Tasks returns a read-only snapshot in list order.
func (e *Entry) Tasks() []models.Task {
	out := make([]models.Task, 0, e.Count())
	if e == nil || e.tasks == nil {
		return out
	}
	for _, t := range e.tasks.Values() {
		out = append(out, *t)
	}
	return out
}

// Get returns the task currently at index.
func (e *Entry) Get(index int) (models.Task, bool) {
	if e == nil || e.tasks == nil {
		return models.Task{}, false
	}
	t, ok := e.tasks.Value(e.find(index))
	if !ok {
		return models.Task{}, false
	}
	return *t, true
}

// Each calls v for every task in order.
func (e *Entry) Each(v Visitor) {
	if e == nil || e.tasks == nil || v == nil {
		return
	}
	e.tasks.Each(func(_ tasklist.Ref, t *models.Task) bool {
		v.Visit(*t)
		return true
	})
}

// Search returns the tasks whose subject contains query, ignoring case.
func (e *Entry) Search(query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []models.Task
	e.Each(VisitorFunc(func(t models.Task) {
		if strings.Contains(strings.ToLower(t.Subject), query) {
			out = append(out, t)
		}
	}))
	return out
}

// Add appends a task dated today. When subject is blank the prompter, if
// any, is asked for one.
func (e *Entry) Add(subject string, done bool, prompt Prompter) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}

	subject = cleanSubject(subject)
	if subject == "" && prompt != nil {
		text, err := prompt.PromptText(constants.SubjectMaxLen)
		if err != nil {
			return fmt.Errorf("failed to read subject: %w", err)
		}
		subject = cleanSubject(text)
	}
	if subject == "" {
		return ErrEmptySubject
	}

	task, err := models.NewTask(e.tasks.Len()+1, e.clock.Today().String(), done, models.Capitalize(subject))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	e.tasks.PushBack(task)
	logger.Debug("Task added", "index", task.Index, "done", done)

	return e.verify("add")
}

// Populate appends already-decoded records, keeping their order, subject and
// status as-is.
func (e *Entry) Populate(recs []record.Record) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}

	created := make([]*models.Task, 0, len(recs))
	for i, r := range recs {
		task, err := models.NewTask(e.tasks.Len()+i+1, r.Date.String(), r.Done, r.Subject)
		if err != nil {
			for _, t := range created {
				t.Release()
			}
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		created = append(created, task)
	}
	for _, t := range created {
		e.tasks.PushBack(t)
	}

	return e.verify("populate")
}

// Change replaces the subject of the task at index.
func (e *Entry) Change(index int, subject string) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}

	task, ok := e.tasks.Value(e.find(index))
	if !ok {
		return fmt.Errorf("%w: index %d", ErrTaskNotFound, index)
	}
	subject = cleanSubject(subject)
	if subject == "" {
		return ErrEmptySubject
	}

	task.Subject = models.Truncate(subject, constants.SubjectMaxLen)
	logger.Debug("Task changed", "index", index)
	return nil
}

// Toggle sets the status of the task at index. Setting a task to the status
// it already has succeeds.
func (e *Entry) Toggle(index int, done bool) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}

	task, ok := e.tasks.Value(e.find(index))
	if !ok {
		return fmt.Errorf("%w: index %d", ErrTaskNotFound, index)
	}
	task.Done = done
	logger.Debug("Task toggled", "index", index, "done", done)
	return nil
}

// BulkToggle sets the status of every task.
func (e *Entry) BulkToggle(done bool) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}
	e.tasks.Each(func(_ tasklist.Ref, t *models.Task) bool {
		t.Done = done
		return true
	})
	logger.Debug("All tasks toggled", "done", done, "count", e.tasks.Len())
	return nil
}

// Delete removes the task at index and renumbers the rest.
func (e *Entry) Delete(index int) error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}

	ref := e.find(index)
	if ref.IsNil() {
		return fmt.Errorf("%w: index %d", ErrTaskNotFound, index)
	}
	task, err := e.tasks.Remove(ref)
	if err != nil {
		return fmt.Errorf("failed to remove task %d: %w", index, err)
	}
	task.Release()
	e.reindex()
	logger.Debug("Task deleted", "index", index, "remaining", e.tasks.Len())

	return e.verify("delete")
}

// Reset discards every task.
func (e *Entry) Reset() error {
	if e == nil || e.tasks == nil {
		return ErrNilEntry
	}
	e.tasks.Destroy()
	logger.Debug("Entry reset")
	return nil
}

// Flush renders the entry in the persisted line format.
func (e *Entry) Flush() []string {
	lines := make([]string, 0, e.Count())
	e.Each(VisitorFunc(func(t models.Task) {
		lines = append(lines, record.Format(t.Date, t.Done, t.Subject))
	}))
	return lines
}

func (e *Entry) find(index int) tasklist.Ref {
	return e.tasks.Find(func(t *models.Task) bool {
		return t.Index == index
	})
}

func (e *Entry) reindex() {
	i := 1
	e.tasks.Each(func(_ tasklist.Ref, t *models.Task) bool {
		t.Index = i
		i++
		return true
	})
}

// verify checks that indices run 1..N in list order. A gap is a programming
// error: it is logged and reported, never patched up.
func (e *Entry) verify(op string) error {
	var err error
	want := 1
	e.tasks.Each(func(_ tasklist.Ref, t *models.Task) bool {
		if t.Index != want {
			err = fmt.Errorf("%w: after %s, position %d holds index %d", ErrInvariant, op, want, t.Index)
			return false
		}
		want++
		return true
	})
	if err != nil {
		logger.Error("Task index invariant violated", "op", op, "error", err)
	}
	return err
}

func cleanSubject(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}
