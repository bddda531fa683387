// Package lifecycle decides at startup whether the persisted entry is
// resumed or archived, and writes the entry back at exit.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/entry"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/storage"
)

var ErrInvalidEntry = errors.New("persisted entry is invalid")

type State int

const (
	NoPersistedEntry State = iota
	PersistedEntryIsToday
	PersistedEntryIsPast
	Invalid
)

func (s State) String() string {
	switch s {
	case NoPersistedEntry:
		return "no persisted entry"
	case PersistedEntryIsToday:
		return "resumed"
	case PersistedEntryIsPast:
		return "archived"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes what Bootstrap did.
type Result struct {
	State    State
	Resumed  int
	Archived int
}

type options struct {
	beforeArchive func() error
}

type Option func(*options)

// WithBeforeArchive runs fn right before persisted lines are appended to
// history. A failing hook is logged and archiving goes ahead.
func WithBeforeArchive(fn func() error) Option {
	return func(o *options) {
		o.beforeArchive = fn
	}
}

// Decide classifies the persisted lines. The checks run in a fixed order:
// emptiness, then the first line's date, then comparison with today.
// Any date other than today, earlier or later, counts as past.
func Decide(lines []string, today dates.Date) (State, error) {
	if len(lines) == 0 {
		return NoPersistedEntry, nil
	}

	d, err := record.LeadingDate(lines[0])
	if err != nil {
		return Invalid, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if d.Equal(today) {
		return PersistedEntryIsToday, nil
	}
	return PersistedEntryIsPast, nil
}

// Bootstrap reads the last-entry store and returns the entry to work on.
func Bootstrap(entryStore, historyStore storage.Store, clock dates.Clock, opts ...Option) (*entry.Entry, Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lines, err := entryStore.ReadLines()
	if err != nil {
		return nil, Result{State: Invalid}, fmt.Errorf("failed to read last entry: %w", err)
	}

	today := clock.Today()
	state, err := Decide(lines, today)
	if err != nil {
		return nil, Result{State: state}, err
	}

	e := entry.New(clock)
	result := Result{State: state}

	switch state {
	case NoPersistedEntry:
		logger.Debug("No persisted entry, starting fresh", "today", today)

	case PersistedEntryIsToday:
		recs, err := record.DecodeAll(lines)
		if err != nil {
			return nil, Result{State: Invalid}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
		for i, r := range recs {
			if !r.Date.Equal(today) {
				return nil, Result{State: Invalid}, fmt.Errorf("%w: line %d is dated %s, entry is dated %s", ErrInvalidEntry, i+1, r.Date, today)
			}
		}
		if err := e.Populate(recs); err != nil {
			return nil, Result{State: Invalid}, err
		}
		result.Resumed = len(recs)
		logger.Debug("Resumed today's entry", "tasks", result.Resumed)

	case PersistedEntryIsPast:
		if o.beforeArchive != nil {
			if err := o.beforeArchive(); err != nil {
				logger.Warn("Pre-archive hook failed", "error", err)
			}
		}
		if err := Archive(lines, historyStore); err != nil {
			return nil, result, err
		}
		// Clear the store now so a crash before exit cannot archive the same day twice
		if err := entryStore.WriteLines(nil); err != nil {
			return nil, result, fmt.Errorf("failed to clear last entry after archiving: %w", err)
		}
		result.Archived = len(lines)
		logger.Info("Archived previous entry", "lines", result.Archived, "history", historyStore.Path())
	}

	return e, result, nil
}

// Archive appends lines to history verbatim.
func Archive(lines []string, history storage.Store) error {
	if err := history.AppendLines(lines); err != nil {
		return fmt.Errorf("failed to archive entry: %w", err)
	}
	return nil
}

// Save writes the entry to the last-entry store, replacing its content.
func Save(e *entry.Entry, store storage.Store) error {
	if e == nil {
		return entry.ErrNilEntry
	}
	if err := store.WriteLines(e.Flush()); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}
