package models

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/julianstephens/daybook/internal/constants"
)

var ErrMissingField = errors.New("task requires a date and a subject")

// Task is one line of a day's entry.
type Task struct {
	ID      string `json:"-"`     // in-session identity, never persisted
	Index   int    `json:"index"` // 1-based display position, recomputed on every structural change
	Date    string `json:"date"`  // dd.mm.yyyy
	Subject string `json:"subject"`
	Done    bool   `json:"done"`
}

// NewTask copies date and subject into a new Task, truncating each to its
// fixed width.
func NewTask(index int, date string, done bool, subject string) (*Task, error) {
	if date == "" || subject == "" {
		return nil, ErrMissingField
	}
	return &Task{
		ID:      uuid.New().String(),
		Index:   index,
		Date:    Truncate(date, constants.DateWidth),
		Subject: Truncate(subject, constants.SubjectMaxLen),
		Done:    done,
	}, nil
}

// Release drops the task's owned strings. Safe on nil.
func (t *Task) Release() {
	if t == nil {
		return
	}
	t.Date = ""
	t.Subject = ""
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
