package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/entry"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/session"
)

// Context is handed to every command's Run method.
type Context struct {
	Config  *config.Config
	Clock   dates.Clock
	Out     io.Writer
	Prompt  entry.Prompter
	Confirm func(question string) (bool, error)
	Now     func() time.Time
}

// NewContext wires the interactive prompts and the configured clock.
func NewContext(cfg *config.Config) (*Context, error) {
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	return &Context{
		Config:  cfg,
		Clock:   clock,
		Out:     os.Stdout,
		Prompt:  SubjectPrompter{Title: "Task subject"},
		Confirm: Confirm,
		Now:     time.Now,
	}, nil
}

// WithSession opens the data directory, runs fn and closes the session,
// which saves today's entry and releases the lock.
func (c *Context) WithSession(fn func(s *session.Session) error) error {
	s, err := session.Open(c.Config, c.Clock)
	if err != nil {
		return err
	}
	if s.Result.Archived > 0 {
		c.Printf("Archived %d task(s) from the previous entry.\n", s.Result.Archived)
	}

	runErr := fn(s)
	closeErr := s.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(c.Out, format, args...); err != nil {
		logger.Warn("Failed to write output", "error", err)
	}
}

// Confirmed asks question and reports the answer. A nil Confirm means yes.
func (c *Context) Confirmed(question string) (bool, error) {
	if c.Confirm == nil {
		return true, nil
	}
	return c.Confirm(question)
}
