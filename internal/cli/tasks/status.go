package tasks

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/session"
)

type DoneCmd struct {
	Indices []int `arg:"" help:"Indices of the tasks to mark done."`
}

func (c *DoneCmd) Validate() error {
	return validateIndices(c.Indices)
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	return toggle(ctx, c.Indices, true)
}

type UndoneCmd struct {
	Indices []int `arg:"" help:"Indices of the tasks to mark not done."`
}

func (c *UndoneCmd) Validate() error {
	return validateIndices(c.Indices)
}

func (c *UndoneCmd) Run(ctx *cli.Context) error {
	return toggle(ctx, c.Indices, false)
}

type CheckAllCmd struct{}

func (c *CheckAllCmd) Run(ctx *cli.Context) error {
	return bulkToggle(ctx, true)
}

type UncheckAllCmd struct{}

func (c *UncheckAllCmd) Run(ctx *cli.Context) error {
	return bulkToggle(ctx, false)
}

// toggle checks every index before changing anything, so a bad index leaves
// the entry as it was.
func toggle(ctx *cli.Context, indices []int, done bool) error {
	return ctx.WithSession(func(s *session.Session) error {
		for _, idx := range indices {
			if _, ok := s.Entry.Get(idx); !ok {
				return fmt.Errorf("no task with index %d", idx)
			}
		}
		for _, idx := range indices {
			if err := s.Entry.Toggle(idx, done); err != nil {
				return err
			}
			task, _ := s.Entry.Get(idx)
			ctx.Printf("%s %d. %s\n", cli.CheckBox(done), task.Index, task.Subject)
		}
		return nil
	})
}

func bulkToggle(ctx *cli.Context, done bool) error {
	return ctx.WithSession(func(s *session.Session) error {
		if err := s.Entry.BulkToggle(done); err != nil {
			return err
		}
		state := "not done"
		if done {
			state = "done"
		}
		ctx.Printf("✓ Marked %d task(s) %s\n", s.Entry.Count(), state)
		return nil
	})
}

func validateIndices(indices []int) error {
	for _, idx := range indices {
		if idx < 1 {
			return fmt.Errorf("task index must be 1 or greater, got %d", idx)
		}
	}
	return nil
}
