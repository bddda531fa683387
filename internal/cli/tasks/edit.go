package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/session"
)

type ChangeCmd struct {
	Index   int      `arg:"" help:"Index of the task to change."`
	Subject []string `arg:"" optional:"" help:"New subject. Prompted for when omitted."`
}

func (c *ChangeCmd) Validate() error {
	return validateIndices([]int{c.Index})
}

func (c *ChangeCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		if _, ok := s.Entry.Get(c.Index); !ok {
			return fmt.Errorf("no task with index %d", c.Index)
		}

		subject := strings.Join(c.Subject, " ")
		if strings.TrimSpace(subject) == "" && ctx.Prompt != nil {
			text, err := ctx.Prompt.PromptText(constants.SubjectMaxLen)
			if err != nil {
				return fmt.Errorf("failed to read subject: %w", err)
			}
			subject = text
		}
		if err := s.Entry.Change(c.Index, subject); err != nil {
			return err
		}

		task, _ := s.Entry.Get(c.Index)
		ctx.Printf("✓ Changed %d. %s\n", task.Index, task.Subject)
		return nil
	})
}

type DeleteCmd struct {
	Index int  `arg:"" help:"Index of the task to delete."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Validate() error {
	return validateIndices([]int{c.Index})
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		task, ok := s.Entry.Get(c.Index)
		if !ok {
			return fmt.Errorf("no task with index %d", c.Index)
		}
		if !c.Yes {
			ok, err := ctx.Confirmed(fmt.Sprintf("Delete %d. %s?", task.Index, task.Subject))
			if err != nil {
				return err
			}
			if !ok {
				ctx.Printf("Delete cancelled.\n")
				return nil
			}
		}

		if err := s.Entry.Delete(c.Index); err != nil {
			return err
		}
		ctx.Printf("✓ Deleted %s (%d task(s) left)\n", task.Subject, s.Entry.Count())
		return nil
	})
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		if s.Entry.Count() == 0 {
			ctx.Printf("Nothing to reset.\n")
			return nil
		}
		if !c.Yes {
			ok, err := ctx.Confirmed(fmt.Sprintf("Remove all %d task(s) from today's entry?", s.Entry.Count()))
			if err != nil {
				return err
			}
			if !ok {
				ctx.Printf("Reset cancelled.\n")
				return nil
			}
		}

		n := s.Entry.Count()
		if err := s.Entry.Reset(); err != nil {
			return err
		}
		ctx.Printf("✓ Removed %d task(s)\n", n)
		return nil
	})
}
