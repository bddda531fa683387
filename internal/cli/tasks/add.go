package tasks

import (
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/session"
)

type AddCmd struct {
	Subject []string `arg:"" optional:"" help:"Task subject. Prompted for when omitted."`
	Done    bool     `short:"d" help:"Add the task already done."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		if err := s.Entry.Add(strings.Join(c.Subject, " "), c.Done, ctx.Prompt); err != nil {
			return err
		}
		task, _ := s.Entry.Get(s.Entry.Count())
		ctx.Printf("✓ Added %d. %s\n", task.Index, task.Subject)
		return nil
	})
}
