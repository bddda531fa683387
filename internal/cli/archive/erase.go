package archive

import (
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/session"
)

type EraseHistoryCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *EraseHistoryCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		days, err := s.History()
		if err != nil {
			return err
		}
		if len(days) == 0 {
			ctx.Printf("History is empty, nothing to erase.\n")
			return nil
		}

		if !c.Yes {
			ok, err := ctx.Confirmed("Erase the whole history? A backup is made first.")
			if err != nil {
				return err
			}
			if !ok {
				ctx.Printf("Erase cancelled.\n")
				return nil
			}
		}

		path, err := s.EraseHistory()
		if err != nil {
			return err
		}
		ctx.Printf("✓ Erased %d day(s) of history\n", len(days))
		if path != "" {
			ctx.Printf("  Backup: %s\n", path)
		}
		return nil
	})
}
