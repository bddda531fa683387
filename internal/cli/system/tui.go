package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/session"
	"github.com/julianstephens/daybook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		days, err := s.History()
		if err != nil {
			// The menu still works on today's entry without the history tab
			logger.Warn("Failed to load history", "error", err)
			days = nil
		}

		m := tui.NewModel(s.Entry, days, s.Save)
		m.SetHistoryEraser(func() error {
			_, err := s.EraseHistory()
			return err
		})
		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()
		return err
	})
}
