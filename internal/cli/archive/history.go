package archive

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/session"
)

type HistoryCmd struct {
	Days  int    `short:"n" help:"Number of most recent days to show (0 for all)." default:"7"`
	Query string `short:"q" help:"Only show tasks whose subject contains this text."`
	Date  string `short:"d" help:"Only show the day archived under this date (dd.mm.yyyy)."`
}

func (c *HistoryCmd) Validate() error {
	_, err := c.date()
	return err
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	target, err := c.date()
	if err != nil {
		return err
	}

	return ctx.WithSession(func(s *session.Session) error {
		all, err := s.History()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			ctx.Printf("No history yet.\n")
			return nil
		}

		days := all
		if target != nil {
			days = daysOn(days, *target)
		}
		if c.Query != "" {
			days = filterDays(days, c.Query)
		}
		if target == nil {
			days = history.Last(days, c.Days)
		}

		switch {
		case len(days) == 0 && target != nil:
			ctx.Printf("%s: no match\n", target.String())
		case len(days) == 0:
			ctx.Printf("No tasks match %q\n", c.Query)
		}
		for i, d := range days {
			if i > 0 {
				ctx.Printf("\n")
			}
			ctx.Printf("%s", cli.RenderDay(d))
		}
		ctx.Printf("\nTotal: %d day(s) in history\n", len(all))
		return nil
	})
}

// date parses --date. A nil result means no date was given.
func (c *HistoryCmd) date() (*dates.Date, error) {
	raw := strings.TrimSpace(c.Date)
	if raw == "" {
		return nil, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("--date: %w", err)
	}
	return &d, nil
}

// daysOn keeps every group archived under target. A date normally forms one
// group, but a hand-edited archive can repeat it.
func daysOn(days []history.Day, target dates.Date) []history.Day {
	var out []history.Day
	for _, d := range days {
		if d.Date.Equal(target) {
			out = append(out, d)
		}
	}
	return out
}

func filterDays(days []history.Day, query string) []history.Day {
	query = strings.ToLower(query)
	var out []history.Day
	for _, d := range days {
		matched := history.Day{Date: d.Date}
		for _, r := range d.Tasks {
			if strings.Contains(strings.ToLower(r.Subject), query) {
				matched.Tasks = append(matched.Tasks, r)
			}
		}
		if len(matched.Tasks) > 0 {
			out = append(out, matched)
		}
	}
	return out
}
