package tasks

import (
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/session"
)

type ListCmd struct {
	Open bool `help:"Show only tasks that are not done."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		tasks := s.Entry.Tasks()
		if c.Open {
			filtered := tasks[:0]
			for _, t := range tasks {
				if !t.Done {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		ctx.Printf("%s", cli.RenderTasks(s.Entry.Today().String(), tasks))
		return nil
	})
}

type SearchCmd struct {
	Query []string `arg:"" help:"Text to look for in task subjects."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		query := strings.Join(c.Query, " ")
		matches := s.Entry.Search(query)
		if len(matches) == 0 {
			ctx.Printf("No tasks match %q\n", query)
			return nil
		}
		ctx.Printf("%s", cli.RenderTasks(s.Entry.Today().String(), matches))
		return nil
	})
}
