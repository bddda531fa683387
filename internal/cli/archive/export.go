package archive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/export"
	"github.com/julianstephens/daybook/internal/session"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of standard output." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		days, err := s.History()
		if err != nil {
			return err
		}
		doc := export.Build(days, s.Entry.Today(), s.Entry.Tasks(), ctx.Now())

		var buf bytes.Buffer
		if err := export.Write(&buf, doc); err != nil {
			return err
		}

		if c.Output == "" {
			ctx.Printf("%s", buf.String())
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(c.Output), 0700); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(c.Output, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		ctx.Printf("✓ Exported %d day(s) of history to %s\n", len(doc.History), c.Output)
		return nil
	})
}
