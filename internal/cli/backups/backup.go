package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/session"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		backupPath, err := s.Backups.CreateBackup()
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		if backupPath == "" {
			ctx.Printf("History is empty, nothing to back up.\n")
			return nil
		}
		ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
		return nil
	})
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		list, err := s.Backups.ListBackups()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}

		if len(list) == 0 {
			ctx.Printf("No backups found.\n")
			ctx.Printf("Backups are stored in: %s\n", s.Backups.GetBackupDir())
			return nil
		}

		ctx.Printf("Available backups (%d total):\n\n", len(list))
		for _, b := range list {
			sizeKB := float64(b.Size) / 1024.0
			ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
		}
		ctx.Printf("\nBackup directory: %s\n", s.Backups.GetBackupDir())
		return nil
	})
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	return ctx.WithSession(func(s *session.Session) error {
		backupPath := c.BackupFile
		if !filepath.IsAbs(backupPath) {
			candidate := filepath.Join(s.Backups.GetBackupDir(), c.BackupFile)
			if _, err := os.Stat(candidate); err == nil {
				backupPath = candidate
			}
		}
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", backupPath)
		}

		if !c.Yes {
			ok, err := ctx.Confirmed(fmt.Sprintf("Replace the history with %s? The current history is backed up first.", filepath.Base(backupPath)))
			if err != nil {
				return err
			}
			if !ok {
				ctx.Printf("Restore cancelled.\n")
				return nil
			}
		}

		if err := s.Backups.RestoreBackup(backupPath); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		ctx.Printf("✓ History restored from %s\n", filepath.Base(backupPath))
		return nil
	})
}
