// Package session opens the data directory for one run: it takes the
// lockfile, bootstraps today's entry and saves it back on close.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/dates"
	"github.com/julianstephens/daybook/internal/entry"
	"github.com/julianstephens/daybook/internal/history"
	"github.com/julianstephens/daybook/internal/lifecycle"
	"github.com/julianstephens/daybook/internal/lock"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage"
)

var ErrClosed = errors.New("session is closed")

type Session struct {
	ID      string
	Config  *config.Config
	Entry   *entry.Entry
	Result  lifecycle.Result
	Backups *backup.Manager

	entryStore   storage.Store
	historyStore storage.Store
	lock         *lock.Lock
	closed       bool
}

// Open locks cfg.DataDir and loads the entry for clock's today, archiving a
// previous day's entry first. Callers must Close the session.
func Open(cfg *config.Config, clock dates.Clock) (*Session, error) {
	l, err := lock.Acquire(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:           uuid.NewString(),
		Config:       cfg,
		Backups:      backup.NewManager(cfg.HistoryFile, cfg.Backups),
		entryStore:   storage.NewFileStore(cfg.EntryFile),
		historyStore: storage.NewFileStore(cfg.HistoryFile),
		lock:         l,
	}
	logger.WithSession(s.ID)

	if err := s.bootstrap(clock); err != nil {
		if rerr := l.Release(); rerr != nil {
			logger.Warn("Failed to release lock", "error", rerr)
		}
		return nil, err
	}
	return s, nil
}

func (s *Session) bootstrap(clock dates.Clock) error {
	for _, st := range []storage.Store{s.entryStore, s.historyStore} {
		if err := st.Init(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", st.Path(), err)
		}
	}

	var opts []lifecycle.Option
	if s.Config.Backups > 0 {
		opts = append(opts, lifecycle.WithBeforeArchive(func() error {
			path, err := s.Backups.CreateBackup()
			if err == nil && path != "" {
				logger.Info("History backed up before archiving", "path", path)
			}
			return err
		}))
	}

	e, result, err := lifecycle.Bootstrap(s.entryStore, s.historyStore, clock, opts...)
	if err != nil {
		return err
	}
	s.Entry = e
	s.Result = result
	logger.Debug("Session opened", "state", result.State, "resumed", result.Resumed, "archived", result.Archived, "lock", s.lock.Path())
	return nil
}

// History returns the archived days, oldest first.
func (s *Session) History() ([]history.Day, error) {
	return history.Load(s.historyStore)
}

// EraseHistory backs up the archive and then empties it. The returned path
// is empty when there was nothing to back up.
func (s *Session) EraseHistory() (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	path, err := s.Backups.CreateBackup()
	if err != nil {
		return "", fmt.Errorf("failed to back up history before erasing: %w", err)
	}
	if err := s.historyStore.WriteLines(nil); err != nil {
		return path, fmt.Errorf("failed to erase history: %w", err)
	}
	logger.Info("History erased", "path", s.historyStore.Path(), "backup", path)
	return path, nil
}

// Save writes the current entry to the last-entry store.
func (s *Session) Save() error {
	if s.closed {
		return ErrClosed
	}
	return lifecycle.Save(s.Entry, s.entryStore)
}

// Close saves the entry and releases the lockfile. The lock is released even
// when saving fails. Calling Close twice is a no-op.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	saveErr := s.Save()
	s.closed = true

	lockErr := s.lock.Release()
	if saveErr != nil {
		logger.Error("Failed to save entry on close", "error", saveErr)
		return saveErr
	}
	return lockErr
}
