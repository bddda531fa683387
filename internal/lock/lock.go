// Package lock keeps two daybook processes from working on the same data
// directory at once.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
)

var ErrLocked = errors.New("another daybook process is using this data directory")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

type Lock struct {
	path string
}

// Acquire takes the lockfile in dir. A lockfile left by a process that is
// gone, or whose PID now belongs to another program, is taken over.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	if pid, ok := readPID(path); ok {
		if holder := liveHolder(pid); holder != "" {
			return nil, fmt.Errorf("%w (pid %d, %s)", ErrLocked, pid, holder)
		}
		logger.Info("Replacing stale lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	if _, err := f.WriteString(strconv.Itoa(getpidFunc())); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return &Lock{path: path}, nil
}

// Path returns the lockfile location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile. Safe on nil and safe to call twice.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

func readPID(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		// Malformed lockfiles are treated as stale
		return 0, true
	}
	return pid, true
}

// liveHolder returns the executable name when pid is a running daybook
// process other than this one.
func liveHolder(pid int) string {
	if pid == 0 || pid == getpidFunc() {
		return ""
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return ""
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return ""
	}
	return process.Executable()
}
