package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/record"
	"github.com/julianstephens/daybook/internal/storage"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager keeps timestamped copies of the history file
type Manager struct {
	historyPath string
	backupDir   string
	maxBackups  int
}

var nowFunc = time.Now

// NewManager creates a backup manager for the history file at historyPath.
// Backups live in a "backups" directory next to it; maxBackups <= 0 means the default.
func NewManager(historyPath string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	return &Manager{
		historyPath: historyPath,
		backupDir:   filepath.Join(filepath.Dir(historyPath), constants.BackupDirName),
		maxBackups:  maxBackups,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the history file into the backup directory. It returns
// an empty path and no error when the history is missing or empty.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skipRotation is used to keep the pre-restore copy from
// rotating away the backup being restored
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	info, err := os.Stat(m.historyPath)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat history: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.uniquePath()
	if err != nil {
		return "", err
	}

	if err := copyFile(m.historyPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to backup history: %w", err)
	}
	logger.Debug("History backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Rotation failure leaves extra files behind but the backup itself is good
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// uniquePath picks a file name from the current time, falling back to
// second precision and then a counter.
func (m *Manager) uniquePath() (string, error) {
	now := nowFunc()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+ts+constants.BackupFileSuffix)
	}

	backupPath := name(now.Format("20060102-1504"))
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return backupPath, nil
	}

	timestamp := now.Format("20060102-150405")
	backupPath = name(timestamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		backupPath = name(fmt.Sprintf("%s-%d", timestamp, counter))
	}
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestamp, counter, ok := parseBackupName(name)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		// Counter suffixes order copies made within the same second
		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp.Add(time.Duration(counter) * time.Nanosecond),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupName accepts YYYYMMDD-HHMM, YYYYMMDD-HHMMSS and either with a -N counter.
func parseBackupName(name string) (time.Time, int, bool) {
	ts := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	counter := 0
	parts := strings.Split(ts, "-")
	if len(parts) == 3 {
		n, err := fmt.Sscanf(parts[2], "%d", &counter)
		if err != nil || n != 1 {
			return time.Time{}, 0, false
		}
		ts = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t, counter, true
		}
	}
	return time.Time{}, 0, false
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= m.maxBackups {
		return nil
	}

	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the history file with a backup, first saving a
// copy of the current history.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	currentBackup, err := m.createBackup(true)
	if err != nil {
		return fmt.Errorf("failed to backup current history before restore: %w", err)
	}
	if currentBackup != "" {
		logger.Info("Backed up current history before restore", "path", currentBackup)
	}

	tempPath := m.historyPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.historyPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore history: %w", err)
	}

	return nil
}

// verifyBackup rejects a file with no decodable history line. Single bad
// lines are tolerated, the way history.Load reads them.
func (m *Manager) verifyBackup(path string) error {
	lines, err := storage.NewFileStore(path).ReadLines()
	if err != nil {
		return err
	}

	var firstErr error
	bad := 0
	for i, line := range lines {
		if _, err := record.Decode(line); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("line %d: %w", i+1, err)
			}
			bad++
		}
	}
	if len(lines) > 0 && bad == len(lines) {
		return firstErr
	}
	if bad > 0 {
		logger.Warn("Backup has unreadable lines", "path", path, "count", bad, "first", firstErr)
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	// Sync to ensure data is written to disk
	return destFile.Sync()
}
