package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDataDir, EnvEntryFile, EnvHistoryFile, EnvTimezone, EnvDebug, EnvBackups} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), Overrides{DataDir: dataDir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for missing file", cfg.Path)
	}
	if cfg.EntryFile != filepath.Join(dataDir, "today.txt") {
		t.Errorf("EntryFile = %q", cfg.EntryFile)
	}
	if cfg.HistoryFile != filepath.Join(dataDir, "history.txt") {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.Backups != 14 {
		t.Errorf("Backups = %d, want 14", cfg.Backups)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	fileDir := t.TempDir()
	envDir := t.TempDir()
	flagDir := t.TempDir()

	path := writeConfig(t, `
data_dir = "`+filepath.ToSlash(fileDir)+`"
entry_file = "file-entry.txt"
timezone = "UTC"
backups = 3
`)

	tests := []struct {
		name      string
		env       map[string]string
		ov        Overrides
		wantDir   string
		wantEntry string
	}{
		{
			name:      "file only",
			wantDir:   fileDir,
			wantEntry: "file-entry.txt",
		},
		{
			name:      "env beats file",
			env:       map[string]string{EnvDataDir: envDir, EnvEntryFile: "env-entry.txt"},
			wantDir:   envDir,
			wantEntry: "env-entry.txt",
		},
		{
			name:      "flags beat env",
			env:       map[string]string{EnvDataDir: envDir},
			ov:        Overrides{DataDir: flagDir, EntryFile: "flag-entry.txt"},
			wantDir:   flagDir,
			wantEntry: "flag-entry.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(path, tt.ov)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cfg.DataDir != tt.wantDir {
				t.Errorf("DataDir = %q, want %q", cfg.DataDir, tt.wantDir)
			}
			if want := filepath.Join(tt.wantDir, tt.wantEntry); cfg.EntryFile != want {
				t.Errorf("EntryFile = %q, want %q", cfg.EntryFile, want)
			}
			if cfg.Backups != 3 || cfg.Timezone != "UTC" {
				t.Errorf("file values lost: %+v", cfg)
			}
			if cfg.Path != path {
				t.Errorf("Path = %q, want %q", cfg.Path, path)
			}
		})
	}
}

func TestLoadAbsoluteStorePathsKept(t *testing.T) {
	clearEnv(t)
	abs := filepath.Join(t.TempDir(), "elsewhere", "hist.txt")
	t.Setenv(EnvHistoryFile, abs)

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), Overrides{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryFile != abs {
		t.Errorf("HistoryFile = %q, want %q", cfg.HistoryFile, abs)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad toml", body: "data_dir = ", wantErr: "failed to parse"},
		{name: "unknown key", body: `colour = "red"`, wantErr: "unknown keys"},
		{name: "bad timezone", body: `timezone = "Mars/Olympus"`, wantErr: "invalid timezone"},
		{name: "negative backups", body: `backups = -1`, wantErr: "backups"},
		{name: "same store files", body: `entry_file = "x.txt"
history_file = "x.txt"`, wantErr: "both point"},
		{name: "bad debug env", env: map[string]string{EnvDebug: "maybe"}, wantErr: EnvDebug},
		{name: "bad backups env", env: map[string]string{EnvBackups: "lots"}, wantErr: EnvBackups},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)
			_, err := Load(path, Overrides{DataDir: t.TempDir()})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDebugFromEnvAndFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "true")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), Overrides{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("Debug not read from environment")
	}

	clearEnv(t)
	cfg, err = Load(filepath.Join(t.TempDir(), "none.toml"), Overrides{DataDir: t.TempDir(), Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("Debug flag ignored")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/notes"); got != filepath.Join(home, "notes") {
		t.Errorf("expandPath(~/notes) = %q", got)
	}
	if got := expandPath("~"); got != home {
		t.Errorf("expandPath(~) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath(/abs/path) = %q", got)
	}
}

func TestEncodeAndClock(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), Overrides{DataDir: t.TempDir(), Timezone: "UTC"})
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := cfg.Encode(&sb); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := sb.String()
	for _, key := range []string{"data_dir", "entry_file", "history_file", "timezone", "backups"} {
		if !strings.Contains(out, key) {
			t.Errorf("encoded config missing %q:\n%s", key, out)
		}
	}
	if strings.Contains(out, "Path") {
		t.Errorf("encoded config leaked Path:\n%s", out)
	}

	if _, err := cfg.Clock(); err != nil {
		t.Errorf("Clock() failed: %v", err)
	}
}
