// Package config loads daybook settings from defaults, a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/dates"
)

// Environment variables consulted by Load.
const (
	EnvDataDir     = "DAYBOOK_DATA_DIR"
	EnvEntryFile   = "DAYBOOK_ENTRY_FILE"
	EnvHistoryFile = "DAYBOOK_HISTORY_FILE"
	EnvTimezone    = "DAYBOOK_TIMEZONE"
	EnvDebug       = "DAYBOOK_DEBUG"
	EnvBackups     = "DAYBOOK_BACKUPS"
)

// Config holds the effective settings for one run.
type Config struct {
	DataDir     string `toml:"data_dir"`
	EntryFile   string `toml:"entry_file"`
	HistoryFile string `toml:"history_file"`
	Timezone    string `toml:"timezone"`
	Debug       bool   `toml:"debug"`
	Backups     int    `toml:"backups"`

	// Path is the file the config was read from, empty when none was found.
	Path string `toml:"-"`
}

// Overrides carries command-line values. Zero values leave the loaded
// setting untouched.
type Overrides struct {
	DataDir     string
	EntryFile   string
	HistoryFile string
	Timezone    string
	Debug       bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:     constants.DefaultDataDir,
		EntryFile:   constants.DefaultEntryFile,
		HistoryFile: constants.DefaultHistoryFile,
		Backups:     constants.MaxBackups,
	}
}

// Load applies defaults, then the TOML file at path, then the environment,
// then ov. An empty path means the default location. A missing file is not
// an error.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = constants.DefaultConfigPath
	}
	path = expandPath(path)

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	cfg.apply(ov)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvEntryFile); v != "" {
		cfg.EntryFile = v
	}
	if v := os.Getenv(EnvHistoryFile); v != "" {
		cfg.HistoryFile = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvDebug, v, err)
		}
		cfg.Debug = b
	}
	if v := os.Getenv(EnvBackups); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvBackups, v, err)
		}
		cfg.Backups = n
	}
	return nil
}

func (c *Config) apply(ov Overrides) {
	if ov.DataDir != "" {
		c.DataDir = ov.DataDir
	}
	if ov.EntryFile != "" {
		c.EntryFile = ov.EntryFile
	}
	if ov.HistoryFile != "" {
		c.HistoryFile = ov.HistoryFile
	}
	if ov.Timezone != "" {
		c.Timezone = ov.Timezone
	}
	if ov.Debug {
		c.Debug = true
	}
}

func (c *Config) finalize() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.Backups < 0 {
		return fmt.Errorf("backups must not be negative, got %d", c.Backups)
	}

	c.DataDir = expandPath(c.DataDir)
	c.EntryFile = c.resolve(c.EntryFile, constants.DefaultEntryFile)
	c.HistoryFile = c.resolve(c.HistoryFile, constants.DefaultHistoryFile)
	if c.EntryFile == c.HistoryFile {
		return fmt.Errorf("entry_file and history_file both point to %s", c.EntryFile)
	}

	if _, err := dates.LoadLocation(c.Timezone); err != nil {
		return err
	}
	return nil
}

// resolve expands p and anchors relative paths under DataDir.
func (c *Config) resolve(p, fallback string) string {
	if strings.TrimSpace(p) == "" {
		p = fallback
	}
	p = expandPath(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.DataDir, p)
	}
	return filepath.Clean(p)
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return dates.LoadLocation(c.Timezone)
}

// Clock returns a clock reading today's date in the configured zone.
func (c *Config) Clock() (dates.Clock, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return dates.SystemClock{Location: loc}, nil
}

// Encode writes the config as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
