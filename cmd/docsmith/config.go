package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/docsmith"
	"github.com/fwojciec/docsmith/fs"
	"github.com/fwojciec/docsmith/gh"
	"github.com/fwojciec/docsmith/hugo"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-project configuration file.
const ConfigFile = "docsmith.yaml"

// EnvPrefix prefixes environment overrides, e.g. DOCSMITH_STALE_AFTER.
const EnvPrefix = "docsmith"

// Config holds the tunables of a docsmith invocation.
type Config struct {
	StateDir    string        `yaml:"state_dir" envconfig:"STATE_DIR"`
	StaleAfter  time.Duration `yaml:"stale_after" envconfig:"STALE_AFTER"`
	BackupKeep  int           `yaml:"backup_keep" envconfig:"BACKUP_KEEP"`
	LogMaxBytes int64         `yaml:"log_max_bytes" envconfig:"LOG_MAX_BYTES"`
	HugoBin     string        `yaml:"hugo_bin" envconfig:"HUGO_BIN"`
	GhBin       string        `yaml:"gh_bin" envconfig:"GH_BIN"`
	ContentDir  string        `yaml:"content_dir" envconfig:"CONTENT_DIR"`
	PublicDir   string        `yaml:"public_dir" envconfig:"PUBLIC_DIR"`
	LogLevel    string        `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		StateDir:    ".docsmith",
		StaleAfter:  docsmith.DefaultStaleAfter,
		BackupKeep:  fs.DefaultBackupKeep,
		LogMaxBytes: 5 << 20,
		HugoBin:     hugo.DefaultBin,
		GhBin:       gh.DefaultBin,
		ContentDir:  "content",
		PublicDir:   "public",
		LogLevel:    "warn",
	}
}

// LoadConfig layers the project's docsmith.yaml and DOCSMITH_* environment
// variables over the defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, docsmith.Errorf(docsmith.EINVALID, "invalid %s: %v", ConfigFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, docsmith.Errorf(docsmith.EINVALID, "invalid environment: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		return docsmith.Errorf(docsmith.EINVALID, "state_dir required")
	}
	if c.StaleAfter <= 0 {
		return docsmith.Errorf(docsmith.EINVALID, "stale_after must be positive")
	}
	if c.BackupKeep < 1 {
		return docsmith.Errorf(docsmith.EINVALID, "backup_keep must be at least 1")
	}
	if c.LogMaxBytes < 0 {
		return docsmith.Errorf(docsmith.EINVALID, "log_max_bytes must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, docsmith.Errorf(docsmith.EINVALID, "invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// resolve returns path relative to dir unless it is absolute.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
