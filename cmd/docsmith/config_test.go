package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docsmith"
	main "github.com/fwojciec/docsmith/cmd/docsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := main.LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, main.DefaultConfig(), cfg)
	assert.Equal(t, ".docsmith", cfg.StateDir)
	assert.Equal(t, 30*time.Minute, cfg.StaleAfter)
	assert.Equal(t, 10, cfg.BackupKeep)
	assert.Equal(t, int64(5<<20), cfg.LogMaxBytes)
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, main.ConfigFile), []byte(`
stale_after: 45m
backup_keep: 3
hugo_bin: /opt/hugo/bin/hugo
log_level: debug
`), 0o644))

		cfg, err := main.LoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, 45*time.Minute, cfg.StaleAfter)
		assert.Equal(t, 3, cfg.BackupKeep)
		assert.Equal(t, "/opt/hugo/bin/hugo", cfg.HugoBin)
		assert.Equal(t, "gh", cfg.GhBin)
		assert.Equal(t, ".docsmith", cfg.StateDir)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, main.ConfigFile), []byte("stale_after: [\n"), 0o644))

		_, err := main.LoadConfig(dir)

		assert.Equal(t, docsmith.EINVALID, docsmith.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, main.ConfigFile), []byte("backup_keep: 0\n"), 0o644))

		_, err := main.LoadConfig(dir)

		assert.Equal(t, docsmith.EINVALID, docsmith.ErrorCode(err))
		assert.Equal(t, "backup_keep must be at least 1", docsmith.ErrorMessage(err))
	})
}

// Environment tests cannot run in parallel.
func TestLoadConfig_Environment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, main.ConfigFile), []byte("stale_after: 45m\nbackup_keep: 3\n"), 0o644))
	t.Setenv("DOCSMITH_STALE_AFTER", "1h")
	t.Setenv("DOCSMITH_LOG_LEVEL", "info")

	cfg, err := main.LoadConfig(dir)

	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.StaleAfter)
	assert.Equal(t, 3, cfg.BackupKeep)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("DOCSMITH_BACKUP_KEEP", "many")

	_, err := main.LoadConfig(t.TempDir())

	assert.Equal(t, docsmith.EINVALID, docsmith.ErrorCode(err))
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	cfg := main.DefaultConfig()
	cfg.LogLevel = "loud"

	err := cfg.Validate()

	assert.Equal(t, `invalid log_level "loud"`, docsmith.ErrorMessage(err))
}
