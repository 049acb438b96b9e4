// Package fs provides file-based storage for docsmith state.
//
// All documents live under a single state directory:
//
//	<state-dir>/context.json
//	<state-dir>/workflow-state.json
//	<state-dir>/session-history.jsonl
//	<state-dir>/backups/
//
// The store assumes one CLI process at a time. Concurrent invocations
// against the same directory are not locked against each other; the last
// full-document write wins.
package fs

import (
	"log/slog"
	"path/filepath"
	"time"
)

// File names inside the state directory.
const (
	ContextFile  = "context.json"
	WorkflowFile = "workflow-state.json"
	LogFile      = "session-history.jsonl"
	BackupDir    = "backups"
)

// Backup name prefixes. Backups are named <prefix><epoch-ms><ext>.
const (
	ContextBackupPrefix  = "context-backup-"
	WorkflowBackupPrefix = "workflow-backup-"
	SessionBackupPrefix  = "session-backup-"
)

// DefaultBackupKeep is the number of backups retained per prefix.
const DefaultBackupKeep = 10

// Layout resolves paths inside a state directory.
type Layout struct {
	Dir string
}

// NewLayout returns a Layout rooted at dir.
func NewLayout(dir string) Layout {
	return Layout{Dir: dir}
}

func (l Layout) ContextPath() string  { return filepath.Join(l.Dir, ContextFile) }
func (l Layout) WorkflowPath() string { return filepath.Join(l.Dir, WorkflowFile) }
func (l Layout) LogPath() string      { return filepath.Join(l.Dir, LogFile) }
func (l Layout) BackupDir() string    { return filepath.Join(l.Dir, BackupDir) }

// Options configures the services of this package.
type Options struct {
	// Keep is the number of backups retained per prefix. Zero means DefaultBackupKeep.
	Keep int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Rename moves a completed temp file onto its target. Defaults to os.Rename.
	Rename func(oldpath, newpath string) error
}

func (o Options) keep() int {
	if o.Keep <= 0 {
		return DefaultBackupKeep
	}
	return o.Keep
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now().UTC()
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
