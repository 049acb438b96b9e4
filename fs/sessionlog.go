package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsmith"
)

// Ensure SessionLog implements docsmith.SessionLog at compile time.
var _ docsmith.SessionLog = (*SessionLog)(nil)

// SessionLog implements docsmith.SessionLog as a line-delimited JSON file.
// Each entry is written with a single O_APPEND write, so a crash can only
// damage the final line.
type SessionLog struct {
	Path      string
	BackupDir string

	// MaxBytes rotates the log into BackupDir once it reaches this size.
	// Zero disables rotation.
	MaxBytes int64

	Options
}

// NewSessionLog returns a SessionLog for the layout.
func NewSessionLog(layout Layout, maxBytes int64, opts Options) *SessionLog {
	return &SessionLog{
		Path:      layout.LogPath(),
		BackupDir: layout.BackupDir(),
		MaxBytes:  maxBytes,
		Options:   opts,
	}
}

// Append writes entry as one line at the end of the log.
func (l *SessionLog) Append(ctx context.Context, entry *docsmith.SessionLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}
	if entry.Args == nil {
		entry.Args = []string{}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return err
	}
	if err := l.rotate(); err != nil {
		l.logger().Warn("session log rotation failed", "path", l.Path, "err", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 0, len(line)+2)
	torn, err := endsWithoutNewline(f)
	if err != nil {
		return err
	}
	if torn {
		// Terminate the torn line so it cannot swallow this entry.
		buf = append(buf, '\n')
	}
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return f.Sync()
}

// ReadRecent returns the last limit entries in file order.
func (l *SessionLog) ReadRecent(ctx context.Context, limit int) ([]*docsmith.SessionLogEntry, error) {
	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return []*docsmith.SessionLogEntry{}, nil
	} else if err != nil {
		return nil, err
	}

	lines := bytes.Split(data, []byte{'\n'})
	last := len(lines) - 1
	for last >= 0 && len(bytes.TrimSpace(lines[last])) == 0 {
		last--
	}

	entries := make([]*docsmith.SessionLogEntry, 0, last+1)
	for i := 0; i <= last; i++ {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}
		var e docsmith.SessionLogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			if i == last {
				l.logger().Warn("discarding torn trailing session log line", "path", l.Path)
			} else {
				l.logger().Warn("skipping malformed session log line", "path", l.Path, "line", i+1)
			}
			continue
		}
		entries = append(entries, &e)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// rotate moves a log that reached MaxBytes into the backup directory.
func (l *SessionLog) rotate() error {
	if l.MaxBytes <= 0 || l.BackupDir == "" {
		return nil
	}
	info, err := os.Stat(l.Path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if info.Size() < l.MaxBytes {
		return nil
	}

	if err := os.MkdirAll(l.BackupDir, 0755); err != nil {
		return err
	}
	path := nextBackupPath(l.BackupDir, SessionBackupPrefix, filepath.Ext(l.Path), l.now())
	if err := os.Rename(l.Path, path); err != nil {
		return err
	}
	_, err = PruneBackups(l.BackupDir, SessionBackupPrefix, l.keep(), filepath.Base(path))
	return err
}

func endsWithoutNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, info.Size()-1); err != nil && err != io.EOF {
		return false, err
	}
	return b[0] != '\n', nil
}
