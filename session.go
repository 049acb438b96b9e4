package docsmith

import (
	"context"
	"time"
)

// SessionLogEntry is one immutable line of session-history.jsonl.
type SessionLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"sessionId"`
	Command   string    `json:"command"`
	Args      []string  `json:"args"`
	Status    Status    `json:"status"`
	Duration  *int64    `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *SessionLogEntry) Validate() error {
	if e.SessionID == "" {
		return Errorf(EINVALID, "log entry session ID required")
	}
	if e.Command == "" {
		return Errorf(EINVALID, "log entry command required")
	}
	return e.Status.Validate()
}

// DurationMillis converts d to the log's millisecond representation.
func DurationMillis(d time.Duration) *int64 {
	ms := d.Milliseconds()
	return &ms
}

// SessionLog is the append-only command history.
type SessionLog interface {
	// Append writes entry as a single line at the end of the log.
	Append(ctx context.Context, entry *SessionLogEntry) error

	// ReadRecent returns the last limit entries in file order. A limit of
	// zero or less returns every entry. A torn trailing line is discarded.
	ReadRecent(ctx context.Context, limit int) ([]*SessionLogEntry, error)
}

// CommandStats aggregates session log entries for one command.
type CommandStats struct {
	Command     string
	Runs        int
	Failures    int
	AvgDuration time.Duration
	LastRun     time.Time
}

// HistoryIndex answers aggregate questions about the session log.
type HistoryIndex interface {
	// Import loads entries into the index.
	Import(ctx context.Context, entries []*SessionLogEntry) error

	// CommandStats returns per-command aggregates ordered by run count.
	CommandStats(ctx context.Context) ([]*CommandStats, error)
}
