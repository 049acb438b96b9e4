package mock

import (
	"context"

	"github.com/fwojciec/docsmith"
)

// Compile-time interface verification.
var (
	_ docsmith.SessionLog         = (*SessionLog)(nil)
	_ docsmith.HistoryIndex       = (*HistoryIndex)(nil)
	_ docsmith.ContinuityDetector = (*ContinuityDetector)(nil)
)

// SessionLog is a mock implementation of docsmith.SessionLog.
type SessionLog struct {
	AppendFn     func(ctx context.Context, entry *docsmith.SessionLogEntry) error
	ReadRecentFn func(ctx context.Context, limit int) ([]*docsmith.SessionLogEntry, error)
}

func (l *SessionLog) Append(ctx context.Context, entry *docsmith.SessionLogEntry) error {
	return l.AppendFn(ctx, entry)
}

func (l *SessionLog) ReadRecent(ctx context.Context, limit int) ([]*docsmith.SessionLogEntry, error) {
	return l.ReadRecentFn(ctx, limit)
}

// HistoryIndex is a mock implementation of docsmith.HistoryIndex.
type HistoryIndex struct {
	ImportFn       func(ctx context.Context, entries []*docsmith.SessionLogEntry) error
	CommandStatsFn func(ctx context.Context) ([]*docsmith.CommandStats, error)
}

func (h *HistoryIndex) Import(ctx context.Context, entries []*docsmith.SessionLogEntry) error {
	return h.ImportFn(ctx, entries)
}

func (h *HistoryIndex) CommandStats(ctx context.Context) ([]*docsmith.CommandStats, error) {
	return h.CommandStatsFn(ctx)
}

// ContinuityDetector is a mock implementation of docsmith.ContinuityDetector.
type ContinuityDetector struct {
	DetectFn func(ctx context.Context) *docsmith.Continuity
}

func (d *ContinuityDetector) Detect(ctx context.Context) *docsmith.Continuity {
	return d.DetectFn(ctx)
}
