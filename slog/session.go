package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

// Compile-time interface verification.
var (
	_ docsmith.SessionLog   = (*LoggingSessionLog)(nil)
	_ docsmith.HistoryIndex = (*LoggingHistoryIndex)(nil)
)

// LoggingSessionLog wraps a SessionLog with debug logging.
type LoggingSessionLog struct {
	next   docsmith.SessionLog
	logger *slog.Logger
}

// NewLoggingSessionLog creates a new LoggingSessionLog.
func NewLoggingSessionLog(next docsmith.SessionLog, logger *slog.Logger) *LoggingSessionLog {
	return &LoggingSessionLog{next: next, logger: logger}
}

func (l *LoggingSessionLog) Append(ctx context.Context, entry *docsmith.SessionLogEntry) (err error) {
	defer func(begin time.Time) {
		l.logger.Debug("append session log",
			"command", entry.Command,
			"status", entry.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Append(ctx, entry)
}

func (l *LoggingSessionLog) ReadRecent(ctx context.Context, limit int) (entries []*docsmith.SessionLogEntry, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("read session log",
			"limit", limit,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ReadRecent(ctx, limit)
}

// LoggingHistoryIndex wraps a HistoryIndex with debug logging.
type LoggingHistoryIndex struct {
	next   docsmith.HistoryIndex
	logger *slog.Logger
}

// NewLoggingHistoryIndex creates a new LoggingHistoryIndex.
func NewLoggingHistoryIndex(next docsmith.HistoryIndex, logger *slog.Logger) *LoggingHistoryIndex {
	return &LoggingHistoryIndex{next: next, logger: logger}
}

func (h *LoggingHistoryIndex) Import(ctx context.Context, entries []*docsmith.SessionLogEntry) (err error) {
	defer func(begin time.Time) {
		h.logger.Debug("import history",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Import(ctx, entries)
}

func (h *LoggingHistoryIndex) CommandStats(ctx context.Context) (stats []*docsmith.CommandStats, err error) {
	defer func(begin time.Time) {
		h.logger.Debug("command stats",
			"commands", len(stats),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.CommandStats(ctx)
}
