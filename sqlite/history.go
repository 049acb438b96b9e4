package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docsmith"
)

// Compile-time interface verification.
var _ docsmith.HistoryIndex = (*HistoryIndex)(nil)

// HistoryIndex implements docsmith.HistoryIndex using SQLite.
//
// The JSONL session log stays the source of truth; the index is rebuilt from
// it whenever aggregate questions need answering.
type HistoryIndex struct {
	db *DB
}

// NewHistoryIndex creates a new HistoryIndex.
func NewHistoryIndex(db *DB) *HistoryIndex {
	return &HistoryIndex{db: db}
}

// Import replaces the indexed events with entries.
func (h *HistoryIndex) Import(ctx context.Context, entries []*docsmith.SessionLogEntry) (err error) {
	tx, err := h.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_events`); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_events (session_id, command, args, status, duration_ms, error, timestamp_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		var duration sql.NullInt64
		if e.Duration != nil {
			duration = sql.NullInt64{Int64: *e.Duration, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			e.SessionID, e.Command, strings.Join(e.Args, " "), string(e.Status),
			duration, e.Error, e.Timestamp.UnixMilli(),
		); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	return tx.Commit()
}

// CommandStats returns per-command aggregates, most frequently run first.
// A run is counted per started event; durations are averaged over finished
// runs that recorded one.
func (h *HistoryIndex) CommandStats(ctx context.Context) ([]*docsmith.CommandStats, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT
			command,
			SUM(CASE WHEN status = 'started' THEN 1 ELSE 0 END) AS runs,
			SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END) AS failures,
			COALESCE(AVG(duration_ms), 0) AS avg_duration_ms,
			MAX(timestamp_ms) AS last_run_ms
		FROM session_events
		GROUP BY command
		ORDER BY runs DESC, command ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*docsmith.CommandStats, 0)
	for rows.Next() {
		var s docsmith.CommandStats
		var avgMillis float64
		var lastRunMillis int64
		if err := rows.Scan(&s.Command, &s.Runs, &s.Failures, &avgMillis, &lastRunMillis); err != nil {
			return nil, err
		}
		s.AvgDuration = time.Duration(avgMillis * float64(time.Millisecond))
		s.LastRun = time.UnixMilli(lastRunMillis).UTC()
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
