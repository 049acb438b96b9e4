// Package session reconciles the persisted session on startup and records
// command lifecycle events on a best-effort basis.
//
// The stores in the fs package report every failure. This package is where
// those failures stop: tracking problems are logged as warnings and never
// reach the user's command.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
	"github.com/google/uuid"
)

// NewSessionID returns a session identifier for a session started at t.
// The identifier sorts by start time.
func NewSessionID(t time.Time) string {
	return fmt.Sprintf("session-%d-%s", t.UnixMilli(), uuid.NewString()[:8])
}

// degraded reports whether err only signals a write that was saved without
// the atomic rename.
func degraded(err error) bool {
	return docsmith.ErrorCode(err) == docsmith.EDEGRADED
}

// warnWrite logs a failed or degraded store write. Degraded writes were
// persisted, so they get their own message.
func warnWrite(logger *slog.Logger, msg string, err error, args ...any) {
	if degraded(err) {
		msg = "state saved without atomic rename"
	}
	logger.Warn(msg, append(args, "err", err)...)
}
