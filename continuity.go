package docsmith

import (
	"context"
	"time"
)

// DefaultStaleAfter is the inactivity period after which a session is
// considered interrupted.
const DefaultStaleAfter = 30 * time.Minute

// ContinuityState is the result of reconciling the recorded session on startup.
type ContinuityState string

// ContinuityState constants.
const (
	ContinuityFresh  ContinuityState = "fresh"
	ContinuityActive ContinuityState = "active"
	ContinuityStale  ContinuityState = "stale"
)

// Continuity reports what the detector found and did.
type Continuity struct {
	State ContinuityState

	// Session is the session the current process should use.
	Session *ActiveSession

	// Started is true when a new session record was created.
	Started bool

	// Previous is the session that went stale, if any.
	Previous *ActiveSession

	// LastCommand and NextActions come from the workflow recorded before the
	// session went stale.
	LastCommand string
	LastStatus  Status
	LastError   string
	NextActions []string
	InactiveFor time.Duration
}

// ContinuityDetector reconciles session state at CLI startup.
type ContinuityDetector interface {
	Detect(ctx context.Context) *Continuity
}
