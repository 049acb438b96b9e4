package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

var _ docsmith.ContinuityDetector = (*Detector)(nil)

// Detector decides whether the recorded session is fresh, active or stale.
type Detector struct {
	Workflows docsmith.WorkflowService

	// StaleAfter is the inactivity threshold. Defaults to
	// docsmith.DefaultStaleAfter.
	StaleAfter time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// NewID generates identifiers for new sessions. Defaults to NewSessionID.
	NewID func(time.Time) string

	Logger *slog.Logger
}

// NewDetector returns a Detector backed by workflows.
func NewDetector(workflows docsmith.WorkflowService, staleAfter time.Duration, logger *slog.Logger) *Detector {
	return &Detector{
		Workflows:  workflows,
		StaleAfter: staleAfter,
		Logger:     logger,
	}
}

// Detect reconciles the active session. It never fails: unreadable state is
// treated as no state and a new session is started.
//
// A session whose last activity is older than StaleAfter is reported as
// stale along with the workflow it left behind, and a new session replaces
// it. The workflow and project context are left untouched so the user can
// resume. A session that has not yet recorded any command is fresh.
func (d *Detector) Detect(ctx context.Context) *docsmith.Continuity {
	now := d.now()

	state, err := d.Workflows.LoadWorkflowState(ctx)
	if err != nil {
		d.logger().Warn("cannot read workflow state, starting a new session", "err", err)
		state = &docsmith.WorkflowState{}
	}

	current := state.ActiveSession
	if current == nil {
		return d.start(ctx, &docsmith.Continuity{State: docsmith.ContinuityFresh}, now)
	}

	inactive := now.Sub(current.LastActivity)
	if inactive > d.staleAfter() {
		c := &docsmith.Continuity{
			State:       docsmith.ContinuityStale,
			Previous:    current,
			InactiveFor: inactive,
		}
		if w := state.CurrentWorkflow; w != nil {
			c.LastCommand = w.Context.LastCommand
			c.LastStatus = w.Status
			c.LastError = w.Error
			c.NextActions = w.NextActions
		}
		return d.start(ctx, c, now)
	}

	if current.CommandCount == 0 {
		return &docsmith.Continuity{State: docsmith.ContinuityFresh, Session: current}
	}
	return &docsmith.Continuity{State: docsmith.ContinuityActive, Session: current}
}

// start persists a new session and attaches it to c. When the session cannot
// be persisted the in-memory session is still returned so that the caller
// has an identifier to log with.
func (d *Detector) start(ctx context.Context, c *docsmith.Continuity, now time.Time) *docsmith.Continuity {
	id := d.newID(now)
	s, err := d.Workflows.StartSession(ctx, id)
	if err != nil {
		warnWrite(d.logger(), "cannot record new session", err, "session", id)
	}
	if s == nil {
		s = &docsmith.ActiveSession{SessionID: id, StartTime: now, LastActivity: now}
	}
	c.Session = s
	c.Started = true
	return c
}

func (d *Detector) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

func (d *Detector) staleAfter() time.Duration {
	if d.StaleAfter <= 0 {
		return docsmith.DefaultStaleAfter
	}
	return d.StaleAfter
}

func (d *Detector) newID(t time.Time) string {
	if d.NewID == nil {
		return NewSessionID(t)
	}
	return d.NewID(t)
}

func (d *Detector) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
