package session_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/docsmith"
	"github.com/fwojciec/docsmith/fs"
	"github.com/fwojciec/docsmith/mock"
	"github.com/fwojciec/docsmith/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: t0} }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newStores returns file-backed services in a temp dir sharing one clock.
func newStores(t *testing.T, c *clock) (*fs.WorkflowService, *fs.ContextService, *fs.SessionLog) {
	t.Helper()
	layout := fs.NewLayout(t.TempDir())
	opts := fs.Options{Now: c.Now, Logger: discardLogger()}
	workflows := fs.NewWorkflowService(layout, opts)
	workflows.Getwd = func() (string, error) { return "/work/site", nil }
	return workflows, fs.NewContextService(layout, opts), fs.NewSessionLog(layout, 0, opts)
}

func newTestDetector(workflows docsmith.WorkflowService, c *clock) *session.Detector {
	d := session.NewDetector(workflows, 30*time.Minute, discardLogger())
	d.Now = c.Now
	n := 0
	d.NewID = func(time.Time) string {
		n++
		return "s" + strings.Repeat("i", n)
	}
	return d
}

func TestNewSessionID(t *testing.T) {
	t.Parallel()

	a := session.NewSessionID(t0)
	b := session.NewSessionID(t0)

	assert.True(t, strings.HasPrefix(a, "session-1772355600000-"), a)
	assert.Len(t, a, len("session-1772355600000-")+8)
	assert.NotEqual(t, a, b)
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("starts a fresh session when none is recorded", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		workflows, _, _ := newStores(t, c)
		d := newTestDetector(workflows, c)

		got := d.Detect(context.Background())

		assert.Equal(t, docsmith.ContinuityFresh, got.State)
		assert.True(t, got.Started)
		require.NotNil(t, got.Session)
		assert.Equal(t, "si", got.Session.SessionID)
		assert.Equal(t, 0, got.Session.CommandCount)

		state, err := workflows.LoadWorkflowState(context.Background())
		require.NoError(t, err)
		require.NotNil(t, state.ActiveSession)
		assert.Equal(t, "si", state.ActiveSession.SessionID)
	})

	t.Run("second detect without commands is still fresh", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		workflows, _, _ := newStores(t, c)
		d := newTestDetector(workflows, c)

		first := d.Detect(context.Background())
		c.Advance(time.Minute)
		second := d.Detect(context.Background())

		assert.Equal(t, docsmith.ContinuityFresh, second.State)
		assert.False(t, second.Started)
		assert.Equal(t, first.Session.SessionID, second.Session.SessionID)
	})

	t.Run("reports active session after a command", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		workflows, _, _ := newStores(t, c)
		d := newTestDetector(workflows, c)

		first := d.Detect(context.Background())
		_, err := workflows.RecordTransition(context.Background(), &docsmith.Transition{
			SessionID: first.Session.SessionID,
			Command:   "build",
			Status:    docsmith.StatusStarted,
		})
		require.NoError(t, err)
		c.Advance(29 * time.Minute)

		got := d.Detect(context.Background())

		assert.Equal(t, docsmith.ContinuityActive, got.State)
		assert.False(t, got.Started)
		assert.Equal(t, first.Session.SessionID, got.Session.SessionID)
		assert.Equal(t, 1, got.Session.CommandCount)
	})

	t.Run("stale session surfaces the interrupted workflow", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		workflows, _, _ := newStores(t, c)
		d := newTestDetector(workflows, c)
		ctx := context.Background()

		first := d.Detect(ctx)
		_, err := workflows.RecordTransition(ctx, &docsmith.Transition{
			SessionID:   first.Session.SessionID,
			Command:     "build",
			Status:      docsmith.StatusStarted,
			NextActions: []string{"docsmith serve"},
		})
		require.NoError(t, err)
		c.Advance(31 * time.Minute)

		got := d.Detect(ctx)

		assert.Equal(t, docsmith.ContinuityStale, got.State)
		assert.True(t, got.Started)
		assert.Equal(t, "build", got.LastCommand)
		assert.Equal(t, docsmith.StatusStarted, got.LastStatus)
		assert.Equal(t, []string{"docsmith serve"}, got.NextActions)
		assert.Equal(t, 31*time.Minute, got.InactiveFor)
		require.NotNil(t, got.Previous)
		assert.Equal(t, first.Session.SessionID, got.Previous.SessionID)
		assert.NotEqual(t, first.Session.SessionID, got.Session.SessionID)

		state, err := workflows.LoadWorkflowState(ctx)
		require.NoError(t, err)
		require.NotNil(t, state.CurrentWorkflow)
		assert.Equal(t, "build", state.CurrentWorkflow.Type)
		assert.Equal(t, got.Session.SessionID, state.ActiveSession.SessionID)
		assert.Equal(t, c.Now(), state.ActiveSession.LastActivity)

		again := d.Detect(ctx)
		assert.Equal(t, docsmith.ContinuityFresh, again.State)
		assert.False(t, again.Started)
		assert.Equal(t, got.Session.SessionID, again.Session.SessionID)
	})

	t.Run("exactly at the threshold is not stale", func(t *testing.T) {
		t.Parallel()

		c := newClock()
		workflows, _, _ := newStores(t, c)
		d := newTestDetector(workflows, c)
		ctx := context.Background()

		first := d.Detect(ctx)
		_, err := workflows.RecordTransition(ctx, &docsmith.Transition{
			SessionID: first.Session.SessionID,
			Command:   "sync",
			Status:    docsmith.StatusCompleted,
		})
		require.NoError(t, err)
		c.Advance(30 * time.Minute)

		got := d.Detect(ctx)

		assert.Equal(t, docsmith.ContinuityActive, got.State)
	})

	t.Run("unreadable state is treated as fresh", func(t *testing.T) {
		t.Parallel()

		var started string
		workflows := &mock.WorkflowService{
			LoadWorkflowStateFn: func(context.Context) (*docsmith.WorkflowState, error) {
				return nil, docsmith.Errorf(docsmith.ECORRUPT, "bad json")
			},
			StartSessionFn: func(_ context.Context, id string) (*docsmith.ActiveSession, error) {
				started = id
				return &docsmith.ActiveSession{SessionID: id, StartTime: t0, LastActivity: t0}, nil
			},
		}
		d := newTestDetector(workflows, newClock())

		got := d.Detect(context.Background())

		assert.Equal(t, docsmith.ContinuityFresh, got.State)
		assert.Equal(t, "si", started)
	})

	t.Run("returns an in-memory session when it cannot be saved", func(t *testing.T) {
		t.Parallel()

		workflows := &mock.WorkflowService{
			LoadWorkflowStateFn: func(context.Context) (*docsmith.WorkflowState, error) {
				return &docsmith.WorkflowState{}, nil
			},
			StartSessionFn: func(context.Context, string) (*docsmith.ActiveSession, error) {
				return nil, errors.New("disk full")
			},
		}
		d := newTestDetector(workflows, newClock())

		got := d.Detect(context.Background())

		require.NotNil(t, got.Session)
		assert.Equal(t, "si", got.Session.SessionID)
		assert.Equal(t, t0, got.Session.StartTime)
	})

	t.Run("keeps the stored session when the write was degraded", func(t *testing.T) {
		t.Parallel()

		stored := &docsmith.ActiveSession{SessionID: "si", StartTime: t0.Add(-time.Second), LastActivity: t0}
		workflows := &mock.WorkflowService{
			LoadWorkflowStateFn: func(context.Context) (*docsmith.WorkflowState, error) {
				return &docsmith.WorkflowState{}, nil
			},
			StartSessionFn: func(context.Context, string) (*docsmith.ActiveSession, error) {
				return stored, docsmith.Errorf(docsmith.EDEGRADED, "written in place")
			},
		}
		d := newTestDetector(workflows, newClock())

		got := d.Detect(context.Background())

		assert.Same(t, stored, got.Session)
		assert.True(t, got.Started)
	})
}
