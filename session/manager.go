package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

// Manager ties the workflow tracker, session log and project context together
// for the command layer. Apart from InitProject, none of its methods report
// errors: persistence failures are logged and the command carries on.
type Manager struct {
	Workflows docsmith.WorkflowService
	Contexts  docsmith.ContextService
	Log       docsmith.SessionLog
	Detector  docsmith.ContinuityDetector

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// NewManager returns a Manager wired to the given stores.
func NewManager(
	workflows docsmith.WorkflowService,
	contexts docsmith.ContextService,
	log docsmith.SessionLog,
	detector docsmith.ContinuityDetector,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		Workflows: workflows,
		Contexts:  contexts,
		Log:       log,
		Detector:  detector,
		Logger:    logger,
	}
}

// Reconcile runs once at startup. It detects session continuity, then drops
// a workflow left completed by the previous invocation. A new session bumps
// the project's session counter.
func (m *Manager) Reconcile(ctx context.Context) *docsmith.Continuity {
	c := m.Detector.Detect(ctx)

	if _, err := m.Workflows.ClearIfCompleted(ctx); err != nil {
		warnWrite(m.logger(), "cannot clear completed workflow", err)
	}

	if c.Started {
		m.UpdateContext(ctx, func(pc *docsmith.ProjectContext) {
			pc.Interactions.TotalSessions++
		})
	}
	return c
}

// Begin records the start of a tracked command and returns its handle. The
// command is counted in the project document when it completes or fails, so
// a command that creates or repairs the project is counted in the result.
func (m *Manager) Begin(ctx context.Context, sessionID, name string, args []string) *Command {
	cmd := &Command{
		SessionID: sessionID,
		Name:      name,
		Args:      args,
		m:         m,
		start:     m.now(),
		prev:      m.previousCommand(ctx, sessionID),
	}
	cmd.record(ctx, docsmith.StatusStarted, "", "")
	return cmd
}

// previousCommand returns the last logged command of the session, if any.
func (m *Manager) previousCommand(ctx context.Context, sessionID string) string {
	entries, err := m.Log.ReadRecent(ctx, 1)
	if err != nil {
		m.logger().Warn("cannot read session log", "err", err)
		return ""
	}
	if len(entries) == 0 || entries[0].SessionID != sessionID {
		return ""
	}
	return entries[0].Command
}

// LoadContext returns the project document, or the default document when no
// project exists or it cannot be read.
func (m *Manager) LoadContext(ctx context.Context) *docsmith.ProjectContext {
	pc, err := m.Contexts.LoadContext(ctx)
	if err != nil {
		if docsmith.ErrorCode(err) != docsmith.ENOTFOUND {
			m.logger().Warn("cannot read project context, using defaults", "err", err)
		}
		return docsmith.NewProjectContext()
	}
	return pc
}

// UpdateContext applies fn to the stored project document and saves it.
// Nothing happens when no project exists. It reports whether the update was
// persisted.
func (m *Manager) UpdateContext(ctx context.Context, fn func(pc *docsmith.ProjectContext)) bool {
	pc, err := m.Contexts.LoadContext(ctx)
	if err != nil {
		if docsmith.ErrorCode(err) != docsmith.ENOTFOUND {
			m.logger().Warn("cannot read project context, skipping update", "err", err)
		}
		return false
	}
	fn(pc)
	if err := m.Contexts.SaveContext(ctx, pc); err != nil {
		warnWrite(m.logger(), "cannot save project context", err)
		return degraded(err)
	}
	return true
}

// InitProject creates the project document. Unlike the other methods its
// errors are returned, because a project that was not created is a failure
// the user has to see. A degraded write did create the project and is only
// logged.
func (m *Manager) InitProject(ctx context.Context, pc *docsmith.ProjectContext) error {
	if err := m.Contexts.InitContext(ctx, pc); err != nil {
		if !degraded(err) {
			return err
		}
		warnWrite(m.logger(), "", err, "project", pc.Project.Name)
	}
	return nil
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

func (m *Manager) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// Command is the lifecycle handle of one tracked command invocation.
type Command struct {
	SessionID string
	Name      string
	Args      []string

	// NextActions are suggestions stored with the next transition, shown to
	// the user if the session is later resumed.
	NextActions []string

	m     *Manager
	start time.Time
	prev  string
}

// Progress records an intermediate step.
func (c *Command) Progress(ctx context.Context, step string) {
	c.record(ctx, docsmith.StatusInProgress, step, "")
}

// Complete records successful completion.
func (c *Command) Complete(ctx context.Context) {
	c.record(ctx, docsmith.StatusCompleted, "", "")
	c.count(ctx)
}

// Fail records that the command failed with err.
func (c *Command) Fail(ctx context.Context, err error) {
	msg := ""
	if err != nil {
		msg = docsmith.ErrorMessage(err)
	}
	c.record(ctx, docsmith.StatusFailed, "", msg)
	c.count(ctx)
}

// count adds the command to the project's interaction counters.
func (c *Command) count(ctx context.Context) {
	c.m.UpdateContext(ctx, func(pc *docsmith.ProjectContext) {
		pc.RecordCommand(c.prev, c.Name)
	})
}

// Finish calls Complete when err is nil and Fail otherwise.
func (c *Command) Finish(ctx context.Context, err error) {
	if err != nil {
		c.Fail(ctx, err)
		return
	}
	c.Complete(ctx)
}

func (c *Command) record(ctx context.Context, status docsmith.Status, step, errMsg string) {
	now := c.m.now()

	var elapsed time.Duration
	if status == docsmith.StatusCompleted || status == docsmith.StatusFailed {
		elapsed = now.Sub(c.start)
	}

	t := &docsmith.Transition{
		SessionID:   c.SessionID,
		Command:     c.Name,
		Args:        c.Args,
		Status:      status,
		Step:        step,
		NextActions: c.NextActions,
		Error:       errMsg,
		Duration:    elapsed,
	}
	if _, err := c.m.Workflows.RecordTransition(ctx, t); err != nil {
		warnWrite(c.m.logger(), "cannot record workflow transition", err, "command", c.Name, "status", status)
	}

	entry := &docsmith.SessionLogEntry{
		Timestamp: now,
		SessionID: c.SessionID,
		Command:   c.Name,
		Args:      c.Args,
		Status:    status,
		Error:     errMsg,
	}
	if status == docsmith.StatusCompleted || status == docsmith.StatusFailed {
		entry.Duration = docsmith.DurationMillis(elapsed)
	}
	if err := c.m.Log.Append(ctx, entry); err != nil {
		c.m.logger().Warn("cannot append to session log", "command", c.Name, "status", status, "err", err)
	}
}
