package fs

import (
	"context"
	"os"
	"time"

	"github.com/fwojciec/docsmith"
)

// Ensure WorkflowService implements docsmith.WorkflowService at compile time.
var _ docsmith.WorkflowService = (*WorkflowService)(nil)

// WorkflowService implements docsmith.WorkflowService on top of a JSONFile.
type WorkflowService struct {
	file *JSONFile

	// Getwd returns the directory recorded on new workflows. Defaults to os.Getwd.
	Getwd func() (string, error)

	Options
}

// NewWorkflowService returns a WorkflowService for the layout.
func NewWorkflowService(layout Layout, opts Options) *WorkflowService {
	return &WorkflowService{
		file:    NewJSONFile(layout.WorkflowPath(), layout.BackupDir(), WorkflowBackupPrefix, opts),
		Getwd:   os.Getwd,
		Options: opts,
	}
}

// LoadWorkflowState reads the workflow document.
func (s *WorkflowService) LoadWorkflowState(ctx context.Context) (*docsmith.WorkflowState, error) {
	var state docsmith.WorkflowState
	if err := s.file.Read(&state); err != nil {
		if docsmith.ErrorCode(err) == docsmith.ENOTFOUND {
			return &docsmith.WorkflowState{}, nil
		}
		return nil, err
	}
	return &state, nil
}

// RecordTransition applies t and persists the result.
func (s *WorkflowService) RecordTransition(ctx context.Context, t *docsmith.Transition) (*docsmith.WorkflowState, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	state := s.loadOrReset(ctx)
	now := s.now()

	switch t.Status {
	case docsmith.StatusStarted, docsmith.StatusInProgress:
		w := state.CurrentWorkflow
		if w == nil || w.Type != t.Command || !w.Status.Running() {
			w = s.newWorkflow(t)
			w.Context.StartTime = now
		}
		w.Status = t.Status
		w.Step = stepOf(t)
		if t.NextActions != nil {
			w.NextActions = t.NextActions
		}
		state.CurrentWorkflow = w

	case docsmith.StatusCompleted, docsmith.StatusFailed:
		w := state.CurrentWorkflow
		if w == nil || w.Type != t.Command {
			w = s.newWorkflow(t)
			w.Context.StartTime = now.Add(-t.Duration)
		}
		w.Status = t.Status
		w.Step = stepOf(t)
		if t.NextActions != nil {
			w.NextActions = t.NextActions
		}
		if t.Status == docsmith.StatusCompleted {
			done := now
			w.Context.CompletedTime = &done
			w.Error = ""
		} else {
			w.Error = t.Error
		}
		state.CurrentWorkflow = w
	}

	touchSession(state, t.SessionID, now)

	res, err := s.file.Write(state)
	if err != nil {
		return nil, err
	}
	return state, degradedError(res, s.file.Path)
}

// StartSession replaces the active session.
func (s *WorkflowService) StartSession(ctx context.Context, sessionID string) (*docsmith.ActiveSession, error) {
	if sessionID == "" {
		return nil, docsmith.Errorf(docsmith.EINVALID, "session ID required")
	}

	state := s.loadOrReset(ctx)
	now := s.now()
	state.ActiveSession = &docsmith.ActiveSession{
		SessionID:    sessionID,
		StartTime:    now,
		CommandCount: 0,
		LastActivity: now,
	}

	res, err := s.file.Write(state)
	if err != nil {
		return nil, err
	}
	return state.ActiveSession, degradedError(res, s.file.Path)
}

// ClearIfCompleted drops a completed current workflow.
func (s *WorkflowService) ClearIfCompleted(ctx context.Context) (bool, error) {
	state, err := s.LoadWorkflowState(ctx)
	if err != nil {
		return false, err
	}
	if state.CurrentWorkflow == nil || state.CurrentWorkflow.Status != docsmith.StatusCompleted {
		return false, nil
	}

	state.CurrentWorkflow = nil
	res, err := s.file.Write(state)
	if err != nil {
		return false, err
	}
	return true, degradedError(res, s.file.Path)
}

// loadOrReset returns the stored state, or an empty one when the document is
// unreadable. A corrupt document is replaced on the next write.
func (s *WorkflowService) loadOrReset(ctx context.Context) *docsmith.WorkflowState {
	state, err := s.LoadWorkflowState(ctx)
	if err != nil {
		s.logger().Warn("resetting unreadable workflow state", "err", err)
		return &docsmith.WorkflowState{}
	}
	return state
}

func (s *WorkflowService) newWorkflow(t *docsmith.Transition) *docsmith.Workflow {
	wd := t.WorkingDirectory
	if wd == "" && s.Getwd != nil {
		wd, _ = s.Getwd()
	}
	actions := t.NextActions
	if actions == nil {
		actions = []string{}
	}
	return &docsmith.Workflow{
		Type: t.Command,
		Context: docsmith.WorkflowContext{
			LastCommand:      t.Command,
			Args:             t.Args,
			WorkingDirectory: wd,
		},
		NextActions: actions,
	}
}

// touchSession refreshes the active session, replacing it when the caller
// runs under a different session ID.
func touchSession(state *docsmith.WorkflowState, sessionID string, now time.Time) {
	if state.ActiveSession == nil || state.ActiveSession.SessionID != sessionID {
		state.ActiveSession = &docsmith.ActiveSession{
			SessionID: sessionID,
			StartTime: now,
		}
	}
	state.ActiveSession.CommandCount++
	state.ActiveSession.LastActivity = now
}

func stepOf(t *docsmith.Transition) string {
	if t.Step != "" {
		return t.Step
	}
	return string(t.Status)
}
