package docsmith

import (
	"context"
	"time"
)

// WorkflowState is the single current-value document stored in
// workflow-state.json.
type WorkflowState struct {
	CurrentWorkflow *Workflow      `json:"currentWorkflow"`
	ActiveSession   *ActiveSession `json:"activeSession"`
}

// Workflow is the multi-step operation currently in flight, or the last one
// that failed.
type Workflow struct {
	Type        string          `json:"type"`
	Step        string          `json:"step"`
	Status      Status          `json:"status"`
	Context     WorkflowContext `json:"context"`
	NextActions []string        `json:"nextActions"`
	Error       string          `json:"error,omitempty"`
}

// WorkflowContext describes where and when a workflow ran.
type WorkflowContext struct {
	LastCommand      string     `json:"lastCommand"`
	Args             []string   `json:"args,omitempty"`
	WorkingDirectory string     `json:"workingDirectory"`
	StartTime        time.Time  `json:"startTime"`
	CompletedTime    *time.Time `json:"completedTime,omitempty"`
}

// ActiveSession records when the current session started and was last active.
type ActiveSession struct {
	SessionID    string    `json:"sessionId"`
	StartTime    time.Time `json:"startTime"`
	CommandCount int       `json:"commandCount"`
	LastActivity time.Time `json:"lastActivity"`
}

// Transition is one command state change reported by the command layer.
// The session ID is passed explicitly on every call.
type Transition struct {
	SessionID        string
	Command          string
	Args             []string
	Status           Status
	Step             string
	WorkingDirectory string
	NextActions      []string
	Error            string
	Duration         time.Duration
}

// Validate returns an error if the transition contains invalid fields.
func (t *Transition) Validate() error {
	if t.SessionID == "" {
		return Errorf(EINVALID, "transition session ID required")
	}
	if t.Command == "" {
		return Errorf(EINVALID, "transition command required")
	}
	return t.Status.Validate()
}

// WorkflowService persists the workflow state document.
//
// The write methods return EDEGRADED together with their normal result when
// the document was saved without an atomic rename.
type WorkflowService interface {
	// LoadWorkflowState reads the current state. A missing file yields an
	// empty state; an unparsable one returns ECORRUPT.
	LoadWorkflowState(ctx context.Context) (*WorkflowState, error)

	// RecordTransition applies a transition to the current workflow and
	// refreshes the active session.
	RecordTransition(ctx context.Context, t *Transition) (*WorkflowState, error)

	// StartSession replaces the active session with a new one that has a zero
	// command count. The current workflow is preserved.
	StartSession(ctx context.Context, sessionID string) (*ActiveSession, error)

	// ClearIfCompleted drops the current workflow if it has completed and
	// reports whether it did.
	ClearIfCompleted(ctx context.Context) (bool, error)
}
