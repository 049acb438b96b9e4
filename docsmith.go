// Package docsmith provides a CLI for scaffolding and managing static
// documentation sites. It records project state, command history and
// in-flight workflow status across invocations, and offers recovery when a
// session was interrupted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, hugo/).
package docsmith

// Status is the lifecycle state of a command transition.
type Status string

// Status constants shared by the session log and the workflow record.
const (
	StatusStarted    Status = "started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Validate returns an error if the status is not one of the known values.
func (s Status) Validate() error {
	switch s {
	case StatusStarted, StatusInProgress, StatusCompleted, StatusFailed:
		return nil
	}
	return Errorf(EINVALID, "unknown status %q", string(s))
}

// Running reports whether the status marks an in-flight workflow.
func (s Status) Running() bool {
	return s == StatusStarted || s == StatusInProgress
}
