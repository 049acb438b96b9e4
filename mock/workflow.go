package mock

import (
	"context"

	"github.com/fwojciec/docsmith"
)

var _ docsmith.WorkflowService = (*WorkflowService)(nil)

// WorkflowService is a mock implementation of docsmith.WorkflowService.
type WorkflowService struct {
	LoadWorkflowStateFn func(ctx context.Context) (*docsmith.WorkflowState, error)
	RecordTransitionFn  func(ctx context.Context, t *docsmith.Transition) (*docsmith.WorkflowState, error)
	StartSessionFn      func(ctx context.Context, sessionID string) (*docsmith.ActiveSession, error)
	ClearIfCompletedFn  func(ctx context.Context) (bool, error)
}

func (s *WorkflowService) LoadWorkflowState(ctx context.Context) (*docsmith.WorkflowState, error) {
	return s.LoadWorkflowStateFn(ctx)
}

func (s *WorkflowService) RecordTransition(ctx context.Context, t *docsmith.Transition) (*docsmith.WorkflowState, error) {
	return s.RecordTransitionFn(ctx, t)
}

func (s *WorkflowService) StartSession(ctx context.Context, sessionID string) (*docsmith.ActiveSession, error) {
	return s.StartSessionFn(ctx, sessionID)
}

func (s *WorkflowService) ClearIfCompleted(ctx context.Context) (bool, error) {
	return s.ClearIfCompletedFn(ctx)
}
