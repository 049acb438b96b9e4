package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

// Ensure LoggingWorkflowService implements docsmith.WorkflowService.
var _ docsmith.WorkflowService = (*LoggingWorkflowService)(nil)

// LoggingWorkflowService wraps a WorkflowService with debug logging.
type LoggingWorkflowService struct {
	next   docsmith.WorkflowService
	logger *slog.Logger
}

// NewLoggingWorkflowService creates a new LoggingWorkflowService.
func NewLoggingWorkflowService(next docsmith.WorkflowService, logger *slog.Logger) *LoggingWorkflowService {
	return &LoggingWorkflowService{next: next, logger: logger}
}

func (s *LoggingWorkflowService) LoadWorkflowState(ctx context.Context) (state *docsmith.WorkflowState, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load workflow state",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadWorkflowState(ctx)
}

// RecordTransition delegates to the wrapped service and logs the transition.
func (s *LoggingWorkflowService) RecordTransition(ctx context.Context, t *docsmith.Transition) (state *docsmith.WorkflowState, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record transition",
			"session", t.SessionID,
			"command", t.Command,
			"status", t.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RecordTransition(ctx, t)
}

func (s *LoggingWorkflowService) StartSession(ctx context.Context, sessionID string) (session *docsmith.ActiveSession, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("start session",
			"session", sessionID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StartSession(ctx, sessionID)
}

func (s *LoggingWorkflowService) ClearIfCompleted(ctx context.Context) (cleared bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("clear completed workflow",
			"cleared", cleared,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ClearIfCompleted(ctx)
}
