package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

// Ensure LoggingContextService implements docsmith.ContextService.
var _ docsmith.ContextService = (*LoggingContextService)(nil)

// LoggingContextService wraps a ContextService with debug logging.
type LoggingContextService struct {
	next   docsmith.ContextService
	logger *slog.Logger
}

// NewLoggingContextService creates a new LoggingContextService.
func NewLoggingContextService(next docsmith.ContextService, logger *slog.Logger) *LoggingContextService {
	return &LoggingContextService{next: next, logger: logger}
}

func (s *LoggingContextService) InitContext(ctx context.Context, pc *docsmith.ProjectContext) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("init project context",
			"project", pc.Project.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InitContext(ctx, pc)
}

func (s *LoggingContextService) LoadContext(ctx context.Context) (pc *docsmith.ProjectContext, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load project context",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadContext(ctx)
}

func (s *LoggingContextService) SaveContext(ctx context.Context, pc *docsmith.ProjectContext) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save project context",
			"project", pc.Project.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveContext(ctx, pc)
}
