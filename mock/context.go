package mock

import (
	"context"

	"github.com/fwojciec/docsmith"
)

var _ docsmith.ContextService = (*ContextService)(nil)

// ContextService is a mock implementation of docsmith.ContextService.
type ContextService struct {
	InitContextFn func(ctx context.Context, pc *docsmith.ProjectContext) error
	LoadContextFn func(ctx context.Context) (*docsmith.ProjectContext, error)
	SaveContextFn func(ctx context.Context, pc *docsmith.ProjectContext) error
}

func (s *ContextService) InitContext(ctx context.Context, pc *docsmith.ProjectContext) error {
	return s.InitContextFn(ctx, pc)
}

func (s *ContextService) LoadContext(ctx context.Context) (*docsmith.ProjectContext, error) {
	return s.LoadContextFn(ctx)
}

func (s *ContextService) SaveContext(ctx context.Context, pc *docsmith.ProjectContext) error {
	return s.SaveContextFn(ctx, pc)
}
