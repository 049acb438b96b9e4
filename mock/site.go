package mock

import (
	"context"

	"github.com/fwojciec/docsmith"
)

// Compile-time interface verification.
var (
	_ docsmith.SiteGenerator  = (*SiteGenerator)(nil)
	_ docsmith.PageLister     = (*PageLister)(nil)
	_ docsmith.RepoHost       = (*RepoHost)(nil)
	_ docsmith.ContentScanner = (*ContentScanner)(nil)
	_ docsmith.Runner         = (*Runner)(nil)
)

// SiteGenerator is a mock implementation of docsmith.SiteGenerator.
type SiteGenerator struct {
	NewSiteFn func(ctx context.Context) error
	BuildFn   func(ctx context.Context, args []string) error
	ServeFn   func(ctx context.Context, args []string) error
}

func (g *SiteGenerator) NewSite(ctx context.Context) error {
	return g.NewSiteFn(ctx)
}

func (g *SiteGenerator) Build(ctx context.Context, args []string) error {
	return g.BuildFn(ctx, args)
}

func (g *SiteGenerator) Serve(ctx context.Context, args []string) error {
	return g.ServeFn(ctx, args)
}

// PageLister is a mock implementation of docsmith.PageLister.
type PageLister struct {
	ListPagesFn func(ctx context.Context) ([]string, error)
}

func (l *PageLister) ListPages(ctx context.Context) ([]string, error) {
	return l.ListPagesFn(ctx)
}

// RepoHost is a mock implementation of docsmith.RepoHost.
type RepoHost struct {
	CreateRepoFn func(ctx context.Context, name string, private bool) (string, error)
}

func (h *RepoHost) CreateRepo(ctx context.Context, name string, private bool) (string, error) {
	return h.CreateRepoFn(ctx, name, private)
}

// ContentScanner is a mock implementation of docsmith.ContentScanner.
type ContentScanner struct {
	ScanFn func(ctx context.Context) ([]*docsmith.ContentFile, error)
}

func (s *ContentScanner) Scan(ctx context.Context) ([]*docsmith.ContentFile, error) {
	return s.ScanFn(ctx)
}

// Runner is a mock implementation of docsmith.Runner.
type Runner struct {
	RunFn    func(ctx context.Context, dir, name string, args ...string) error
	OutputFn func(ctx context.Context, dir, name string, args ...string) (string, error)
}

func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	return r.RunFn(ctx, dir, name, args...)
}

func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	return r.OutputFn(ctx, dir, name, args...)
}
