package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsmith"
)

// Compile-time interface verification.
var (
	_ docsmith.SiteGenerator = (*LoggingSiteGenerator)(nil)
	_ docsmith.RepoHost      = (*LoggingRepoHost)(nil)
)

// LoggingSiteGenerator wraps a SiteGenerator with debug logging.
type LoggingSiteGenerator struct {
	next   docsmith.SiteGenerator
	logger *slog.Logger
}

// NewLoggingSiteGenerator creates a new LoggingSiteGenerator.
func NewLoggingSiteGenerator(next docsmith.SiteGenerator, logger *slog.Logger) *LoggingSiteGenerator {
	return &LoggingSiteGenerator{next: next, logger: logger}
}

func (g *LoggingSiteGenerator) NewSite(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		g.logger.Debug("new site", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return g.next.NewSite(ctx)
}

func (g *LoggingSiteGenerator) Build(ctx context.Context, args []string) (err error) {
	defer func(begin time.Time) {
		g.logger.Debug("build site", "args", args, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return g.next.Build(ctx, args)
}

func (g *LoggingSiteGenerator) Serve(ctx context.Context, args []string) (err error) {
	defer func(begin time.Time) {
		g.logger.Debug("serve site", "args", args, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return g.next.Serve(ctx, args)
}

// LoggingRepoHost wraps a RepoHost with debug logging.
type LoggingRepoHost struct {
	next   docsmith.RepoHost
	logger *slog.Logger
}

// NewLoggingRepoHost creates a new LoggingRepoHost.
func NewLoggingRepoHost(next docsmith.RepoHost, logger *slog.Logger) *LoggingRepoHost {
	return &LoggingRepoHost{next: next, logger: logger}
}

func (h *LoggingRepoHost) CreateRepo(ctx context.Context, name string, private bool) (url string, err error) {
	defer func(begin time.Time) {
		h.logger.Debug("create repo",
			"name", name,
			"private", private,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.CreateRepo(ctx, name, private)
}
