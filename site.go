package docsmith

import (
	"context"
	"time"
)

// SiteGenerator wraps the external static-site generator binary.
type SiteGenerator interface {
	// NewSite scaffolds a site skeleton in the project directory.
	NewSite(ctx context.Context) error

	// Build renders the site into the public directory.
	Build(ctx context.Context, args []string) error

	// Serve runs the preview server until ctx is cancelled or it exits.
	Serve(ctx context.Context, args []string) error
}

// PageLister lists the pages of a built site.
type PageLister interface {
	ListPages(ctx context.Context) ([]string, error)
}

// RepoHost wraps the external Git hosting CLI.
type RepoHost interface {
	// CreateRepo creates a remote repository for the project and returns its URL.
	CreateRepo(ctx context.Context, name string, private bool) (string, error)
}

// ContentFile is a source file found under the content directory.
type ContentFile struct {
	Path     string
	Checksum string
	ModTime  time.Time
}

// ContentScanner walks the content directory.
type ContentScanner interface {
	Scan(ctx context.Context) ([]*ContentFile, error)
}

// Runner executes external programs in dir.
type Runner interface {
	// Run executes the program, streaming its output to the user.
	Run(ctx context.Context, dir, name string, args ...string) error

	// Output executes the program and returns its trimmed standard output.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}
