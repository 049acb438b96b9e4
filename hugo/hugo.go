// Package hugo delegates site generation to the hugo binary and reads the
// sitemap it produces.
package hugo

import (
	"context"

	"github.com/fwojciec/docsmith"
)

// DefaultBin is the generator executable looked up on PATH.
const DefaultBin = "hugo"

// Ensure Site implements docsmith.SiteGenerator at compile time.
var _ docsmith.SiteGenerator = (*Site)(nil)

// Site implements docsmith.SiteGenerator by shelling out to hugo.
type Site struct {
	Bin       string
	Dir       string
	PublicDir string

	// Theme is passed to hugo when set.
	Theme string

	Runner docsmith.Runner
}

// NewSite returns a Site for the project in dir.
func NewSite(runner docsmith.Runner, dir string) *Site {
	return &Site{
		Bin:       DefaultBin,
		Dir:       dir,
		PublicDir: "public",
		Runner:    runner,
	}
}

// NewSite scaffolds a site skeleton in the project directory. The directory
// already holds docsmith state, so hugo is told to proceed anyway.
func (s *Site) NewSite(ctx context.Context) error {
	return s.Runner.Run(ctx, s.Dir, s.Bin, "new", "site", ".", "--force")
}

// Build renders the site into the public directory.
func (s *Site) Build(ctx context.Context, args []string) error {
	argv := []string{"--destination", s.PublicDir}
	argv = append(argv, s.themeArgs()...)
	return s.Runner.Run(ctx, s.Dir, s.Bin, append(argv, args...)...)
}

// Serve runs the preview server until ctx is cancelled.
func (s *Site) Serve(ctx context.Context, args []string) error {
	argv := append([]string{"server"}, s.themeArgs()...)
	return s.Runner.Run(ctx, s.Dir, s.Bin, append(argv, args...)...)
}

func (s *Site) themeArgs() []string {
	if s.Theme == "" {
		return nil
	}
	return []string{"--theme", s.Theme}
}
