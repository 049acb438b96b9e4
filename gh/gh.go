// Package gh delegates remote repository creation to the GitHub CLI.
package gh

import (
	"context"

	"github.com/fwojciec/docsmith"
)

// DefaultBin is the GitHub CLI executable looked up on PATH.
const DefaultBin = "gh"

// Ensure Repo implements docsmith.RepoHost at compile time.
var _ docsmith.RepoHost = (*Repo)(nil)

// Repo implements docsmith.RepoHost by shelling out to gh.
type Repo struct {
	Bin    string
	Dir    string
	Runner docsmith.Runner
}

// NewRepo returns a Repo for the project in dir.
func NewRepo(runner docsmith.Runner, dir string) *Repo {
	return &Repo{Bin: DefaultBin, Dir: dir, Runner: runner}
}

// CreateRepo creates a remote repository from the project directory and
// returns the URL gh reports.
func (r *Repo) CreateRepo(ctx context.Context, name string, private bool) (string, error) {
	if name == "" {
		return "", docsmith.Errorf(docsmith.EINVALID, "repository name required")
	}
	visibility := "--public"
	if private {
		visibility = "--private"
	}
	url, err := r.Runner.Output(ctx, r.Dir, r.Bin, "repo", "create", name, visibility, "--source", ".", "--remote", "origin")
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", docsmith.Errorf(docsmith.EINTERNAL, "%s did not report a repository URL", r.Bin)
	}
	return url, nil
}
