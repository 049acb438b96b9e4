package main

import (
	"fmt"

	"github.com/fwojciec/docsmith"
)

// PreferenceRepository is the interaction preference holding the published
// repository URL.
const PreferenceRepository = "repository"

// Run executes the publish command.
func (c *PublishCmd) Run(deps *Dependencies) error {
	deps.progress("creating repository")
	url, err := deps.Repos.CreateRepo(deps.Ctx, c.Repo, !c.Public)
	if err != nil {
		deps.suggest("docsmith publish " + c.Repo)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}

	deps.Session.UpdateContext(deps.Ctx, func(pc *docsmith.ProjectContext) {
		pc.Normalize()
		pc.Interactions.Preferences[PreferenceRepository] = url
	})

	deps.suggest("git push -u origin HEAD")
	fmt.Fprintf(deps.Stdout, "Created repository %s\n", url)
	return nil
}
