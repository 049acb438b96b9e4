package main

import (
	"fmt"

	"github.com/fwojciec/docsmith"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	pc := &docsmith.ProjectContext{
		Project: docsmith.ProjectInfo{Name: c.Name, Type: c.Type},
	}
	if err := deps.Session.InitProject(deps.Ctx, pc); err != nil {
		if docsmith.ErrorCode(err) == docsmith.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: a project already exists in %s\n", deps.Dir)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		}
		return err
	}

	if !c.NoScaffold {
		deps.progress("scaffolding")
		if err := deps.Site.NewSite(deps.Ctx); err != nil {
			deps.suggest("docsmith build")
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
			return err
		}
	}

	deps.suggest("docsmith theme <id>", "docsmith sync", "docsmith build")
	fmt.Fprintf(deps.Stdout, "Initialized project %q in %s\n", c.Name, deps.Dir)
	return nil
}
