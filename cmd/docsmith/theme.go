package main

import (
	"fmt"

	"github.com/fwojciec/docsmith"
)

// Run executes the theme command.
func (c *ThemeCmd) Run(deps *Dependencies) error {
	pc, err := loadProject(deps)
	if err != nil {
		return err
	}

	theme := c.ID
	pc.Architecture.Theme = &theme
	if err := saveProject(deps, pc); err != nil {
		return err
	}

	deps.suggest("docsmith build", "docsmith serve")
	fmt.Fprintf(deps.Stdout, "Theme set to %s\n", c.ID)
	return nil
}

// loadProject reads the project document for commands that cannot run
// without one, printing a hint when it is missing.
func loadProject(deps *Dependencies) (*docsmith.ProjectContext, error) {
	pc, err := deps.Contexts.LoadContext(deps.Ctx)
	if err != nil {
		if docsmith.ErrorCode(err) == docsmith.ENOTFOUND {
			deps.suggest("docsmith init <name>")
			fmt.Fprintln(deps.Stderr, "error: no project found. Use 'docsmith init' to create one.")
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		}
		return nil, err
	}
	return pc, nil
}

// saveProject writes the project document. A degraded write is reported as a
// warning and otherwise treated as saved.
func saveProject(deps *Dependencies, pc *docsmith.ProjectContext) error {
	err := deps.Contexts.SaveContext(deps.Ctx, pc)
	switch docsmith.ErrorCode(err) {
	case "":
		return nil
	case docsmith.EDEGRADED:
		fmt.Fprintf(deps.Stderr, "warning: %s\n", docsmith.ErrorMessage(err))
		return nil
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
	return err
}
