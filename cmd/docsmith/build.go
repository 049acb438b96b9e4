package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docsmith"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	retry := strings.TrimSpace("docsmith build" + formatArgs(c.Args))

	deps.progress("rendering")
	if err := deps.Site.Build(deps.Ctx, generatorArgs(c.Args)); err != nil {
		deps.suggest(retry)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}

	deps.progress("indexing")
	pages, err := deps.Pages.ListPages(deps.Ctx)
	if err != nil {
		// The site was built; a missing or odd sitemap only costs the inventory.
		fmt.Fprintf(deps.Stderr, "warning: cannot list pages: %s\n", docsmith.ErrorMessage(err))
		deps.suggest("docsmith serve", "docsmith publish <repo>")
		fmt.Fprintln(deps.Stdout, "Site built")
		return nil
	}

	deps.Session.UpdateContext(deps.Ctx, func(pc *docsmith.ProjectContext) {
		pc.Content.Pages = pages
	})

	deps.suggest("docsmith serve", "docsmith publish <repo>")
	fmt.Fprintf(deps.Stdout, "Site built: %d pages\n", len(pages))
	return nil
}
