package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/docsmith"
)

// Run executes the serve command. Stopping the server with an interrupt
// counts as a normal exit.
func (c *ServeCmd) Run(deps *Dependencies) error {
	deps.suggest("docsmith build", "docsmith publish <repo>")

	err := deps.Site.Serve(deps.Ctx, generatorArgs(c.Args))
	if err != nil && errors.Is(deps.Ctx.Err(), context.Canceled) {
		return nil
	}
	if err != nil {
		deps.suggest("docsmith serve")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}
	return nil
}
