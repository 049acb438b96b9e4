package main

import (
	"fmt"

	"github.com/fwojciec/docsmith"
)

// Run executes the resume command.
func (c *ResumeCmd) Run(deps *Dependencies) error {
	state, err := deps.Workflows.LoadWorkflowState(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}

	wf := state.CurrentWorkflow
	if wf == nil || wf.Status == docsmith.StatusCompleted {
		fmt.Fprintln(deps.Stdout, "Nothing to resume.")
		return nil
	}

	st := newStyles(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "%s %s%s (%s)\n", st.label.Render("Interrupted:"),
		wf.Context.LastCommand, formatArgs(wf.Context.Args), st.status(wf.Status))
	if wf.Step != "" && wf.Step != string(wf.Status) {
		fmt.Fprintf(deps.Stdout, "%s %s\n", st.label.Render("Step:"), wf.Step)
	}
	if wf.Error != "" {
		fmt.Fprintf(deps.Stdout, "%s %s\n", st.label.Render("Error:"), wf.Error)
	}
	printNextActions(deps.Stdout, st, wf.NextActions)
	return nil
}
