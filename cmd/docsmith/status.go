package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsmith"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	w := deps.Stdout
	st := newStyles(w)
	now := deps.now()

	pc, err := deps.Contexts.LoadContext(deps.Ctx)
	switch {
	case docsmith.ErrorCode(err) == docsmith.ENOTFOUND:
		fmt.Fprintln(w, "No project found. Use 'docsmith init' to create one.")
	case err != nil:
		fmt.Fprintf(deps.Stderr, "warning: %s\n", docsmith.ErrorMessage(err))
	default:
		fmt.Fprintln(w, st.title.Render(pc.Project.Name))
		fmt.Fprintf(w, "%s %s\n", st.label.Render("Type:"), pc.Project.Type)
		if theme := pc.ThemeName(); theme != "" {
			fmt.Fprintf(w, "%s %s\n", st.label.Render("Theme:"), theme)
		}
		fmt.Fprintf(w, "%s %s\n", st.label.Render("Updated:"), humanize.RelTime(pc.Project.LastUpdatedAt, now, "ago", "from now"))
		fmt.Fprintf(w, "%s %s pages, %s tracked files\n", st.label.Render("Content:"),
			humanize.Comma(int64(len(pc.Content.Pages))), humanize.Comma(int64(len(pc.Content.Checksums))))
		fmt.Fprintf(w, "%s %s commands in %s sessions\n", st.label.Render("Activity:"),
			humanize.Comma(int64(pc.Interactions.TotalCommands)), humanize.Comma(int64(pc.Interactions.TotalSessions)))
	}

	state, err := deps.Workflows.LoadWorkflowState(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", docsmith.ErrorMessage(err))
		state = &docsmith.WorkflowState{}
	}

	if wf := state.CurrentWorkflow; wf != nil {
		fmt.Fprintf(w, "%s %s%s (%s, step %s, started %s)\n", st.label.Render("Workflow:"),
			wf.Context.LastCommand, formatArgs(wf.Context.Args), st.status(wf.Status), wf.Step,
			humanize.RelTime(wf.Context.StartTime, now, "ago", "from now"))
		if wf.Error != "" {
			fmt.Fprintf(w, "%s %s\n", st.label.Render("Error:"), wf.Error)
		}
	} else {
		fmt.Fprintf(w, "%s none\n", st.label.Render("Workflow:"))
	}

	if s := state.ActiveSession; s != nil {
		fmt.Fprintf(w, "%s %s (%d commands, last active %s)\n", st.label.Render("Session:"),
			s.SessionID, s.CommandCount, humanize.RelTime(s.LastActivity, now, "ago", "from now"))
	}
	return nil
}
