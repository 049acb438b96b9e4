package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docsmith"
	"github.com/fwojciec/docsmith/session"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	// Dir is the absolute project directory.
	Dir    string
	Config *Config

	Session    *session.Manager
	Continuity *docsmith.Continuity

	// Command is the lifecycle handle of the running command. It is nil for
	// read-only commands.
	Command *session.Command

	Contexts  docsmith.ContextService
	Workflows docsmith.WorkflowService
	Log       docsmith.SessionLog
	History   docsmith.HistoryIndex
	Site      docsmith.SiteGenerator
	Pages     docsmith.PageLister
	Repos     docsmith.RepoHost
	Scanner   docsmith.ContentScanner
}

// progress records an intermediate step of the running command.
func (d *Dependencies) progress(step string) {
	if d.Command != nil {
		d.Command.Progress(d.Ctx, step)
	}
}

// suggest sets the next actions stored with the command's final transition.
func (d *Dependencies) suggest(actions ...string) {
	if d.Command != nil {
		d.Command.NextActions = actions
	}
}

func (d *Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now().UTC()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir string `short:"C" default:"." help:"Project directory"`

	Init    InitCmd    `cmd:"" help:"Create a documentation project"`
	Theme   ThemeCmd   `cmd:"" help:"Choose the site theme"`
	Sync    SyncCmd    `cmd:"" help:"Record content changes in the project inventory"`
	Build   BuildCmd   `cmd:"" help:"Build the site"`
	Serve   ServeCmd   `cmd:"" help:"Serve a live preview of the site"`
	Publish PublishCmd `cmd:"" help:"Create a remote repository for the site"`
	Status  StatusCmd  `cmd:"" help:"Show project, workflow and session state"`
	History HistoryCmd `cmd:"" help:"Show recent command history"`
	Resume  ResumeCmd  `cmd:"" help:"Show the interrupted workflow and how to continue"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Name       string `arg:"" help:"Project name"`
	Type       string `default:"documentation" help:"Project type"`
	NoScaffold bool   `help:"Do not run the site generator's scaffolding"`
}

// ThemeCmd is the "theme" subcommand.
type ThemeCmd struct {
	ID string `arg:"" help:"Theme identifier"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct{}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the site generator"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Arguments passed to the site generator"`
}

// generatorArgs drops the "--" that kong keeps at the front of passthrough
// arguments.
func generatorArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	Repo   string `arg:"" help:"Repository name"`
	Public bool   `help:"Create a public repository"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int  `short:"n" default:"20" help:"Number of entries to show (0 for all)"`
	Stats bool `help:"Show per-command statistics"`
}

// ResumeCmd is the "resume" subcommand.
type ResumeCmd struct{}

// readOnlyCommands reconcile the session but are not tracked as workflows.
var readOnlyCommands = map[string]bool{
	"status":  true,
	"history": true,
	"resume":  true,
}
