package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsmith"
	"github.com/fwojciec/docsmith/exec"
	"github.com/fwojciec/docsmith/fs"
	"github.com/fwojciec/docsmith/gh"
	"github.com/fwojciec/docsmith/hugo"
	"github.com/fwojciec/docsmith/session"
	dsslog "github.com/fwojciec/docsmith/slog"
	"github.com/fwojciec/docsmith/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Runner executes external programs. Defaults to an os/exec runner
	// writing to the command's output streams.
	Runner docsmith.Runner

	// SQLite database backing history statistics.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsmith"),
		kong.Description("Scaffold, build and publish documentation sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsmith --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(cli.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: check %s and DOCSMITH_* environment variables\n", ConfigFile)
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Dir = dir
	deps.Config = cfg

	// Wire storage services
	layout := fs.NewLayout(resolve(dir, cfg.StateDir))
	opts := fs.Options{Keep: cfg.BackupKeep, Now: m.Now, Logger: logger}
	workflows := fs.NewWorkflowService(layout, opts)
	workflows.Getwd = func() (string, error) { return dir, nil }
	deps.Workflows = dsslog.NewLoggingWorkflowService(workflows, logger)
	contexts := fs.NewContextService(layout, opts)
	contexts.DefaultName = filepath.Base(dir)
	deps.Contexts = dsslog.NewLoggingContextService(contexts, logger)
	deps.Log = dsslog.NewLoggingSessionLog(fs.NewSessionLog(layout, cfg.LogMaxBytes, opts), logger)

	detector := session.NewDetector(deps.Workflows, cfg.StaleAfter, logger)
	detector.Now = m.Now
	deps.Session = session.NewManager(deps.Workflows, deps.Contexts, deps.Log, detector, logger)
	deps.Session.Now = m.Now

	name := commandName(kongCtx)

	// Wire external collaborators
	runner := m.Runner
	if runner == nil {
		runner = exec.NewRunner(stdout, stderr)
	}
	site := hugo.NewSite(runner, dir)
	site.Bin = cfg.HugoBin
	site.PublicDir = resolve(dir, cfg.PublicDir)
	if name == "build" || name == "serve" {
		site.Theme = deps.Session.LoadContext(ctx).ThemeName()
	}
	deps.Site = dsslog.NewLoggingSiteGenerator(site, logger)
	deps.Pages = hugo.NewSitemap(site.PublicDir)
	repo := gh.NewRepo(runner, dir)
	repo.Bin = cfg.GhBin
	deps.Repos = dsslog.NewLoggingRepoHost(repo, logger)
	deps.Scanner = fs.NewContentScanner(resolve(dir, cfg.ContentDir))

	if name == "history" && cli.History.Stats {
		m.DB = sqlite.NewDB(":memory:")
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open history index: %w", err)
		}
		defer m.Close()
		deps.History = dsslog.NewLoggingHistoryIndex(sqlite.NewHistoryIndex(m.DB), logger)
	}

	// Reconcile the session before any command runs
	deps.Continuity = deps.Session.Reconcile(ctx)
	if deps.Continuity.State == docsmith.ContinuityStale {
		printRecovery(stdout, deps.Continuity, deps.now())
	}

	if readOnlyCommands[name] {
		return kongCtx.Run(deps)
	}

	deps.Command = deps.Session.Begin(ctx, deps.Continuity.Session.SessionID, name, commandArgs(kongCtx))
	err = kongCtx.Run(deps)
	// Record the outcome even if the user interrupted the command.
	deps.Command.Finish(context.WithoutCancel(ctx), err)
	return err
}

// commandName returns the selected subcommand without its arguments.
func commandName(kongCtx *kong.Context) string {
	name, _, _ := strings.Cut(kongCtx.Command(), " ")
	return name
}

// commandArgs returns what kong parsed for the selected command: positional
// values and the command's own flags, in command-line order. Global flags and
// values filled in from defaults are left out.
func commandArgs(kongCtx *kong.Context) []string {
	args := []string{}
	node := kongCtx.Selected()
	if node == nil {
		return args
	}
	for _, p := range kongCtx.Path {
		switch {
		case p.Positional != nil && p.Parent == node:
			args = append(args, valueStrings(kongCtx.Value(p))...)
		case p.Flag != nil && !p.Resolved && slices.Contains(node.Flags, p.Flag):
			args = append(args, flagString(p.Flag, kongCtx.Value(p)))
		}
	}
	return args
}

func valueStrings(v reflect.Value) []string {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Slice {
		out := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, fmt.Sprint(v.Index(i).Interface()))
		}
		return out
	}
	return []string{fmt.Sprint(v.Interface())}
}

func flagString(f *kong.Flag, v reflect.Value) string {
	if v.IsValid() && v.Kind() == reflect.Bool && v.Bool() {
		return "--" + f.Name
	}
	return "--" + f.Name + "=" + strings.Join(valueStrings(v), ",")
}
