package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsmith"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Stats {
		return c.runStats(deps)
	}

	entries, err := deps.Log.ReadRecent(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No commands recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		line := fmt.Sprintf("%s\t%s%s\t%s\t%s", e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Command, formatArgs(e.Args), e.Status, formatDuration(e.Duration))
		if e.Error != "" {
			line += "\t" + e.Error
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

func (c *HistoryCmd) runStats(deps *Dependencies) error {
	entries, err := deps.Log.ReadRecent(deps.Ctx, 0)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}
	if err := deps.History.Import(deps.Ctx, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}
	stats, err := deps.History.CommandStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsmith.ErrorMessage(err))
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(deps.Stdout, "No commands recorded yet.")
		return nil
	}

	now := deps.now()
	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tRUNS\tFAILED\tAVG\tLAST RUN")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", s.Command, s.Runs, s.Failures,
			s.AvgDuration.Round(time.Millisecond), humanize.RelTime(s.LastRun, now, "ago", "from now"))
	}
	return tw.Flush()
}
