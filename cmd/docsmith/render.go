package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fwojciec/docsmith"
)

// styles renders terminal output. Colors are dropped automatically when w is
// not a terminal.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	ok    lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		label: r.NewStyle().Foreground(lipgloss.Color("245")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("196")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("42")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// status styles a workflow status.
func (s styles) status(status docsmith.Status) string {
	switch status {
	case docsmith.StatusCompleted:
		return s.ok.Render(string(status))
	case docsmith.StatusFailed:
		return s.fail.Render(string(status))
	default:
		return s.warn.Render(string(status))
	}
}

// printRecovery tells the user what the previous, now stale, session left
// behind.
func printRecovery(w io.Writer, c *docsmith.Continuity, now time.Time) {
	st := newStyles(w)
	last := now.Add(-c.InactiveFor)
	fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("Welcome back! Your last session was active %s.", humanize.RelTime(last, now, "ago", "from now"))))
	if c.LastCommand == "" {
		return
	}
	fmt.Fprintf(w, "%s %s (%s)\n", st.label.Render("Last command:"), c.LastCommand, st.status(c.LastStatus))
	if c.LastError != "" {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("Error:"), c.LastError)
	}
	printNextActions(w, st, c.NextActions)
}

func printNextActions(w io.Writer, st styles, actions []string) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintln(w, st.label.Render("Suggested next steps:"))
	for _, a := range actions {
		fmt.Fprintf(w, "  %s\n", a)
	}
}

// formatDuration renders a millisecond duration from the session log.
func formatDuration(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return (time.Duration(*ms) * time.Millisecond).Round(time.Millisecond).String()
}

// formatArgs joins arguments for display.
func formatArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return " " + strings.Join(args, " ")
}
