// Package ui prints reports and status messages to a plain terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/papapumpkin/beacon/internal/ansi"
	"github.com/papapumpkin/beacon/internal/report"
	"github.com/papapumpkin/beacon/internal/runner"
)

// Printer writes reports to out and status messages to log, using ANSI
// colors. It satisfies mission.Sink for the plain (non-TUI) watch mode.
type Printer struct {
	out io.Writer
	log io.Writer

	Width   int  // truncate report lines to this many columns; 0 disables
	Summary bool // print only item titles
	Reverse bool // print items in descending order
	Clear   bool // clear the screen before each report
	Verbose bool
}

// New returns a Printer writing reports to stdout and messages to stderr.
func New() *Printer {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters returns a Printer with explicit destinations.
func NewWithWriters(out, log io.Writer) *Printer {
	return &Printer{out: out, log: log}
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.log, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Debug prints msg only in verbose mode.
func (p *Printer) Debug(msg string) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.log, ansi.Dim+"debug: %s"+ansi.Reset+"\n", msg)
}

// Building shows a transient status line; the next report or failure
// overwrites it.
func (p *Printer) Building(job string) {
	fmt.Fprintf(p.log, "\r"+ansi.ClearLine+ansi.Cyan+"⟳ %s"+ansi.Reset+ansi.Dim+" running..."+ansi.Reset, job)
}

// Report prints the result's report followed by a one-line verdict.
func (p *Printer) Report(res *runner.Result) {
	fmt.Fprint(p.log, "\r"+ansi.ClearLine)
	if p.Clear {
		fmt.Fprint(p.out, ansi.ClearScreen)
	}
	if p.Reverse && !res.Report.Reversed() {
		res.Report.Reverse()
	}
	p.PrintReport(res.Report)
	p.Verdict(res.Job, res.Report.Stats, res.Elapsed)
}

// Failed reports a job that could not produce a report.
func (p *Printer) Failed(job string, err error) {
	fmt.Fprint(p.log, "\r"+ansi.ClearLine)
	fmt.Fprintf(p.log, ansi.Red+ansi.Bold+"✗ %s"+ansi.Reset+" failed: %v\n", job, err)
}

// PrintReport writes every item of r, separated by blank lines. Titles are
// colored by kind; in summary mode continuation lines are skipped.
func (p *Printer) PrintReport(r *report.Report) {
	for i, item := range r.Items() {
		if i > 0 && !p.Summary {
			fmt.Fprintln(p.out)
		}
		for _, line := range report.TrimBlank(item) {
			if p.Summary && !line.Type.Title {
				continue
			}
			fmt.Fprintln(p.out, p.renderLine(line))
		}
	}
}

func (p *Printer) renderLine(line report.Line) string {
	text := line.Content.Text()
	if p.Width > 0 {
		text = runewidth.Truncate(text, p.Width, "…")
	}
	if !line.Type.Title {
		return text
	}
	color := ansi.Yellow
	if line.Type.Kind == report.KindError {
		color = ansi.Red
	}
	return color + ansi.Bold + text + ansi.Reset
}

// Verdict prints the counts of a finished build. A zero elapsed time is
// omitted.
func (p *Printer) Verdict(job string, s report.Stats, elapsed time.Duration) {
	took := ""
	if elapsed > 0 {
		took = fmt.Sprintf(ansi.Dim+" (%.1fs)"+ansi.Reset, elapsed.Seconds())
	}
	switch {
	case s.Errors > 0:
		fmt.Fprintf(p.log, ansi.Red+ansi.Bold+"✗ %s"+ansi.Reset+" — %d error(s), %d warning(s)%s\n",
			job, s.Errors, s.Warnings, took)
	case s.Warnings > 0:
		fmt.Fprintf(p.log, ansi.Yellow+ansi.Bold+"⚠ %s"+ansi.Reset+" — %d warning(s)%s\n",
			job, s.Warnings, took)
	default:
		fmt.Fprintf(p.log, ansi.Green+ansi.Bold+"✓ %s"+ansi.Reset+" — no issues%s\n", job, took)
	}
}
