package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/beacon/internal/report"
)

// BuildState is the phase of the current job run.
type BuildState int

const (
	StateBuilding BuildState = iota
	StateDone
	StateFailed
)

// StatusBar renders the persistent top bar: job, build state, counts, flags.
type StatusBar struct {
	Job      string
	State    BuildState
	Stats    report.Stats
	Builds   int           // completed runs this session
	Elapsed  time.Duration // duration of the last completed run
	Reversed bool
	Summary  bool
	Width    int
}

// View renders the status bar as a single line. Narrow terminals drop the
// elapsed time and flag badges first.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth

	const barPadding = 2
	innerWidth := max(s.Width-barPadding, 0)

	barBg := lipgloss.NewStyle().Background(colorSurface)

	var right []string
	right = append(right, s.renderState())
	if !compact {
		if s.Reversed {
			right = append(right, styleStatusValue.Render("rev"))
		}
		if s.Summary {
			right = append(right, styleStatusValue.Render("sum"))
		}
		if s.State != StateBuilding && s.Elapsed > 0 {
			right = append(right, styleStatusValue.Render(formatElapsed(s.Elapsed)))
		}
	}
	rightText := strings.Join(right, barBg.Render("  "))
	rightWidth := lipgloss.Width(rightText)

	nameRoom := innerWidth - rightWidth - 1 - lipgloss.Width("beacon ")
	name := styleStatusLabel.Render("beacon ") + styleStatusValue.Render(TruncateWithEllipsis(s.Job, nameRoom))
	if nameRoom <= 0 {
		name = styleStatusLabel.Render("beacon")
	}

	gap := max(innerWidth-lipgloss.Width(name)-rightWidth, 1)
	line := name + barBg.Render(strings.Repeat(" ", gap)) + rightText
	return styleStatusBar.Width(s.Width).Render(line)
}

func (s StatusBar) renderState() string {
	switch s.State {
	case StateBuilding:
		return styleStatusBuilding.Render(iconBuilding + " building")
	case StateFailed:
		return styleStatusErrors.Render(iconFailed + " failed")
	}
	switch {
	case s.Stats.Errors > 0:
		return styleStatusErrors.Render(fmt.Sprintf("%s %d errors", iconFailed, s.Stats.Errors)) +
			styleStatusWarnings.Render(fmt.Sprintf(" %d warnings", s.Stats.Warnings))
	case s.Stats.Warnings > 0:
		return styleStatusWarnings.Render(fmt.Sprintf("%s %d warnings", iconWarning, s.Stats.Warnings))
	}
	return styleStatusClean.Render(iconClean + " pass")
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Truncate(time.Second).String()
}
