package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/beacon/internal/report"
	"github.com/papapumpkin/beacon/internal/tline"
)

// ReportView wraps a viewport showing the current report.
type ReportView struct {
	viewport   viewport.Model
	report     *report.Report
	failure    string
	summary    bool
	totalLines int
}

// NewReportView creates a report view with the given dimensions.
func NewReportView(width, height int) ReportView {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return ReportView{viewport: vp}
}

// SetSize updates the viewport dimensions.
func (v *ReportView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height
}

// SetReport replaces the displayed report and scrolls to the top.
func (v *ReportView) SetReport(r *report.Report) {
	v.report = r
	v.failure = ""
	v.refresh()
	v.viewport.GotoTop()
}

// SetFailure replaces the report with an error message.
func (v *ReportView) SetFailure(msg string) {
	v.report = nil
	v.failure = msg
	v.refresh()
	v.viewport.GotoTop()
}

// Reverse flips the order of items, keeping the scroll position at the top.
func (v *ReportView) Reverse() {
	if v.report == nil {
		return
	}
	v.report.Reverse()
	v.refresh()
	v.viewport.GotoTop()
}

// ToggleSummary switches between full items and titles only.
func (v *ReportView) ToggleSummary() {
	v.summary = !v.summary
	v.refresh()
}

// Summary reports whether only titles are shown.
func (v ReportView) Summary() bool { return v.summary }

func (v *ReportView) refresh() {
	content := v.render()
	v.totalLines = strings.Count(content, "\n") + 1
	v.viewport.SetContent(content)
}

// render lays out the report: each title is prefixed with its item index,
// items are separated by a blank line unless in summary mode.
func (v ReportView) render() string {
	if v.failure != "" {
		return styleFailure.Render(v.failure)
	}
	if v.report == nil {
		return ""
	}
	if len(v.report.Lines) == 0 {
		return styleEmpty.Render(iconClean + " no warnings, no errors")
	}

	var b strings.Builder
	for i, item := range v.report.Items() {
		if i > 0 && !v.summary {
			b.WriteString("\n")
		}
		for _, line := range report.TrimBlank(item) {
			if !line.Type.Title {
				if !v.summary {
					b.WriteString(line.Content.Styled())
					b.WriteString("\n")
				}
				continue
			}
			style := styleTitleWarning
			if line.Type.Kind == report.KindError {
				style = styleTitleError
			}
			b.WriteString(styleItemIndex.Render(fmt.Sprintf("%3d ", line.ItemIdx)))
			if hasOwnStyle(line.Content) {
				b.WriteString(line.Content.Styled())
			} else {
				b.WriteString(style.Render(line.Content.Text()))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Update handles scroll messages. Home/g and End/G are handled explicitly
// because the viewport's built-in KeyMap does not bind those keys.
func (v *ReportView) Update(msg tea.Msg, km KeyMap) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, km.Top):
			v.viewport.GotoTop()
			return
		case key.Matches(k, km.Bottom):
			v.viewport.GotoBottom()
			return
		}
	}
	v.viewport, _ = v.viewport.Update(msg)
}

// View renders the viewport with a scroll indicator when content is hidden below.
func (v ReportView) View() string {
	view := v.viewport.View()
	if below := v.linesBelow(); below > 0 {
		view += "\n" + styleScrollIndicator.Render(fmt.Sprintf("↓ %d more", below))
	}
	return view
}

// linesBelow returns the number of content lines below the viewport.
func (v ReportView) linesBelow() int {
	return max(v.totalLines-v.viewport.YOffset-v.viewport.Height, 0)
}

// hasOwnStyle reports whether the command already colored the title, in
// which case its styling is kept as is.
func hasOwnStyle(l tline.TLine) bool {
	return len(l.Strings) > 0 && l.Strings[0].Bold()
}
