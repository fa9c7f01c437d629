package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root BubbleTea model composing all sub-views.
type AppModel struct {
	StatusBar StatusBar
	Report    ReportView
	Footer    Footer
	Keys      KeyMap
	Width     int
	Height    int
	Reversed  bool // keep new reports in descending item order
}

// NewAppModel creates a root model for the given job.
func NewAppModel(job string, reversed, summary bool) AppModel {
	keys := DefaultKeyMap()
	m := AppModel{
		StatusBar: StatusBar{Job: job, State: StateBuilding, Reversed: reversed, Summary: summary},
		Report:    NewReportView(80, 20),
		Footer:    Footer{Bindings: FooterBindings(keys)},
		Keys:      keys,
		Reversed:  reversed,
	}
	if summary {
		m.Report.ToggleSummary()
	}
	return m
}

// Init starts the tick timer.
func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Footer.Width = msg.Width
		m.Report.SetSize(msg.Width, m.reportHeight())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgTick:
		return m, tickCmd()

	case MsgBuilding:
		m.StatusBar.Job = msg.Job
		m.StatusBar.State = StateBuilding

	case MsgReport:
		res := msg.Result
		if m.Reversed && !res.Report.Reversed() {
			res.Report.Reverse()
		}
		m.StatusBar.State = StateDone
		m.StatusBar.Stats = res.Report.Stats
		m.StatusBar.Elapsed = res.Elapsed
		m.StatusBar.Builds++
		m.Report.SetReport(res.Report)

	case MsgFailed:
		m.StatusBar.State = StateFailed
		m.Report.SetFailure(msg.Job + ": " + msg.Err.Error())
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Reverse):
		m.Reversed = !m.Reversed
		m.StatusBar.Reversed = m.Reversed
		m.Report.Reverse()
	case key.Matches(msg, m.Keys.Summary):
		m.Report.ToggleSummary()
		m.StatusBar.Summary = m.Report.Summary()
	default:
		m.Report.Update(msg, m.Keys)
	}
	return m, nil
}

// reportHeight is the number of rows left for the report, reserving one row
// for the scroll indicator.
func (m AppModel) reportHeight() int {
	return max(m.Height-chromeHeight-1, 1)
}

// View renders the full screen.
func (m AppModel) View() string {
	if m.Width > 0 && (m.Width < MinWidth || m.Height < MinHeight) {
		return "terminal too small"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.StatusBar.View(),
		m.Report.View(),
		m.Footer.View(),
	)
}
