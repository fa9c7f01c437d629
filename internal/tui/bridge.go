package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/beacon/internal/mission"
	"github.com/papapumpkin/beacon/internal/runner"
)

// Bridge implements mission.Sink by forwarding each call as a typed message
// to a BubbleTea program. tea.Program.Send is goroutine-safe.
type Bridge struct {
	program *tea.Program
}

// Verify Bridge satisfies mission.Sink at compile time.
var _ mission.Sink = (*Bridge)(nil)

// NewBridge creates a bridge that sends messages to the given program.
func NewBridge(p *tea.Program) *Bridge {
	return &Bridge{program: p}
}

// Building sends MsgBuilding.
func (b *Bridge) Building(job string) {
	b.program.Send(MsgBuilding{Job: job})
}

// Report sends MsgReport.
func (b *Bridge) Report(res *runner.Result) {
	b.program.Send(MsgReport{Result: res})
}

// Failed sends MsgFailed.
func (b *Bridge) Failed(job string, err error) {
	b.program.Send(MsgFailed{Job: job, Err: err})
}
