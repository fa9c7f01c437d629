package tui

import (
	"time"

	"github.com/papapumpkin/beacon/internal/runner"
)

// MsgBuilding is sent when a job run starts.
type MsgBuilding struct {
	Job string
}

// MsgReport is sent when a job run produced a report.
type MsgReport struct {
	Result *runner.Result
}

// MsgFailed is sent when a job run could not produce a report.
type MsgFailed struct {
	Job string
	Err error
}

// MsgTick drives the periodic redraw.
type MsgTick struct {
	Time time.Time
}
