// Package filter runs several jobs one after another and stops at the first
// one whose report holds errors. Cheap jobs go first so that a failing check
// is reported before slower jobs like clippy or test are started.
package filter

import (
	"context"
	"fmt"

	"github.com/papapumpkin/beacon/internal/jobs"
	"github.com/papapumpkin/beacon/internal/runner"
)

// JobRunner runs one job to completion.
type JobRunner interface {
	Run(ctx context.Context, job jobs.Job) (*runner.Result, error)
}

// Result contains the outcome of a chain run.
type Result struct {
	Passed bool             // true if no job reported errors
	Steps  []*runner.Result // one entry per job that ran, in order
}

// FirstFailure returns the first step whose report holds errors, or nil if
// all passed.
func (r *Result) FirstFailure() *runner.Result {
	for _, s := range r.Steps {
		if s.Report.HasErrors() {
			return s
		}
	}
	return nil
}

// Last returns the last step that ran, or nil for an empty chain.
func (r *Result) Last() *runner.Result {
	if len(r.Steps) == 0 {
		return nil
	}
	return r.Steps[len(r.Steps)-1]
}

// Chain runs jobs sequentially, stopping on the first report with errors.
type Chain struct {
	Jobs   []jobs.Job
	Runner JobRunner

	// OnStart, if set, is called before each job starts.
	OnStart func(job jobs.Job)
}

// Run executes each job in order. A job whose report holds errors ends the
// chain with Passed=false; warnings alone do not. A non-nil error is only
// returned when a job could not be run at all or ctx was cancelled, together
// with the steps completed so far.
func (c *Chain) Run(ctx context.Context) (*Result, error) {
	result := &Result{Passed: true}

	for _, job := range c.Jobs {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("filter: chain cancelled: %w", err)
		}
		if c.OnStart != nil {
			c.OnStart(job)
		}

		res, err := c.Runner.Run(ctx, job)
		if err != nil {
			return result, fmt.Errorf("filter: job %s: %w", job.Name, err)
		}
		result.Steps = append(result.Steps, res)

		if res.Report.HasErrors() {
			result.Passed = false
			return result, nil
		}
	}

	return result, nil
}

// FromManifest resolves names against m into a chain. An empty list yields
// a chain holding only the manifest's default job.
func FromManifest(m *jobs.Manifest, names []string, r JobRunner) (*Chain, error) {
	if len(names) == 0 {
		names = []string{""}
	}
	c := &Chain{Runner: r}
	for _, name := range names {
		job, err := m.Lookup(name)
		if err != nil {
			return nil, err
		}
		c.Jobs = append(c.Jobs, job)
	}
	return c, nil
}
