// Package mission drives the watch loop: it runs a job once, then again after
// every batch of file changes, and hands each outcome to a Sink.
package mission

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/beacon/internal/jobs"
	"github.com/papapumpkin/beacon/internal/runner"
	"github.com/papapumpkin/beacon/internal/telemetry"
	"github.com/papapumpkin/beacon/internal/watcher"
)

// JobRunner runs one job to completion.
type JobRunner interface {
	Run(ctx context.Context, job jobs.Job) (*runner.Result, error)
}

// Sink receives build lifecycle notifications. Calls are made from a single
// goroutine, in order.
type Sink interface {
	Building(job string)
	Report(res *runner.Result)
	Failed(job string, err error)
}

// Mission ties a change source to a job runner.
type Mission struct {
	Job       jobs.Job
	Runner    JobRunner
	Changes   <-chan watcher.Change // nil runs the job once and waits for cancellation
	Sink      Sink
	Telemetry *telemetry.Emitter // optional

	builds int
}

// Run builds immediately and after every change until ctx is cancelled.
// Changes arriving during a build coalesce into a single rebuild. Run returns
// nil on cancellation.
func (m *Mission) Run(ctx context.Context) error {
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.forward(ctx, trigger) })
	g.Go(func() error { return m.buildLoop(ctx, trigger) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (m *Mission) forward(ctx context.Context, trigger chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-m.Changes:
			if !ok {
				return nil
			}
			_ = m.Telemetry.Record(telemetry.KindWatchChange, m.Job.Name, 0, change.Files)
			select {
			case trigger <- struct{}{}:
			default:
				// A rebuild is already queued.
			}
		}
	}
}

func (m *Mission) buildLoop(ctx context.Context, trigger <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
			m.build(ctx)
		}
	}
}

func (m *Mission) build(ctx context.Context) {
	m.builds++
	_ = m.Telemetry.Record(telemetry.KindBuildStart, m.Job.Name, m.builds, nil)
	m.Sink.Building(m.Job.Name)

	res, err := m.Runner.Run(ctx, m.Job)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		_ = m.Telemetry.Record(telemetry.KindBuildFailed, m.Job.Name, m.builds, err.Error())
		m.Sink.Failed(m.Job.Name, err)
		return
	}
	_ = m.Telemetry.Record(telemetry.KindBuildDone, m.Job.Name, m.builds, res.Report.Stats)
	m.Sink.Report(res)
}
