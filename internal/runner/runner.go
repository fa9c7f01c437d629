// Package runner executes a job's command and turns its captured stderr into
// a report.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/papapumpkin/beacon/internal/jobs"
	"github.com/papapumpkin/beacon/internal/report"
)

// Result is the outcome of one run of a job.
type Result struct {
	Job      string
	Report   *report.Report
	ExitCode int           // process exit status; non-zero is not a runner error
	Elapsed  time.Duration // wall-clock time of the command
}

// Runner runs jobs in a working directory.
type Runner struct {
	WorkDir string
	Builder *report.Builder // nil uses the cargo defaults
}

// New returns a Runner for workDir using the cargo report builder.
func New(workDir string) *Runner {
	return &Runner{WorkDir: workDir, Builder: report.NewBuilder()}
}

// Run executes job and builds a report from what it wrote to stderr. Jobs
// marked NeedStdout also have stdout captured into the same stream.
//
// A non-nil error is only returned when the command could not be started,
// was cancelled, or produced output that is not valid text.
func (r *Runner) Run(ctx context.Context, job jobs.Job) (*Result, error) {
	if len(job.Command) == 0 {
		return nil, fmt.Errorf("runner: job %q: %w", job.Name, jobs.ErrEmptyCommand)
	}

	cmd := exec.CommandContext(ctx, job.Command[0], job.Command[1:]...)
	cmd.Dir = r.WorkDir

	var captured bytes.Buffer
	cmd.Stderr = &captured
	if job.NeedStdout {
		cmd.Stdout = &captured
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("runner: job %q cancelled: %w", job.Name, ctxErr)
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("runner: job %q: %w", job.Name, err)
		}
		exitCode = exitErr.ExitCode()
	}

	builder := r.Builder
	if builder == nil {
		builder = report.NewBuilder()
	}
	rep, err := builder.FromBytes(captured.Bytes())
	if err != nil {
		return nil, fmt.Errorf("runner: job %q: %w", job.Name, err)
	}

	return &Result{
		Job:      job.Name,
		Report:   rep,
		ExitCode: exitCode,
		Elapsed:  elapsed,
	}, nil
}
