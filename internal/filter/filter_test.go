package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/papapumpkin/beacon/internal/jobs"
	"github.com/papapumpkin/beacon/internal/report"
	"github.com/papapumpkin/beacon/internal/runner"
)

// scriptedRunner returns a canned stderr per job name.
type scriptedRunner struct {
	stderr map[string][]string
	fail   map[string]error
	ran    []string
}

func (s *scriptedRunner) Run(_ context.Context, job jobs.Job) (*runner.Result, error) {
	s.ran = append(s.ran, job.Name)
	if err := s.fail[job.Name]; err != nil {
		return nil, err
	}
	rep, err := report.FromErrLines(s.stderr[job.Name])
	if err != nil {
		return nil, err
	}
	return &runner.Result{Job: job.Name, Report: rep}, nil
}

func chainOf(r JobRunner, names ...string) *Chain {
	c := &Chain{Runner: r}
	for _, n := range names {
		c.Jobs = append(c.Jobs, jobs.Job{Name: n, Command: []string{n}})
	}
	return c
}

func TestChainRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stderr     map[string][]string
		wantPassed bool
		wantRan    []string
		wantFailed string
	}{
		{
			name:       "all clean",
			stderr:     map[string][]string{},
			wantPassed: true,
			wantRan:    []string{"check", "clippy", "test"},
		},
		{
			name: "warnings do not stop the chain",
			stderr: map[string][]string{
				"check": {"warning: unused variable: `x`", "  --> src/main.rs:2:9"},
			},
			wantPassed: true,
			wantRan:    []string{"check", "clippy", "test"},
		},
		{
			name: "first error stops the chain",
			stderr: map[string][]string{
				"clippy": {"error: this looks like a bug", "  --> src/lib.rs:4:1"},
			},
			wantPassed: false,
			wantRan:    []string{"check", "clippy"},
			wantFailed: "clippy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &scriptedRunner{stderr: tt.stderr}
			var started []string
			c := chainOf(r, "check", "clippy", "test")
			c.OnStart = func(job jobs.Job) { started = append(started, job.Name) }

			res, err := c.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", res.Passed, tt.wantPassed)
			}
			if len(r.ran) != len(tt.wantRan) {
				t.Fatalf("ran %v, want %v", r.ran, tt.wantRan)
			}
			for i := range r.ran {
				if r.ran[i] != tt.wantRan[i] || started[i] != tt.wantRan[i] {
					t.Errorf("step %d: ran %q started %q, want %q", i, r.ran[i], started[i], tt.wantRan[i])
				}
			}

			failed := res.FirstFailure()
			switch {
			case tt.wantFailed == "" && failed != nil:
				t.Errorf("FirstFailure = %q, want nil", failed.Job)
			case tt.wantFailed != "" && (failed == nil || failed.Job != tt.wantFailed):
				t.Errorf("FirstFailure = %v, want %q", failed, tt.wantFailed)
			}
			if last := res.Last(); last == nil || last.Job != tt.wantRan[len(tt.wantRan)-1] {
				t.Errorf("Last = %v, want %q", last, tt.wantRan[len(tt.wantRan)-1])
			}
		})
	}
}

func TestChainRun_RunnerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("exec: cargo: not found")
	r := &scriptedRunner{fail: map[string]error{"clippy": boom}}
	res, err := chainOf(r, "check", "clippy", "test").Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if res == nil || len(res.Steps) != 1 {
		t.Fatalf("completed steps = %v, want only check", res)
	}
}

func TestChainRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &scriptedRunner{}
	_, err := chainOf(r, "check").Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(r.ran) != 0 {
		t.Errorf("ran %v after cancellation", r.ran)
	}
}

func TestResult_Empty(t *testing.T) {
	t.Parallel()

	var res Result
	if res.FirstFailure() != nil || res.Last() != nil {
		t.Error("empty result should have no failure and no last step")
	}
}

func TestFromManifest(t *testing.T) {
	t.Parallel()

	m := jobs.Defaults()

	c, err := FromManifest(m, nil, &scriptedRunner{})
	if err != nil {
		t.Fatalf("FromManifest(nil): %v", err)
	}
	if len(c.Jobs) != 1 || c.Jobs[0].Name != m.DefaultJob {
		t.Errorf("jobs = %v, want only %q", c.Jobs, m.DefaultJob)
	}

	c, err = FromManifest(m, []string{"check", "test"}, &scriptedRunner{})
	if err != nil {
		t.Fatalf("FromManifest: %v", err)
	}
	if len(c.Jobs) != 2 || c.Jobs[1].Name != "test" {
		t.Errorf("jobs = %v", c.Jobs)
	}

	if _, err := FromManifest(m, []string{"check", "nope"}, &scriptedRunner{}); !errors.Is(err, jobs.ErrUnknownJob) {
		t.Errorf("err = %v, want ErrUnknownJob", err)
	}
}
