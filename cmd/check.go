package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/beacon/internal/filter"
	"github.com/papapumpkin/beacon/internal/jobs"
	"github.com/papapumpkin/beacon/internal/runner"
	"github.com/papapumpkin/beacon/internal/ui"
)

// errHasErrors makes the process exit non-zero when the report holds errors.
var errHasErrors = errors.New("build has errors")

var checkCmd = &cobra.Command{
	Use:   "check [job...]",
	Short: "Run jobs once, in order, and print the first failing report",
	Long: `Check runs the given jobs one after another and stops at the first one
whose report holds errors. Without arguments it runs the selected job.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = []string{s.job.Name}
	}
	printer := newPrinter(s)
	chain, err := filter.FromManifest(s.manifest, names, runner.New(s.cfg.WorkDir))
	if err != nil {
		return err
	}
	chain.OnStart = func(job jobs.Job) { printer.Building(job.Name) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := chain.Run(ctx)
	if err != nil {
		printer.Failed(names[len(res.Steps)], err)
		return err
	}
	for _, step := range res.Steps[:len(res.Steps)-1] {
		printer.Verdict(step.Job, step.Report.Stats, step.Elapsed)
	}
	printer.Report(res.Last())
	if !res.Passed {
		return errHasErrors
	}
	return nil
}

// newPrinter returns a plain printer configured from the session.
func newPrinter(s *session) *ui.Printer {
	p := ui.New()
	p.Reverse = s.cfg.Reverse
	p.Summary = s.cfg.Summary
	p.Verbose = s.cfg.Verbose
	return p
}
