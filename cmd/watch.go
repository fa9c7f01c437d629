package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papapumpkin/beacon/internal/mission"
	"github.com/papapumpkin/beacon/internal/runner"
	"github.com/papapumpkin/beacon/internal/telemetry"
	"github.com/papapumpkin/beacon/internal/tui"
	"github.com/papapumpkin/beacon/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rerun the job on every change and show the report",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Bool("plain", false, "print reports instead of opening the TUI")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}

	em, err := openTelemetry(s.cfg.TelemetryPath)
	if err != nil {
		return err
	}
	defer em.Close()
	_ = em.Record(telemetry.KindSessionStart, s.job.Name, 0, s.job.Command)
	defer func() { _ = em.Record(telemetry.KindSessionDone, s.job.Name, 0, nil) }()

	paths := watchPaths(s)
	w, err := watcher.New(watcher.Options{
		Paths:      paths,
		IgnoreDirs: s.cfg.IgnoreDirs,
		Extensions: s.cfg.Extensions,
		Debounce:   s.cfg.Debounce,
	})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := &mission.Mission{
		Job:       s.job,
		Runner:    runner.New(s.cfg.WorkDir),
		Changes:   w.Changes,
		Telemetry: em,
	}

	plain, _ := cmd.Flags().GetBool("plain")
	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		p := newPrinter(s)
		p.Clear = term.IsTerminal(int(os.Stdout.Fd()))
		for _, path := range paths {
			p.Debug("watching " + path)
		}
		p.Info(fmt.Sprintf("running %s on every change, ctrl-c to stop", s.job.Name))
		m.Sink = p
		return m.Run(ctx)
	}

	program := tui.NewProgram(s.job.Name, s.cfg.Reverse, s.cfg.Summary)
	m.Sink = tui.NewBridge(program)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	_, runErr := program.Run()
	cancel()
	if err := <-done; err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return nil
}

// watchPaths resolves the job's watch list (or the configured default)
// against the work dir, keeping only paths that exist. When none exist the
// whole work dir is watched.
func watchPaths(s *session) []string {
	candidates := s.job.Watch
	if len(candidates) == 0 {
		candidates = s.cfg.WatchPaths
	}
	var paths []string
	for _, c := range candidates {
		p := c
		if !filepath.IsAbs(p) {
			p = filepath.Join(s.cfg.WorkDir, p)
		}
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		paths = []string{s.cfg.WorkDir}
	}
	return paths
}

// openTelemetry returns a nil (no-op) emitter when path is empty.
func openTelemetry(path string) (*telemetry.Emitter, error) {
	if path == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(path)
}
