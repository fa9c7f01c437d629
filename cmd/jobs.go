package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/beacon/internal/config"
	"github.com/papapumpkin/beacon/internal/jobs"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the jobs beacon can run",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		m, err := jobs.Load(filepath.Join(cfg.WorkDir, cfg.JobsFile))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range m.Names() {
			marker := " "
			if name == m.DefaultJob {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-10s %s\n", marker, name, strings.Join(m.Jobs[name].Command, " "))
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in jobs to a jobs file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path := filepath.Join(cfg.WorkDir, cfg.JobsFile)
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := jobs.Save(path, jobs.Defaults()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing jobs file")
	rootCmd.AddCommand(jobsCmd, initCmd)
}
