package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/beacon/internal/config"
	"github.com/papapumpkin/beacon/internal/report"
	"github.com/papapumpkin/beacon/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Build a report from captured stderr (file or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening capture: %w", err)
		}
		defer f.Close()
		in, name = f, args[0]
	}

	rep, err := report.FromReader(in)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	if cfg.Reverse {
		rep.Reverse()
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return rep.WriteJSON(cmd.OutOrStdout())
	}

	p := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	p.Summary = cfg.Summary
	p.PrintReport(rep)
	p.Verdict(name, rep.Stats, 0)
	return nil
}
