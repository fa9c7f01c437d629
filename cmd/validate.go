package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

// errMissingTools makes validate exit non-zero when a job cannot start.
var errMissingTools = errors.New("some jobs cannot be run")

var validateCmd = &cobra.Command{
	Use:   "validate [job...]",
	Short: "Check that the programs jobs run are available",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = s.manifest.Names()
	}

	w := cmd.ErrOrStderr()
	ok := true
	for _, name := range names {
		job, err := s.manifest.Lookup(name)
		if err != nil {
			return err
		}
		path, err := exec.LookPath(job.Command[0])
		if err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", job.Name, err)
			ok = false
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", job.Name, path)
	}

	if !ok {
		return errMissingTools
	}
	return nil
}
