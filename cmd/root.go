package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/beacon/internal/config"
	"github.com/papapumpkin/beacon/internal/jobs"
)

var rootCmd = &cobra.Command{
	Use:          "beacon",
	Short:        "Watch a project and report compiler diagnostics, errors first",
	Long:         "Beacon reruns a build job whenever sources change and turns its stderr into a navigable list of errors and warnings.",
	SilenceUsage: true,
	RunE:         runWatch,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .beacon.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.StringP("job", "j", "", "job to run (default from the jobs file)")
	pf.StringP("work-dir", "w", ".", "project directory")
	pf.BoolP("reverse", "r", false, "show items in reverse order")
	pf.BoolP("summary", "s", false, "show item titles only")

	bindFlags()
}

// bindFlags binds the persistent flags to their viper keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		"verbose":  "verbose",
		"job":      "job",
		"work_dir": "work-dir",
		"reverse":  "reverse",
		"summary":  "summary",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".beacon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("BEACON")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session is the resolved configuration and job for one command invocation.
type session struct {
	cfg      config.Config
	manifest *jobs.Manifest
	job      jobs.Job
}

// loadSession reads the config and the jobs file, then resolves the job to run.
func loadSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	jobsPath := cfg.JobsFile
	if !filepath.IsAbs(jobsPath) {
		jobsPath = filepath.Join(cfg.WorkDir, jobsPath)
	}
	manifest, err := jobs.Load(jobsPath)
	if err != nil {
		return nil, err
	}
	job, err := manifest.Lookup(cfg.Job)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, manifest: manifest, job: job}, nil
}
