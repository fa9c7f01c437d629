package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all runtime configuration for a beacon session.
// Values are populated from .beacon.yaml, BEACON_* env vars, and CLI flags.
type Config struct {
	Job           string        `mapstructure:"job"`
	JobsFile      string        `mapstructure:"jobs_file"`
	WorkDir       string        `mapstructure:"work_dir"`
	WatchPaths    []string      `mapstructure:"watch"`
	IgnoreDirs    []string      `mapstructure:"ignore_dirs"`
	Extensions    []string      `mapstructure:"extensions"`
	Debounce      time.Duration `mapstructure:"debounce"`
	Reverse       bool          `mapstructure:"reverse"`
	Summary       bool          `mapstructure:"summary"`
	TelemetryPath string        `mapstructure:"telemetry_path"`
	Verbose       bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("job", "")
	viper.SetDefault("jobs_file", "beacon.toml")
	viper.SetDefault("work_dir", ".")
	viper.SetDefault("watch", []string{"src", "tests", "benches", "examples", "Cargo.toml", "build.rs"})
	viper.SetDefault("ignore_dirs", []string{".git", "target", "node_modules"})
	viper.SetDefault("extensions", []string{".rs", ".toml"})
	viper.SetDefault("debounce", 100*time.Millisecond)
	viper.SetDefault("reverse", false)
	viper.SetDefault("summary", false)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Debounce <= 0 {
		return Config{}, fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidConfig, cfg.Debounce)
	}
	if cfg.WorkDir == "" {
		return Config{}, fmt.Errorf("%w: work_dir must not be empty", ErrInvalidConfig)
	}
	return cfg, nil
}
