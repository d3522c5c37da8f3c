package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/agbru/ratcount/internal/errors"
)

// envOverrides mirrors the flags that may be set from the environment.
// A nil field means the variable is absent.
//
// Supported variables (all prefixed with RATCOUNT_):
// N, ALGO, TIMEOUT, DETAILS, JSON, QUIET, NO_COLOR, SERVER, PORT, MAX_N,
// COMPARE, TRIALS, LOG_LEVEL.
type envOverrides struct {
	N          *int64         `env:"N"`
	Algo       *string        `env:"ALGO"`
	Timeout    *time.Duration `env:"TIMEOUT"`
	Details    *bool          `env:"DETAILS"`
	JSONOutput *bool          `env:"JSON"`
	Quiet      *bool          `env:"QUIET"`
	NoColor    *bool          `env:"NO_COLOR"`
	ServerMode *bool          `env:"SERVER"`
	Port       *string        `env:"PORT"`
	MaxN       *int64         `env:"MAX_N"`
	Compare    *bool          `env:"COMPARE"`
	Trials     *int           `env:"TRIALS"`
	LogLevel   *string        `env:"LOG_LEVEL"`
}

// loadEnvOverrides reads the RATCOUNT_* variables.
func loadEnvOverrides() (envOverrides, error) {
	var raw envOverrides
	if err := env.ParseWithOptions(&raw, env.Options{Prefix: EnvPrefix}); err != nil {
		return envOverrides{}, apperrors.NewConfigError("parse env: %v", err)
	}
	return raw, nil
}

// isFlagSet reports whether any of names was set on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// override assigns *src to *dst when src is present and none of the flags
// were given explicitly.
func override[T any](fs *flag.FlagSet, dst *T, src *T, flags ...string) {
	if src != nil && !isFlagSet(fs, flags...) {
		*dst = *src
	}
}

// applyEnvOverrides applies environment values to the flags that were not
// explicitly set. Priority: CLI flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	raw, err := loadEnvOverrides()
	if err != nil {
		return err
	}

	override(fs, &config.N, raw.N, "n")
	override(fs, &config.Algo, raw.Algo, "algo")
	override(fs, &config.Timeout, raw.Timeout, "timeout")
	override(fs, &config.Details, raw.Details, "d", "details")
	override(fs, &config.JSONOutput, raw.JSONOutput, "json")
	override(fs, &config.Quiet, raw.Quiet, "quiet", "q")
	override(fs, &config.NoColor, raw.NoColor, "no-color")
	override(fs, &config.ServerMode, raw.ServerMode, "server")
	override(fs, &config.Port, raw.Port, "port")
	override(fs, &config.MaxN, raw.MaxN, "max-n")
	override(fs, &config.Compare, raw.Compare, "compare")
	override(fs, &config.Trials, raw.Trials, "trials")
	override(fs, &config.LogLevel, raw.LogLevel, "log-level")
	return nil
}
