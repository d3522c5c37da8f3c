// Package config provides the configuration management for the ratcount
// application. It defines the configuration structure, parses command-line
// flags, applies environment overrides and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/logging"
)

// EnvPrefix is the prefix of every environment variable read by ratcount.
const EnvPrefix = "RATCOUNT_"

// Default configuration values.
const (
	// DefaultN is the default denominator bound.
	DefaultN int64 = 1000
	// DefaultTimeout is the default count timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo runs every registered counter.
	DefaultAlgo = "all"
	// DefaultMaxN caps the accepted bound. 0 disables the cap.
	DefaultMaxN int64 = 10_000_000
	// DefaultTrials is the number of timing runs per counter in compare mode.
	DefaultTrials = 3
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the denominator bound to count for.
	N int64
	// Algo is "all" or a registered counter name.
	Algo string
	// Timeout bounds a single CLI run.
	Timeout time.Duration
	// Details adds timing and the asymptotic estimate to the report.
	Details bool
	// JSONOutput prints results as JSON.
	JSONOutput bool
	// Quiet prints the bare count only.
	Quiet bool
	// NoColor disables ANSI colors. NO_COLOR is honored as well.
	NoColor bool
	// ServerMode starts the HTTP API instead of the CLI.
	ServerMode bool
	// Port is the listen port in server mode.
	Port string
	// MaxN is the largest bound accepted on the command line and by the
	// HTTP API. 0 means unlimited.
	MaxN int64
	// Compare runs the timing harness (brute force against the sieve).
	Compare bool
	// Trials is the number of timed runs per counter in compare mode.
	Trials int
	// LogLevel is a zerolog level name.
	LogLevel string
	// Completion, if set, prints a completion script for the named shell
	// ("bash", "zsh" or "fish") and exits.
	Completion string
}

// Validate checks the semantic consistency of the configuration.
// availableAlgos lists the registered counter names.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.N < 0 {
		return apperrors.NewConfigError("denominator bound cannot be negative: %d", c.N)
	}
	if c.MaxN < 0 {
		return apperrors.NewConfigError("max-n cannot be negative: %d", c.MaxN)
	}
	if c.MaxN > 0 && c.N > c.MaxN {
		return apperrors.NewConfigError("denominator bound %d exceeds max-n %d", c.N, c.MaxN)
	}
	if c.Trials < 1 {
		return apperrors.NewConfigError("trials must be at least 1, got %d", c.Trials)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unknown log level: '%s'", c.LogLevel)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses args (typically os.Args[1:]) into an AppConfig, applies
// RATCOUNT_* environment overrides to flags left unset, and validates the
// result. Errors and usage go to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Counter to use: 'all' (default) or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.Int64Var(&config.N, "n", DefaultN, "Denominator bound N: count reduced fractions a/b in [0,1] with b <= N.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Details, "d", false, "Display timing and the asymptotic estimate.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the count.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.Int64Var(&config.MaxN, "max-n", DefaultMaxN, "Largest N accepted by the CLI and the HTTP API (0 for no limit).")
	fs.BoolVar(&config.Compare, "compare", false, "Time the brute-force counter against the sieve.")
	fs.IntVar(&config.Trials, "trials", DefaultTrials, "Timed runs per counter in compare mode (best is kept).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, errors.New("invalid configuration")
	}

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
