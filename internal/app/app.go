package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/ratcount/internal/cli"
	"github.com/agbru/ratcount/internal/config"
	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/logging"
	"github.com/agbru/ratcount/internal/orchestration"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/server"
	"github.com/agbru/ratcount/internal/timing"
	"github.com/agbru/ratcount/internal/ui"
)

// Application is a configured ratcount instance, ready to run in CLI,
// comparison or server mode.
type Application struct {
	// Config holds the parsed configuration.
	Config config.AppConfig
	// Factory provides the counter implementations.
	Factory rationals.CounterFactory
	// ErrWriter receives diagnostics, typically os.Stderr.
	ErrWriter io.Writer
}

// New parses args (program name first) and returns a validated Application.
// It also configures the global log level.
func New(args []string, errWriter io.Writer) (*Application, error) {
	return newWithFactory(args, errWriter, rationals.GlobalFactory())
}

func newWithFactory(args []string, errWriter io.Writer, factory rationals.CounterFactory) (*Application, error) {
	programName := "ratcount"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	// Validated by ParseConfig.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.Configure(errWriter, level)

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to completion, server, comparison or count mode and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer(ctx, out)
	}
	if a.Config.Compare {
		return a.runComparison(ctx, out)
	}
	return a.runCount(ctx, out)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer(ctx context.Context, out io.Writer) int {
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logging.NewLogger(out, "server")))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runComparison times the brute force reference against the sieve.
func (a *Application) runComparison(ctx context.Context, out io.Writer) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()
	return timing.RunComparison(ctx, out, a.Factory, a.Config.N, a.Config.Trials)
}

// runCount runs the selected counters concurrently and reports the result.
func (a *Application) runCount(ctx context.Context, out io.Writer) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	counters := cli.GetCountersToRun(a.Config, a.Factory)
	if len(counters) == 0 {
		fmt.Fprintf(a.ErrWriter, "No counter available for %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(counters, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteCounts(ctx, counters, a.Config, progressOut)

	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	if a.Config.Quiet {
		return a.reportQuiet(results, out)
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config, out)
}

// reportQuiet prints only the count. Failures and disagreements still
// produce their exit code, with the diagnostic on ErrWriter.
func (a *Application) reportQuiet(results []orchestration.CountResult, out io.Writer) int {
	best := orchestration.FindBestResult(results)
	if best == nil {
		var firstErr error
		for _, r := range results {
			if r.Err != nil {
				firstErr = r.Err
				break
			}
		}
		return apperrors.HandleCountError(firstErr, 0, a.ErrWriter, apperrors.DefaultColorProvider{})
	}
	for _, r := range results {
		if r.Err == nil && r.Count != best.Count {
			fmt.Fprintf(a.ErrWriter, "Status: Mismatch. %s counted %d, %s counted %d\n", best.Name, best.Count, r.Name, r.Count)
			return apperrors.ExitErrorMismatch
		}
	}
	cli.DisplayQuietResult(out, best.Count)
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h/--help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult is one counter's entry in the -json output.
type jsonResult struct {
	Algorithm string `json:"algorithm"`
	Duration  string `json:"duration"`
	Count     uint64 `json:"count"`
	Error     string `json:"error,omitempty"`
}

// printJSONResults writes results as an indented JSON array. The exit code
// reflects the first failure, if any.
func printJSONResults(results []orchestration.CountResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	var firstErr error
	for i, res := range results {
		jr := jsonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if firstErr == nil {
				firstErr = res.Err
			}
		} else {
			jr.Count = res.Count
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if firstErr != nil {
		return apperrors.HandleCountError(firstErr, 0, io.Discard, nil)
	}
	return apperrors.ExitSuccess
}
