// Package orchestration runs one or more counters concurrently and compares
// their outcomes.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/ratcount/internal/cli"
	"github.com/agbru/ratcount/internal/config"
	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/ui"
)

// CountResult is the outcome of one counter run.
type CountResult struct {
	// Name is the counter's display name.
	Name string
	// Count is the number of reduced fractions. Meaningless when Err is set.
	Count uint64
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error returned by the counter, if any.
	Err error
}

// ProgressBufferMultiplier sizes the progress channel per counter so slow
// rendering does not stall the counters.
const ProgressBufferMultiplier = 5

// ExecuteCounts runs every counter for cfg.N concurrently and returns their
// results in input order. Progress is rendered to out while they run.
// A failing counter does not cancel the others.
func ExecuteCounts(ctx context.Context, counters []rationals.Counter, cfg config.AppConfig, out io.Writer) []CountResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CountResult, len(counters))
	progressChan := make(chan rationals.ProgressUpdate, len(counters)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(counters), out)

	for i, c := range counters {
		idx, counter := i, c
		g.Go(func() error {
			start := time.Now()
			count, err := counter.Count(ctx, progressChan, idx, cfg.N)
			results[idx] = CountResult{
				Name: counter.Name(), Count: count, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// prints a summary table, and reports the count when every successful
// counter agrees. It returns the process exit code: ExitErrorMismatch when
// two successful counters disagree.
func AnalyzeComparisonResults(results []CountResult, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var best *CountResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sCounter%s\t%sDuration%s\t%sCount%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status, count string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			count = "-"
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			count = cli.FormatQuietResult(res.Count)
			successCount++
			if best == nil {
				best = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			count, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No counter could complete.\n")
		return apperrors.HandleCountError(firstError, 0, out, cli.CLIColorProvider{})
	}

	for _, res := range results {
		if res.Err == nil && res.Count != best.Count {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The counters disagree (%s: %d, %s: %d).\n",
				best.Name, best.Count, res.Name, res.Count)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	cli.DisplayResult(best.Count, cfg.N, best.Duration, cfg.Details, out)
	return apperrors.ExitSuccess
}

// FindBestResult returns the fastest successful result, or nil.
func FindBestResult(results []CountResult) *CountResult {
	var best *CountResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
