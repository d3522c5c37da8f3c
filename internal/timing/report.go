package timing

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agbru/ratcount/internal/cli"
	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/ui"
)

// PrintComparison writes the timing table followed by the speed-up line.
func PrintComparison(out io.Writer, cmp Comparison) {
	fmt.Fprintf(out, "\n--- Timing Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sCounter%s\t%sBest time%s\t%sCount%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, m := range []Measurement{cmp.Slow, cmp.Fast} {
		duration := cli.FormatExecutionDuration(m.Duration)
		if m.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%d\n",
			ui.ColorBlue(), m.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			m.Count)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	fmt.Fprintf(out, "\nFor N = %s%d%s, %s is %s%d%s times faster than %s\n",
		ui.ColorMagenta(), cmp.Slow.N, ui.ColorReset(),
		cmp.Fast.Name, ui.ColorGreen(), cmp.Ratio, ui.ColorReset(), cmp.Slow.Name)
}

// RunComparison times the brute-force counter against the sieve from factory
// and prints the report. It returns the process exit code.
func RunComparison(ctx context.Context, out io.Writer, factory rationals.CounterFactory, n int64, trials int) int {
	slow, err := factory.Get(rationals.AlgoBruteForce)
	if err != nil {
		fmt.Fprintf(out, "%sCritical error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	fast, err := factory.Get(rationals.AlgoSieve)
	if err != nil {
		fmt.Fprintf(out, "%sCritical error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	fmt.Fprintf(out, "--- Timing Mode: %s vs %s, best of %d ---\n", slow.Name(), fast.Name(), max(trials, 1))

	cmp, err := Compare(ctx, slow, fast, n, trials)
	if apperrors.IsContextError(err) {
		fmt.Fprintf(out, "Timing interrupted before both counters finished.\n")
		return apperrors.HandleCountError(err, 0, out, cli.CLIColorProvider{})
	}
	if err != nil {
		failed := cmp.Slow
		if failed.Err == nil {
			failed = cmp.Fast
		}
		return apperrors.HandleCountError(apperrors.NewCountError(failed.Name, err), failed.Duration, out, cli.CLIColorProvider{})
	}

	PrintComparison(out, cmp)
	if !cmp.Consistent {
		fmt.Fprintf(out, "\n%sCRITICAL ERROR! %s returned %d but %s returned %d.%s\n",
			ui.ColorRed(), cmp.Slow.Name, cmp.Slow.Count, cmp.Fast.Name, cmp.Fast.Count, ui.ColorReset())
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
