package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/ratcount/internal/config"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/ui"
)

// GetCountersToRun returns the counters selected by cfg.Algo, sorted by
// registry name when "all" is selected. An unknown name yields nil.
func GetCountersToRun(cfg config.AppConfig, factory rationals.CounterFactory) []rationals.Counter {
	if cfg.Algo == "all" {
		keys := factory.List()
		counters := make([]rationals.Counter, 0, len(keys))
		for _, k := range keys {
			if c, err := factory.Get(k); err == nil {
				counters = append(counters, c)
			}
		}
		return counters
	}
	if c, err := factory.Get(cfg.Algo); err == nil {
		return []rationals.Counter{c}
	}
	return nil
}

// PrintExecutionConfig prints the bound, the timeout and the runtime.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Counting reduced fractions with denominator <= %s%d%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode announces a single count or a parallel comparison.
func PrintExecutionMode(counters []rationals.Counter, out io.Writer) {
	var modeDesc string
	if len(counters) > 1 {
		modeDesc = "Parallel comparison of all counters"
	} else if len(counters) == 1 {
		modeDesc = fmt.Sprintf("Single count with the %s%s%s counter",
			ui.ColorGreen(), counters[0].Name(), ui.ColorReset())
	} else {
		modeDesc = "No counter selected"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
