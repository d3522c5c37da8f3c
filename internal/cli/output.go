package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// OutputConfig selects how a count is reported.
type OutputConfig struct {
	// Quiet prints the bare count, for scripting.
	Quiet bool
	// Details adds timing and the asymptotic estimate.
	Details bool
}

// FormatQuietResult returns count as a plain decimal string.
func FormatQuietResult(count uint64) string {
	return strconv.FormatUint(count, 10)
}

// DisplayQuietResult prints count on a single line.
func DisplayQuietResult(out io.Writer, count uint64) {
	fmt.Fprintln(out, FormatQuietResult(count))
}

// DisplayResultWithConfig reports count for bound n according to config.
func DisplayResultWithConfig(out io.Writer, count uint64, n int64, duration time.Duration, config OutputConfig) {
	if config.Quiet {
		DisplayQuietResult(out, count)
		return
	}
	DisplayResult(count, n, duration, config.Details, out)
}
