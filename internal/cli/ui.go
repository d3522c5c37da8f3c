// Package cli renders the command-line interface: the asynchronous progress
// display, the formatted count and the execution banner.
package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/ui"
)

// FormatExecutionDuration formats d with microsecond resolution below a
// millisecond, millisecond resolution below a second, and d.String() above.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate is the refresh period of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState holds the latest progress of each concurrent counter.
type ProgressState struct {
	progresses  []float64
	numCounters int
}

// NewProgressState tracks numCounters counters, all starting at 0.
func NewProgressState(numCounters int) *ProgressState {
	return &ProgressState{
		progresses:  make([]float64, numCounters),
		numCounters: numCounters,
	}
}

// Update records value for the counter at index. Out of range indices are
// ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across all counters.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCounters == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCounters)
}

// progressBar renders progress (clamped to [0,1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	progress = max(0.0, min(progress, 1.0))
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress drives the spinner and progress bar until progressChan is
// closed, then prints a final 100% line. It is meant to run in its own
// goroutine and calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan rationals.ProgressUpdate, numCounters int, out io.Writer) {
	defer wg.Done()
	if numCounters <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numCounters > 1 {
		label = "Avg progress"
	}

	state := NewProgressWithETA(numCounters)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			state.UpdateWithETA(update.CalculatorIndex, update.Value)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				FormatProgressBarWithETA(state.CalculateAverage(), state.GetETA(), ProgressBarWidth)))
		}
	}
}

// EstimateCount returns the asymptotic estimate 3N²/π² of the count for n.
func EstimateCount(n int64) float64 {
	fn := float64(n)
	return 3 * fn * fn / (math.Pi * math.Pi)
}

// DisplayResult prints count for bound n. With details it adds the duration,
// the asymptotic estimate 3N²/π² and the relative error of that estimate.
func DisplayResult(count uint64, n int64, duration time.Duration, details bool, out io.Writer) {
	fmt.Fprintf(out, "Reduced fractions in [0,1] with denominator <= %s%s%s: %s%s%s\n",
		ui.ColorMagenta(), formatNumberString(strconv.FormatInt(n, 10)), ui.ColorReset(),
		ui.ColorGreen(), formatNumberString(strconv.FormatUint(count, 10)), ui.ColorReset())

	if !details {
		return
	}

	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "Count time            : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())

	estimate := EstimateCount(n)
	fmt.Fprintf(out, "Estimate 3N²/π²       : %s%.1f%s\n", ui.ColorCyan(), estimate, ui.ColorReset())
	if count > 0 {
		relErr := (float64(count) - estimate) / float64(count)
		fmt.Fprintf(out, "Relative error        : %s%.4f%%%s\n", ui.ColorCyan(), relErr*100, ui.ColorReset())
	}
}

// formatNumberString inserts thousands separators into a decimal string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
