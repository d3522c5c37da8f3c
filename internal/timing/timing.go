// Package timing measures counters against each other: it times single runs,
// keeps the best of several trials and reports the speed ratio.
package timing

import (
	"context"
	"time"

	"github.com/agbru/ratcount/internal/rationals"
)

// Measurement is one timed count.
type Measurement struct {
	Name     string
	N        int64
	Count    uint64
	Duration time.Duration
	Err      error
}

// Comparison is the best measurement of a slow and a fast counter for the
// same bound.
type Comparison struct {
	Slow Measurement
	Fast Measurement
	// Ratio is Slow.Duration / Fast.Duration, truncated.
	Ratio uint64
	// Consistent reports whether both counters returned the same count.
	Consistent bool
}

// TimeCounter runs counter once for n and records the wall time. Progress
// is not reported so rendering never skews the measurement.
func TimeCounter(ctx context.Context, counter rationals.Counter, n int64) Measurement {
	start := time.Now()
	count, err := counter.Count(ctx, nil, 0, n)
	return Measurement{
		Name:     counter.Name(),
		N:        n,
		Count:    count,
		Duration: time.Since(start),
		Err:      err,
	}
}

// runner repeats a measurement and keeps the fastest run.
type runner struct {
	ctx    context.Context
	trials int
}

func newRunner(ctx context.Context, trials int) *runner {
	return &runner{ctx: ctx, trials: max(trials, 1)}
}

// best returns the fastest of r.trials runs. The first failing run is
// returned as is.
func (r *runner) best(counter rationals.Counter, n int64) Measurement {
	var best Measurement
	for i := 0; i < r.trials; i++ {
		m := TimeCounter(r.ctx, counter, n)
		if m.Err != nil {
			return m
		}
		if i == 0 || m.Duration < best.Duration {
			best = m
		}
	}
	return best
}

// Compare times slow and fast for n, keeping the best of trials runs each.
// It returns the first counter error encountered.
func Compare(ctx context.Context, slow, fast rationals.Counter, n int64, trials int) (Comparison, error) {
	r := newRunner(ctx, trials)

	slowM := r.best(slow, n)
	if slowM.Err != nil {
		return Comparison{Slow: slowM}, slowM.Err
	}
	fastM := r.best(fast, n)
	if fastM.Err != nil {
		return Comparison{Slow: slowM, Fast: fastM}, fastM.Err
	}

	return Comparison{
		Slow:       slowM,
		Fast:       fastM,
		Ratio:      speedRatio(slowM.Duration, fastM.Duration),
		Consistent: slowM.Count == fastM.Count,
	}, nil
}

// speedRatio is slow / fast truncated toward zero. A non-positive fast
// duration counts as one nanosecond.
func speedRatio(slow, fast time.Duration) uint64 {
	if fast <= 0 {
		fast = time.Nanosecond
	}
	if slow <= 0 {
		return 0
	}
	return uint64(slow / fast)
}
