// Package rationals counts the rational numbers in [0, 1] that can be written
// in lowest terms p/q with q ≤ N. It exposes a `Counter` interface that hides
// the underlying algorithm, so the brute-force reference, the incremental
// sieve and the totient-sum method can be run and compared interchangeably.
package rationals

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var (
	countsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rationals_counts_total",
			Help: "The total number of rational counts processed",
		},
		[]string{"algorithm", "status"},
	)
	countDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rationals_count_duration_seconds",
			Help: "The duration of rational counts in seconds",
		},
		[]string{"algorithm"},
	)
)

// Counter defines the public interface for a rational counter.
// It is the abstraction the orchestration layer, the HTTP service and the
// timing harness use to drive the different counting algorithms.
type Counter interface {
	// Count returns the number of distinct fractions p/q in [0, 1] in lowest
	// terms with q ≤ n. It is safe for concurrent use and honours context
	// cancellation. Progress updates are sent asynchronously to progressChan,
	// which may be nil.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates.
	//   - calcIndex: A unique index for the counter instance.
	//   - n: The denominator bound.
	//
	// Returns:
	//   - uint64: The number of fractions.
	//   - error: An InvalidArgumentError for negative n, or a context error.
	Count(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64) (uint64, error)

	// Name returns the display name of the algorithm (e.g., "Incremental Sieve").
	Name() string
}

// coreCounter is the internal interface for a pure counting algorithm.
// Implementations may assume n ≥ 0; validation happens in the decorator.
type coreCounter interface {
	CountCore(ctx context.Context, reporter ProgressReporter, n int64) (uint64, error)
	Name() string
}

// RationalCounter implements Counter by decorating a coreCounter with
// input validation, tracing, metrics, logging and progress fan-out.
type RationalCounter struct {
	core coreCounter
}

// NewCounter wraps a core algorithm in a RationalCounter.
// It panics if core is nil.
func NewCounter(core coreCounter) Counter {
	if core == nil {
		panic("rationals: the `coreCounter` implementation cannot be nil")
	}
	return &RationalCounter{core: core}
}

// Name delegates to the wrapped algorithm.
func (c *RationalCounter) Name() string {
	return c.core.Name()
}

// Count adapts progressChan into a ProgressSubject and delegates to
// CountWithObservers.
func (c *RationalCounter) Count(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64) (uint64, error) {
	subject := NewProgressSubject()
	if progressChan != nil {
		subject.Register(NewChannelObserver(progressChan))
	}
	return c.CountWithObservers(ctx, subject, calcIndex, n)
}

// CountWithObservers runs the count with observer-based progress reporting.
// Negative bounds are rejected before any work or progress is reported.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - subject: The progress subject with registered observers. If nil, progress is ignored.
//   - calcIndex: A unique index for the counter instance.
//   - n: The denominator bound.
//
// Returns:
//   - uint64: The number of fractions.
//   - error: An error if one occurred.
func (c *RationalCounter) CountWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n int64) (result uint64, err error) {
	if err := validateBound(n); err != nil {
		return 0, err
	}

	ctx, span := otel.Tracer("rationals").Start(ctx, "Count")
	span.SetAttributes(
		attribute.String("algorithm", c.core.Name()),
		attribute.Int64("n", n),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		algoName := c.core.Name()
		countsTotal.WithLabelValues(algoName, status).Inc()
		countDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int64("n", n).
			Uint64("count", result).
			Float64("duration", duration).
			Str("status", status).
			Msg("count completed")
	}()

	var reporter ProgressReporter
	if subject != nil {
		reporter = subject.AsProgressReporter(calcIndex)
	} else {
		reporter = func(float64) {}
	}

	if n == 0 {
		reporter(1.0)
		return 1, nil
	}

	result, err = c.core.CountCore(ctx, reporter, n)
	if err == nil {
		reporter(1.0)
	}
	return result, err
}
