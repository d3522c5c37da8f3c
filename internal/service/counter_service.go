// Package service holds the request-independent counting logic shared by the
// HTTP handlers: bound limits, counter lookup and concurrent comparison.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/ratcount/internal/rationals"
)

// progressLogStep is the progress increment between debug log lines.
const progressLogStep = 0.25

// ErrMaxValueExceeded is returned when n exceeds the configured limit.
var ErrMaxValueExceeded = errors.New("maximum n value exceeded")

// Outcome is the result of one counter in a comparison.
type Outcome struct {
	Algorithm string
	Count     uint64
	Duration  time.Duration
	Err       error
}

// Service counts reduced fractions on behalf of a transport.
type Service interface {
	// Count runs the counter registered as algoName for bound n.
	Count(ctx context.Context, algoName string, n int64) (uint64, error)
	// CountAll runs every registered counter for n concurrently. Outcomes are
	// ordered by registry name. Per-counter failures are reported in Outcome.Err.
	CountAll(ctx context.Context, n int64) ([]Outcome, error)
}

// CounterService implements Service on top of a CounterFactory.
type CounterService struct {
	factory rationals.CounterFactory
	maxN    int64
}

var _ Service = (*CounterService)(nil)

// NewCounterService returns a service drawing counters from factory.
// maxN bounds the accepted n; 0 disables the check.
func NewCounterService(factory rationals.CounterFactory, maxN int64) *CounterService {
	return &CounterService{factory: factory, maxN: maxN}
}

func (s *CounterService) checkLimit(n int64) error {
	if s.maxN > 0 && n > s.maxN {
		return ErrMaxValueExceeded
	}
	return nil
}

// Count validates n against the limit, resolves the counter and runs it
// without progress reporting. Negative n is rejected by the counter itself
// with rationals.ErrInvalidArgument.
func (s *CounterService) Count(ctx context.Context, algoName string, n int64) (uint64, error) {
	if err := s.checkLimit(n); err != nil {
		return 0, err
	}
	counter, err := s.factory.Get(algoName)
	if err != nil {
		return 0, err
	}
	return runCounter(ctx, counter, 0, n)
}

// runCounter counts with debug-level progress logging when counter supports
// observers.
func runCounter(ctx context.Context, counter rationals.Counter, idx int, n int64) (uint64, error) {
	if rc, ok := counter.(*rationals.RationalCounter); ok {
		subject := rationals.NewProgressSubject()
		subject.Register(rationals.NewLoggingObserver(log.Logger, progressLogStep))
		return rc.CountWithObservers(ctx, subject, idx, n)
	}
	return counter.Count(ctx, nil, idx, n)
}

// CountAll runs every registered counter for n on its own goroutine.
func (s *CounterService) CountAll(ctx context.Context, n int64) ([]Outcome, error) {
	if err := s.checkLimit(n); err != nil {
		return nil, err
	}

	names := s.factory.List()
	outcomes := make([]Outcome, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		idx, algo := i, name
		g.Go(func() error {
			counter, err := s.factory.Get(algo)
			if err != nil {
				outcomes[idx] = Outcome{Algorithm: algo, Err: err}
				return nil
			}
			start := time.Now()
			count, err := runCounter(ctx, counter, idx, n)
			outcomes[idx] = Outcome{Algorithm: algo, Count: count, Duration: time.Since(start), Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes, nil
}

// Consistent reports whether every successful outcome has the same count.
// It is false when no outcome succeeded.
func Consistent(outcomes []Outcome) bool {
	var ref *Outcome
	for i := range outcomes {
		if outcomes[i].Err != nil {
			continue
		}
		if ref == nil {
			ref = &outcomes[i]
			continue
		}
		if outcomes[i].Count != ref.Count {
			return false
		}
	}
	return ref != nil
}
