package timing

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/testutil"
)

// sleepyCounter returns count after sleeping for delay.
func sleepyCounter(name string, count uint64, delay time.Duration, calls *atomic.Int32) *rationals.MockCounter {
	return &rationals.MockCounter{
		NameText: name,
		Fn: func(ctx context.Context, n int64) (uint64, error) {
			if calls != nil {
				calls.Add(1)
			}
			time.Sleep(delay)
			return count, nil
		},
	}
}

func TestTimeCounter(t *testing.T) {
	t.Parallel()
	m := TimeCounter(context.Background(), rationals.NewCounter(rationals.Sieve{}), 100)
	if m.Err != nil {
		t.Fatalf("unexpected error: %v", m.Err)
	}
	if m.Name != "Incremental Sieve" || m.N != 100 || m.Count != 3045 {
		t.Errorf("unexpected measurement %+v", m)
	}
	if m.Duration <= 0 {
		t.Errorf("expected a positive duration, got %v", m.Duration)
	}
}

func TestTimeCounterRejectsNegative(t *testing.T) {
	t.Parallel()
	m := TimeCounter(context.Background(), rationals.NewCounter(rationals.BruteForce{}), -1)
	if !errors.Is(m.Err, rationals.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", m.Err)
	}
}

func TestSpeedRatio(t *testing.T) {
	t.Parallel()
	tests := []struct {
		slow, fast time.Duration
		want       uint64
	}{
		{10 * time.Second, time.Second, 10},
		{10 * time.Second, 3 * time.Second, 3},
		{time.Second, 2 * time.Second, 0},
		{50, 0, 50},
		{50, -5, 50},
		{0, time.Second, 0},
	}
	for _, tt := range tests {
		if got := speedRatio(tt.slow, tt.fast); got != tt.want {
			t.Errorf("speedRatio(%v, %v) = %d, want %d", tt.slow, tt.fast, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	var slowCalls, fastCalls atomic.Int32
	slow := sleepyCounter("slow", 33, 20*time.Millisecond, &slowCalls)
	fast := sleepyCounter("fast", 33, time.Millisecond, &fastCalls)

	cmp, err := Compare(context.Background(), slow, fast, 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slowCalls.Load() != 3 || fastCalls.Load() != 3 {
		t.Errorf("expected 3 trials each, got slow=%d fast=%d", slowCalls.Load(), fastCalls.Load())
	}
	if !cmp.Consistent {
		t.Error("expected consistent counts")
	}
	if cmp.Ratio < 1 {
		t.Errorf("expected the slow counter to be slower, ratio = %d", cmp.Ratio)
	}
	if cmp.Slow.N != 10 || cmp.Fast.Name != "fast" {
		t.Errorf("unexpected comparison %+v", cmp)
	}
}

func TestCompareZeroTrialsRunsOnce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := sleepyCounter("c", 1, 0, &calls)
	if _, err := Compare(context.Background(), c, c, 0, 0); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected one run per counter, got %d", calls.Load())
	}
}

func TestCompareInconsistent(t *testing.T) {
	t.Parallel()
	cmp, err := Compare(context.Background(), &rationals.MockCounter{Result: 5}, &rationals.MockCounter{Result: 6}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Consistent {
		t.Error("expected an inconsistency")
	}
}

func TestCompareStopsOnError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var fastCalls atomic.Int32
	_, err := Compare(context.Background(), &rationals.MockCounter{Err: boom}, sleepyCounter("fast", 1, 0, &fastCalls), 3, 2)
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if fastCalls.Load() != 0 {
		t.Error("fast counter should not run after the slow one failed")
	}
}

func TestCompareRealCounters(t *testing.T) {
	t.Parallel()
	f := rationals.NewDefaultFactory()
	cmp, err := Compare(context.Background(), f.MustGet(rationals.AlgoBruteForce), f.MustGet(rationals.AlgoSieve), 2000, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Consistent || cmp.Fast.Count != 1216589 {
		t.Errorf("unexpected comparison %+v", cmp)
	}
}

func TestPrintComparison(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintComparison(&buf, Comparison{
		Slow:       Measurement{Name: "Brute Force", N: 20000, Count: 121590397, Duration: 4 * time.Second},
		Fast:       Measurement{Name: "Incremental Sieve", N: 20000, Count: 121590397, Duration: 8 * time.Millisecond},
		Ratio:      500,
		Consistent: true,
	})
	out := testutil.StripAnsiCodes(buf.String())
	for _, want := range []string{
		"--- Timing Summary ---",
		"Brute Force",
		"121590397",
		"For N = 20000, Incremental Sieve is 500 times faster than Brute Force",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunComparison(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		counters map[string]rationals.Counter
		n        int64
		want     int
		wantOut  string
	}{
		{
			name: "Consistent",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: rationals.NewCounter(rationals.BruteForce{}),
				rationals.AlgoSieve:      rationals.NewCounter(rationals.Sieve{}),
			},
			n:    200,
			want: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: &rationals.MockCounter{Result: 1},
				rationals.AlgoSieve:      &rationals.MockCounter{Result: 2},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "MissingSieve",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: &rationals.MockCounter{},
			},
			want: apperrors.ExitErrorGeneric,
		},
		{
			name: "NegativeBound",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: rationals.NewCounter(rationals.BruteForce{}),
				rationals.AlgoSieve:      rationals.NewCounter(rationals.Sieve{}),
			},
			n:    -1,
			want: apperrors.ExitErrorConfig,
		},
		{
			name: "Timeout",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: &rationals.MockCounter{Err: context.DeadlineExceeded},
				rationals.AlgoSieve:      &rationals.MockCounter{},
			},
			want:    apperrors.ExitErrorTimeout,
			wantOut: "Timing interrupted",
		},
		{
			name: "Canceled",
			counters: map[string]rationals.Counter{
				rationals.AlgoBruteForce: &rationals.MockCounter{},
				rationals.AlgoSieve:      &rationals.MockCounter{Err: context.Canceled},
			},
			want:    apperrors.ExitErrorCanceled,
			wantOut: "Status: Canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			got := RunComparison(context.Background(), &buf, rationals.NewTestFactory(tt.counters), tt.n, 1)
			if got != tt.want {
				t.Errorf("RunComparison() = %d, want %d\n%s", got, tt.want, buf.String())
			}
			if tt.wantOut != "" && !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("expected %q in output:\n%s", tt.wantOut, buf.String())
			}
		})
	}
}
