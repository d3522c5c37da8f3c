package rationals

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type countFunc func(n int64) (uint64, error)

var countFuncs = map[string]countFunc{
	"BruteForce": CountBruteForce,
	"Sieve":      CountSieve,
	"TotientSum": CountTotientSum,
}

func TestKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want uint64
	}{
		{0, 1},  // 0/1
		{1, 2},  // 0/1, 1/1
		{2, 3},  // 0/1, 1/2, 1/1
		{3, 5},  // 0/1, 1/3, 1/2, 2/3, 1/1
		{4, 7},  // 0/1, 1/4, 1/3, 1/2, 2/3, 3/4, 1/1
		{5, 11}, // adds 1/5, 2/5, 3/5, 4/5
		{6, 13}, // adds 1/6, 5/6
		{10, 33},
		{100, 3045},
	}

	for name, fn := range countFuncs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, tc := range tests {
				got, err := fn(tc.n)
				if err != nil {
					t.Fatalf("n=%d: unexpected error: %v", tc.n, err)
				}
				if got != tc.want {
					t.Errorf("n=%d: got %d, want %d", tc.n, got, tc.want)
				}
			}
		})
	}
}

func TestNegativeBoundIsRejected(t *testing.T) {
	t.Parallel()
	for name, fn := range countFuncs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, n := range []int64{-1, -2, -1000} {
				got, err := fn(n)
				if err == nil {
					t.Fatalf("n=%d: expected error, got count %d", n, got)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("n=%d: expected ErrInvalidArgument, got %v", n, err)
				}
				var argErr *InvalidArgumentError
				if !errors.As(err, &argErr) || argErr.N != n {
					t.Errorf("n=%d: expected InvalidArgumentError carrying n, got %#v", n, err)
				}
			}
		})
	}
}

func TestSieveMatchesBruteForce(t *testing.T) {
	t.Parallel()
	for n := int64(0); n <= 500; n++ {
		want, err := CountBruteForce(n)
		if err != nil {
			t.Fatalf("brute force n=%d: %v", n, err)
		}
		got, err := CountSieve(n)
		if err != nil {
			t.Fatalf("sieve n=%d: %v", n, err)
		}
		if got != want {
			t.Fatalf("n=%d: sieve=%d brute=%d", n, got, want)
		}
		tot, err := CountTotientSum(n)
		if err != nil {
			t.Fatalf("totient n=%d: %v", n, err)
		}
		if tot != want {
			t.Fatalf("n=%d: totient=%d brute=%d", n, tot, want)
		}
	}
}

func TestSieveIsMonotonic(t *testing.T) {
	t.Parallel()
	prev, err := CountSieve(0)
	if err != nil {
		t.Fatal(err)
	}
	for n := int64(1); n <= 2000; n++ {
		cur, err := CountSieve(n)
		if err != nil {
			t.Fatal(err)
		}
		if cur < prev {
			t.Fatalf("count decreased from %d to %d at n=%d", prev, cur, n)
		}
		// Exactly φ(n) ≥ 1 new fractions appear at each denominator.
		if cur == prev {
			t.Fatalf("no new fraction at n=%d", n)
		}
		prev = cur
	}
}

func TestSieveLargeBound(t *testing.T) {
	t.Parallel()
	got, err := CountSieve(20000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 121590397 {
		t.Errorf("got %d, want 121590397", got)
	}
}

func TestGCD(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want int64 }{
		{1, 1, 1},
		{4, 2, 2},
		{2, 4, 2},
		{12, 18, 6},
		{17, 5, 1},
		{9, 0, 9},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_%d", tc.a, tc.b), func(t *testing.T) {
			if got := gcd(tc.a, tc.b); got != tc.want {
				t.Errorf("gcd(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestTotients(t *testing.T) {
	t.Parallel()
	want := []int64{0, 1, 1, 2, 2, 4, 2, 6, 4, 6, 4, 10, 4}
	phi, err := totients(context.Background(), int64(len(want)-1), noopReporter)
	if err != nil {
		t.Fatal(err)
	}
	for q, w := range want {
		if phi[q] != w {
			t.Errorf("φ(%d) = %d, want %d", q, phi[q], w)
		}
	}
}

func TestCoreCountersHonourCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cores := []coreCounter{BruteForce{}, Sieve{}, TotientSum{}}
	for _, core := range cores {
		t.Run(core.Name(), func(t *testing.T) {
			t.Parallel()
			_, err := core.CountCore(ctx, noopReporter, 50_000)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func BenchmarkBruteForce2000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CountBruteForce(2000)
	}
}

func BenchmarkSieve2000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CountSieve(2000)
	}
}

func BenchmarkSieve20000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CountSieve(20000)
	}
}

func BenchmarkTotientSum20000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = CountTotientSum(20000)
	}
}
