package rationals

import "context"

// TotientSum counts fractions through the identity |F_n| = 1 + Σ φ(q), q = 1..n:
// exactly φ(q) numerators in [1, q] are coprime to q, and 0/1 is added once.
// φ is computed for all q ≤ n with an Eratosthenes-style sieve.
type TotientSum struct{}

// Name returns the display name of the algorithm.
func (TotientSum) Name() string {
	return "Totient Sum"
}

// CountCore computes 1 + Σ φ(q) for q ≤ n.
func (TotientSum) CountCore(ctx context.Context, reporter ProgressReporter, n int64) (uint64, error) {
	lastReported := 0.0
	phi, err := totients(ctx, n, func(p float64) {
		ReportProgress(reporter, &lastReported, 0.5*p)
	})
	if err != nil {
		return 0, err
	}

	total := uint64(1)
	fn := float64(n)
	for q := int64(1); q <= n; q++ {
		total += uint64(phi[q])
		if q&cancelCheckMask == 0 {
			ReportProgress(reporter, &lastReported, 0.5+0.5*float64(q)/fn)
		}
	}
	return total, nil
}

// totients returns φ(q) for 0 ≤ q ≤ n.
func totients(ctx context.Context, n int64, reporter ProgressReporter) ([]int64, error) {
	phi := make([]int64, n+1)
	for i := range phi {
		phi[i] = int64(i)
	}
	for p := int64(2); p <= n; p++ {
		if p&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reporter(float64(p) / float64(n))
		}
		if phi[p] != p {
			continue // composite: already reduced by a smaller prime
		}
		for m := p; m <= n; m += p {
			phi[m] -= phi[m] / p
		}
	}
	return phi, nil
}

// CountTotientSum is the context-free form of TotientSum.
func CountTotientSum(n int64) (uint64, error) {
	if err := validateBound(n); err != nil {
		return 0, err
	}
	return TotientSum{}.CountCore(context.Background(), noopReporter, n)
}
