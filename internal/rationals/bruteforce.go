package rationals

import "context"

// BruteForce is the reference counter. For every denominator a ≤ n it tests
// each numerator b in [1, a] for coprimality, so it performs O(n²) gcd
// computations. It exists as the correctness oracle for the faster methods.
type BruteForce struct{}

// Name returns the display name of the algorithm.
func (BruteForce) Name() string {
	return "Brute Force"
}

// CountCore counts the fractions by direct enumeration.
// The accumulator starts at 1 to account for 0/1; 1/1 is counted once, at a = 1.
func (BruteForce) CountCore(ctx context.Context, reporter ProgressReporter, n int64) (uint64, error) {
	total := uint64(1)
	lastReported := 0.0
	fn := float64(n)
	for a := int64(1); a <= n; a++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for b := int64(1); b <= a; b++ {
			if gcd(a, b) == 1 {
				total++
			}
		}
		// Work up to denominator a grows with a².
		done := float64(a) / fn
		ReportProgress(reporter, &lastReported, done*done)
	}
	return total, nil
}

// CountBruteForce returns the number of fractions in [0, 1] in lowest terms
// with denominator at most n, by exhaustive enumeration.
func CountBruteForce(n int64) (uint64, error) {
	if err := validateBound(n); err != nil {
		return 0, err
	}
	return BruteForce{}.CountCore(context.Background(), noopReporter, n)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
