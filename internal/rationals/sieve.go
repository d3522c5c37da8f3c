package rationals

import "context"

// cancelCheckMask sets how often the sieve loops poll the context:
// once every cancelCheckMask+1 denominators.
const cancelCheckMask = 1<<12 - 1

// Sieve counts fractions with an incremental sieve over the divisor lattice.
//
// Denominators are visited in increasing order. When denominator a is reached,
// its correction table entry holds the number of numerators in [0, a] that
// have not already been claimed by a smaller denominator's reduced form
// (a+1 if nothing was deducted yet). That amount is added to the total and
// deducted from every proper multiple of a, since each fraction b/a reappears
// as kb/ka. The result is an exact inclusion-exclusion, and the harmonic
// sum over multiples keeps the cost at O(n log n).
type Sieve struct{}

// Name returns the display name of the algorithm.
func (Sieve) Name() string {
	return "Incremental Sieve"
}

// CountCore runs the sieve for bound n.
//
// The correction table is a dense slice indexed by denominator and discarded
// on return. A zero entry means "untouched" and reads as d+1: every stored
// value is at least φ(d) ≥ 1, so zero can never be a real entry.
func (Sieve) CountCore(ctx context.Context, reporter ProgressReporter, n int64) (uint64, error) {
	if n == 0 {
		return 1, nil
	}

	table := make([]int64, n+1)
	var total uint64
	lastReported := 0.0
	fn := float64(n)

	for a := int64(1); a <= n; a++ {
		if a&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			ReportProgress(reporter, &lastReported, float64(a)/fn)
		}

		add := table[a]
		if add == 0 {
			add = a + 1
		}
		total += uint64(add)

		for m := 2 * a; m <= n; m += a {
			current := table[m]
			if current == 0 {
				current = m + 1
			}
			table[m] = current - add
		}
	}
	return total, nil
}

// CountSieve returns the number of fractions in [0, 1] in lowest terms with
// denominator at most n. It always agrees with CountBruteForce.
func CountSieve(n int64) (uint64, error) {
	if err := validateBound(n); err != nil {
		return 0, err
	}
	return Sieve{}.CountCore(context.Background(), noopReporter, n)
}
