package rationals

import (
	"testing"
)

// FuzzSieveConsistency checks the sieve against the brute-force oracle.
func FuzzSieveConsistency(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(2))
	f.Add(int64(4))
	f.Add(int64(64))
	f.Add(int64(97))
	f.Add(int64(500))
	f.Add(int64(-1))

	f.Fuzz(func(t *testing.T, n int64) {
		// Keep brute force cheap enough for fuzzing.
		if n > 3000 {
			return
		}

		want, errBrute := CountBruteForce(n)
		got, errSieve := CountSieve(n)

		if (errBrute == nil) != (errSieve == nil) {
			t.Fatalf("n=%d: error mismatch: brute=%v sieve=%v", n, errBrute, errSieve)
		}
		if n < 0 {
			if errSieve == nil {
				t.Fatalf("n=%d: negative bound accepted", n)
			}
			return
		}
		if got != want {
			t.Errorf("n=%d: sieve=%d brute=%d", n, got, want)
		}
	})
}

// FuzzTotientSumConsistency checks the totient sum against the sieve on
// larger bounds than brute force can afford.
func FuzzTotientSumConsistency(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(4096))
	f.Add(int64(4097))
	f.Add(int64(10000))

	f.Fuzz(func(t *testing.T, n int64) {
		if n < 0 || n > 200_000 {
			return
		}
		want, err := CountSieve(n)
		if err != nil {
			t.Fatalf("sieve failed for n=%d: %v", n, err)
		}
		got, err := CountTotientSum(n)
		if err != nil {
			t.Fatalf("totient sum failed for n=%d: %v", n, err)
		}
		if got != want {
			t.Errorf("n=%d: totient=%d sieve=%d", n, got, want)
		}
	})
}
