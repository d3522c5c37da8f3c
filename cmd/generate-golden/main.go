package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	N     int64  `json:"n"`
	Count uint64 `json:"count"`
}

func main() {
	outputDir := flag.String("out", "internal/rationals/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "rationals_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Small bounds, powers of two and round numbers up to 20,000.
	targets := []int64{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 16, 20, 32, 50, 64,
		100, 128, 200, 256, 500, 512, 1000, 1024,
		2000, 2048, 5000, 10000, 20000,
	}

	counts := prefixCounts(targets[len(targets)-1])

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, n := range targets {
		data = append(data, GoldenData{N: n, Count: counts[n]})
		fmt.Printf("Generated |F(%d)|\n", n)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// prefixCounts returns counts[n] for every n ≤ limit, where counts[n] is the
// number of reduced fractions in [0, 1] with denominator ≤ n.
// It is deliberately independent of internal/rationals: φ(q) is obtained by
// trial factorisation, which serves as an oracle for the sieves.
func prefixCounts(limit int64) []uint64 {
	counts := make([]uint64, limit+1)
	counts[0] = 1
	for q := int64(1); q <= limit; q++ {
		counts[q] = counts[q-1] + uint64(phi(q))
	}
	return counts
}

func phi(n int64) int64 {
	result := n
	for p := int64(2); p*p <= n; p++ {
		if n%p == 0 {
			for n%p == 0 {
				n /= p
			}
			result -= result / p
		}
	}
	if n > 1 {
		result -= result / n
	}
	return result
}
