// Package covmat_test benchmarks first-access and cached-access cost of the
// derived properties on seeded random matrices.
package covmat_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/spdlab/covmat"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{10, 100, 250}

// sinks to defeat dead-code elimination
var (
	sinkC *covmat.CovMat
	sinkF float64
)

// BenchmarkLogm_Reset measures ResetFields + Logm, i.e. a full recompute.
func BenchmarkLogm_Reset(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			c := MustRandom(b, n, 4242)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.ResetFields()
				l, err := c.Logm()
				if err != nil {
					b.Fatal(err)
				}
				sinkC = l
			}
		})
	}
}

// BenchmarkLogm_Cached measures the hit path.
func BenchmarkLogm_Cached(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			c := MustRandom(b, n, 4242)
			if _, err := c.Logm(); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l, err := c.Logm()
				if err != nil {
					b.Fatal(err)
				}
				sinkC = l
			}
		})
	}
}

func BenchmarkRandom(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				c, err := covmat.Random(n, covmat.WithSeed(int64(i)))
				if err != nil {
					b.Fatal(err)
				}
				sinkF = c.Norm()
			}
		})
	}
}
