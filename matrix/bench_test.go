// Package matrix_test provides benchmarks for the reference kernels,
// using deterministic random SPD fixtures.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/spdlab/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{10, 50, 100}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkV []float64
)

func BenchmarkEigen(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandomSPD(b, n, 1337)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				vals, vecs, err := matrix.Eigen(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkV, sinkM = vals, vecs
			}
		})
	}
}

func BenchmarkLogm(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandomSPD(b, n, 4242)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Logm(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMul(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandomSPD(b, n, 1)
			c := RandomSPD(b, n, 2)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(a, c)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
