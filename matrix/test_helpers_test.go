// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/spdlab/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels through the interface (asDense copy) path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// NewFilledDense builds r×c *Dense from a row-major flat slice.
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandomSPD returns T·Tᵀ for a uniform n×2n matrix T (SPD with probability 1).
// Deterministic for a given seed.
func RandomSPD(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, n*2*n)
	for k := range vals {
		vals[k] = rng.Float64()
	}
	T := NewFilledDense(t, n, 2*n, vals)
	Tt, err := matrix.Transpose(T)
	require.NoError(t, err)
	out, err := matrix.Mul(T, Tt)
	require.NoError(t, err)

	// Mul sums in a fixed order, so out is symmetric up to rounding only; mirror to make it exact.
	d := out.(*matrix.Dense)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			require.NoError(t, d.Set(j, i, MustAt(t, d, i, j)))
		}
	}

	return d
}

// RequireClose asserts AllClose(got, want, rtol, atol).
func RequireClose(t testing.TB, want, got matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, rtol, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant:\n%v\ngot:\n%v", want, got)
}

// MustMul multiplies or fails the test.
func MustMul(t testing.TB, a, b matrix.Matrix) matrix.Matrix {
	t.Helper()
	out, err := matrix.Mul(a, b)
	require.NoError(t, err)

	return out
}
