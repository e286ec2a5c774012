// SPDX-License-Identifier: MIT
// Package covmat_test contains shared fixtures.
//
// Fixtures are seeded so every run sees the same matrices.

package covmat_test

import (
	"testing"

	"github.com/katalvlaran/spdlab/covmat"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// MustSlice builds an n×n CovMat from row-major data or fails the test.
func MustSlice(t testing.TB, n int, data []float64) *covmat.CovMat {
	t.Helper()
	c, err := covmat.FromSlice(n, data)
	require.NoError(t, err)

	return c
}

// MustRandom returns a seeded Random(n) or fails the test.
func MustRandom(t testing.TB, n int, seed int64) *covmat.CovMat {
	t.Helper()
	c, err := covmat.Random(n, covmat.WithSeed(seed))
	require.NoError(t, err)

	return c
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, c *covmat.CovMat, i, j int) float64 {
	t.Helper()
	v, err := c.At(i, j)
	require.NoError(t, err)

	return v
}

// RequireNear asserts ‖a − b‖_F ≤ tol·max(1, ‖b‖_F).
func RequireNear(t testing.TB, a, b *covmat.CovMat, tol float64) {
	t.Helper()
	d, err := a.Distance(b)
	require.NoError(t, err)
	scale := b.Norm()
	if scale < 1 {
		scale = 1
	}
	require.LessOrEqualf(t, d, tol*scale, "distance %g exceeds %g", d, tol*scale)
}

// Product returns the dense product a·b of two CovMats.
func Product(a, b *covmat.CovMat) *mat.Dense {
	var p mat.Dense
	p.Mul(a.Symmetric(), b.Symmetric())

	return &p
}

// Identity returns the n×n identity as a dense matrix.
func Identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}

	return id
}
