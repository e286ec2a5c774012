// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spdlab/matrix"
	"github.com/stretchr/testify/require"
)

func TestAddSub(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 2, 3, []float64{6, 5, 4, 3, 2, 1})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 7, 7, 7, 7, 7}, sum.(*matrix.Dense).Data())

	diff, err := matrix.Sub(a, hide{b}) // interface path must agree with fast path
	require.NoError(t, err)
	require.Equal(t, []float64{-5, -3, -1, 1, 3, 5}, diff.(*matrix.Dense).Data())

	_, err = matrix.Sub(a, MustDense(t, 3, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulTranspose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, at.Rows())
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, at.(*matrix.Dense).Data())

	p := MustMul(t, a, at)
	require.Equal(t, []float64{14, 32, 32, 77}, p.(*matrix.Dense).Data())

	q := MustMul(t, hide{a}, hide{at})
	RequireClose(t, p, q, 0, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestScaleAndNorm(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{3, 0, 0, 4})
	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	require.Equal(t, []float64{-6, 0, 0, -8}, s.(*matrix.Dense).Data())

	_, err = matrix.Scale(a, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	n, err := matrix.FrobeniusNorm(a)
	require.NoError(t, err)
	require.InDelta(t, 5.0, n, 1e-15)

	// Scaled accumulation must not overflow where the naive Σv² would.
	big := NewFilledDense(t, 1, 2, []float64{1e200, 1e200})
	n, err = matrix.FrobeniusNorm(big)
	require.NoError(t, err)
	require.InEpsilon(t, math.Sqrt2*1e200, n, 1e-14)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 3, []float64{1, 2, 3})
	b := NewFilledDense(t, 1, 3, []float64{1, 2, 3 + 1e-9})

	ok, err := matrix.AllClose(a, b, 0, 1e-8)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
