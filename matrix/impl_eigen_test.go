package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spdlab/matrix"
	"github.com/stretchr/testify/require"
)

func TestEigen_Known3x3(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 3, 3, []float64{
		2, 1, 0,
		1, 2, 0,
		0, 0, 3,
	})
	vals, vecs, err := matrix.Eigen(a)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 3, 3}, vals, 1e-12)

	// A·V = V·Λ column by column.
	av := MustMul(t, a, vecs)
	var i, k int
	for k = 0; k < 3; k++ {
		for i = 0; i < 3; i++ {
			require.InDelta(t, vals[k]*MustAt(t, vecs, i, k), MustAt(t, av, i, k), 1e-12)
		}
	}
}

func TestEigen_RandomSPD_Orthonormal(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 7, 20} {
		a := RandomSPD(t, n, int64(n))
		vals, vecs, err := matrix.Eigen(hide{a})
		require.NoError(t, err)
		for k := 1; k < n; k++ {
			require.LessOrEqual(t, vals[k-1], vals[k]) // ascending order
		}

		// VᵀV = I.
		vt, err := matrix.Transpose(vecs)
		require.NoError(t, err)
		I, err := matrix.NewIdentity(n)
		require.NoError(t, err)
		RequireClose(t, I, MustMul(t, vt, vecs), 0, 1e-12)

		// V·diag(λ)·Vᵀ = A.
		d := MustDense(t, n, n)
		for k, v := range vals {
			require.NoError(t, d.Set(k, k, v))
		}
		RequireClose(t, a, MustMul(t, MustMul(t, vecs, d), vt), 1e-9, 1e-9)
	}
}

func TestEigen_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.Eigen(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.Eigen(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.Eigen(NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(RandomSPD(t, 8, 99), matrix.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestEigen_ZeroMatrix(t *testing.T) {
	vals, vecs, err := matrix.Eigen(MustDense(t, 3, 3))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, vals)
	I, _ := matrix.NewIdentity(3)
	require.Equal(t, I.Data(), vecs.Data())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.Panics(t, func() { matrix.WithTolerance(-1) })
	require.Panics(t, func() { matrix.WithTolerance(math.NaN()) })
	require.Panics(t, func() { matrix.WithMaxSweeps(0) })
}
