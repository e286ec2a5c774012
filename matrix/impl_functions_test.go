package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spdlab/matrix"
	"github.com/stretchr/testify/require"
)

// TestExpm_ClosedForm checks Expm against exp([[2,1],[1,2]]) = e²·[[cosh 1, sinh 1],[sinh 1, cosh 1]]
// with an independent e³ block.
func TestExpm_ClosedForm(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 3, 3, []float64{
		2, 1, 0,
		1, 2, 0,
		0, 0, 3,
	})
	e2 := math.Exp(2)
	want := NewFilledDense(t, 3, 3, []float64{
		e2 * math.Cosh(1), e2 * math.Sinh(1), 0,
		e2 * math.Sinh(1), e2 * math.Cosh(1), 0,
		0, 0, math.Exp(3),
	})

	got, err := matrix.Expm(a)
	require.NoError(t, err)
	diff, err := matrix.Sub(got, want)
	require.NoError(t, err)
	n, err := matrix.FrobeniusNorm(diff)
	require.NoError(t, err)
	require.Less(t, n, 1e-10)
}

func TestLogm_Diagonal(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 0, 0, math.E})
	got, err := matrix.Logm(a)
	require.NoError(t, err)
	RequireClose(t, NewFilledDense(t, 2, 2, []float64{0, 0, 0, 1}), got, 0, 1e-15)
}

func TestExpmLogm_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 5, 12} {
		a := RandomSPD(t, n, 7*int64(n))
		l, err := matrix.Logm(a)
		require.NoError(t, err)
		back, err := matrix.Expm(l)
		require.NoError(t, err)
		RequireClose(t, a, back, 1e-8, 1e-10)
	}
}

func TestSqrtmInvsqrtm(t *testing.T) {
	t.Parallel()

	a := RandomSPD(t, 6, 3)
	s, err := matrix.Sqrtm(a)
	require.NoError(t, err)
	RequireClose(t, a, MustMul(t, s, s), 1e-10, 1e-10)

	is, err := matrix.Invsqrtm(a)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(6)
	require.NoError(t, err)
	RequireClose(t, I, MustMul(t, MustMul(t, is, a), is), 0, 1e-8)

	// Singular PSD: √ is defined, A^{-1/2} is not.
	psd := NewFilledDense(t, 2, 2, []float64{1, 1, 1, 1})
	s, err = matrix.Sqrtm(psd)
	require.NoError(t, err)
	RequireClose(t, psd, MustMul(t, s, s), 0, 1e-12)
	_, err = matrix.Invsqrtm(psd)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
}

func TestPowm(t *testing.T) {
	t.Parallel()

	a := RandomSPD(t, 4, 11)

	p1, err := matrix.Powm(a, 1)
	require.NoError(t, err)
	require.Equal(t, a.Data(), p1.Data())

	p2, err := matrix.Powm(a, 2)
	require.NoError(t, err)
	RequireClose(t, MustMul(t, a, a), p2, 1e-10, 1e-10)

	inv, err := matrix.Powm(a, -1)
	require.NoError(t, err)
	I, _ := matrix.NewIdentity(4)
	RequireClose(t, I, MustMul(t, inv, a), 0, 1e-8)

	half, err := matrix.Powm(a, 0.5)
	require.NoError(t, err)
	s, err := matrix.Sqrtm(a)
	require.NoError(t, err)
	RequireClose(t, s, half, 1e-10, 1e-12)

	indef := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 1}) // eigenvalues −1, 3
	_, err = matrix.Powm(indef, 2)
	require.NoError(t, err)
	_, err = matrix.Powm(indef, 0.5)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	_, err = matrix.Powm(indef, math.Inf(1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMatrixFunctions_NotPositiveDefinite(t *testing.T) {
	t.Parallel()

	indef := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 1})
	_, err := matrix.Logm(indef)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	_, err = matrix.Sqrtm(indef)
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)

	// Expm is defined everywhere.
	_, err = matrix.Expm(indef)
	require.NoError(t, err)
}
