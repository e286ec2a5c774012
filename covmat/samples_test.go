// SPDX-License-Identifier: MIT

package covmat_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spdlab/covmat"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromSamples(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	c, err := covmat.FromSamples(x, nil)
	require.NoError(t, err)
	require.Equal(t, 2, c.Dim())

	v := 5.0 / 3.0
	require.InDelta(t, v, MustAt(t, c, 0, 0), 1e-14)
	require.InDelta(t, 2*v, MustAt(t, c, 0, 1), 1e-14)
	require.InDelta(t, 4*v, MustAt(t, c, 1, 1), 1e-14)

	// Perfectly correlated columns.
	r, err := c.Correlation()
	require.NoError(t, err)
	require.InDelta(t, 1, MustAt(t, r, 0, 1), 1e-14)
	require.Equal(t, 1.0, MustAt(t, r, 1, 1))
}

// TestFromSamples_Weighted: integer weights act as row repetition counts, so
// weight 2 on every row gives Σ(x−m)²·2/(Σw−1).
func TestFromSamples_Weighted(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	c, err := covmat.FromSamples(x, []float64{2, 2, 2, 2})
	require.NoError(t, err)
	v := 10.0 / 7.0
	require.InDelta(t, v, MustAt(t, c, 0, 0), 1e-14)
	require.InDelta(t, 2*v, MustAt(t, c, 0, 1), 1e-14)
	require.InDelta(t, 4*v, MustAt(t, c, 1, 1), 1e-14)

	// A zero weight drops the row.
	w, err := covmat.FromSamples(x, []float64{1, 1, 1, 0})
	require.NoError(t, err)
	require.InDelta(t, 1, MustAt(t, w, 0, 0), 1e-14) // variance of 1,2,3
}

func TestFromSamples_WeightSum(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 5, 5, 6})
	for _, w := range [][]float64{
		{0.2, 0.3, 0.5},
		{0, 0, 0},
		{0, 1, 0},
	} {
		_, err := covmat.FromSamples(x, w)
		require.ErrorIs(t, err, covmat.ErrInvalidArgument, "weights %v", w)
	}

	c, err := covmat.FromSamples(x, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)
	require.False(t, math.IsInf(c.Norm(), 0))
	require.False(t, math.IsNaN(c.Norm()))
}

func TestFromSamples_Errors(t *testing.T) {
	t.Parallel()

	_, err := covmat.FromSamples(nil, nil)
	require.ErrorIs(t, err, covmat.ErrInvalidArgument)

	_, err = covmat.FromSamples(mat.NewDense(1, 3, nil), nil)
	require.ErrorIs(t, err, covmat.ErrInvalidArgument)

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	_, err = covmat.FromSamples(x, []float64{1, 1})
	require.ErrorIs(t, err, covmat.ErrInvalidArgument)
	_, err = covmat.FromSamples(x, []float64{1, -1, 1})
	require.ErrorIs(t, err, covmat.ErrInvalidArgument)

	x.Set(1, 1, math.Inf(1))
	_, err = covmat.FromSamples(x, nil)
	require.ErrorIs(t, err, covmat.ErrInvalidArgument)
}

func TestCorrelation_ZeroVariance(t *testing.T) {
	t.Parallel()

	c := MustSlice(t, 2, []float64{1, 0, 0, 0})
	_, err := c.Correlation()
	require.ErrorIs(t, err, covmat.ErrNumerical)

	d := MustSlice(t, 2, []float64{4, 2, 2, 9})
	r, err := d.Correlation()
	require.NoError(t, err)
	require.InDelta(t, 2.0/6.0, MustAt(t, r, 0, 1), 1e-15)
	again, err := d.Correlation()
	require.NoError(t, err)
	require.Same(t, r, again)
}
