// SPDX-License-Identifier: MIT
// Package matrix - sample statistics over observation matrices.
//
// Purpose:
//   - Rows are observations, columns are variables.
//   - CenterColumns, Covariance and Correlation give an independent reference for
//     covariance estimation, built only on this package's kernels.
//
// Determinism:
//   - Fixed i→j accumulation; Gram products fill the upper triangle and mirror it,
//     so results are exactly symmetric.

package matrix

import "math"

const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
)

// CenterColumns returns X with every column's mean subtracted, and the means.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := d.r, d.c
	means := make([]float64, c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			means[j] += d.data[i*c+j]
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}

	out, _ := NewDense(r, c)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] = d.data[i*c+j] - means[j]
		}
	}

	return out, means, nil
}

// gramScaled returns (Zᵀ·Z)·alpha for an r×c Z, exactly symmetric.
func gramScaled(z *Dense, alpha float64) *Dense {
	r, c := z.r, z.c
	out, _ := NewDense(c, c)
	var i, j, k int
	var sum float64
	for i = 0; i < c; i++ {
		for j = i; j < c; j++ {
			sum = 0
			for k = 0; k < r; k++ {
				sum += z.data[k*c+i] * z.data[k*c+j]
			}
			out.data[i*c+j] = sum * alpha
			out.data[j*c+i] = sum * alpha
		}
	}

	return out
}

// Covariance returns the unbiased sample covariance of the columns of X,
// (Xcᵀ·Xc)/(r−1), together with the column means.
// Implementation:
//   - Stage 1: require r ≥ 2 observations.
//   - Stage 2: CenterColumns.
//   - Stage 3: scaled Gram product.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (fewer than two rows).
//
// Complexity:
//   - Time O(r*c^2), Space O(c^2).
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return gramScaled(xc, 1/float64(r-1)), means, nil
}

// Correlation returns the Pearson correlation of the columns of X and the sample
// standard deviations. A column with zero deviation yields a zero row and column.
// Errors: as Covariance.
// Complexity: O(r*c^2).
func Correlation(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCorrelation, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}
	xc, _, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCorrelation, err)
	}

	c := xc.c
	stds := make([]float64, c)
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = xc.data[i*c+j]
			stds[j] += v * v
		}
	}
	inv := make([]float64, c)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] / float64(r-1))
		if stds[j] > 0 {
			inv[j] = 1 / stds[j]
		}
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			xc.data[i*c+j] *= inv[j]
		}
	}

	return gramScaled(xc, 1/float64(r-1)), stds, nil
}
