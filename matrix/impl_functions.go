// SPDX-License-Identifier: MIT
// Package matrix - stateless functions of symmetric matrices.
//
// Purpose:
//   - f(A) = V·diag(f(λ))·Vᵀ for symmetric A = V·diag(λ)·Vᵀ.
//   - Each call runs a full Eigen decomposition; nothing is memoized.
//
// Determinism:
//   - Reconstruction fills the upper triangle and mirrors it, so results are exactly symmetric.

package matrix

import (
	"fmt"
	"math"
)

const (
	opLogm     = "Logm"
	opExpm     = "Expm"
	opSqrtm    = "Sqrtm"
	opInvsqrtm = "Invsqrtm"
	opPowm     = "Powm"
)

// spectralFn maps one eigenvalue to f(λ), or reports that f is undefined there.
type spectralFn func(lambda float64) (float64, error)

// applySpectral decomposes m and rebuilds V·diag(f(λ))·Vᵀ.
// Implementation:
//   - Stage 1: Eigen(m, opts...).
//   - Stage 2: map every eigenvalue through f; the first failure aborts.
//   - Stage 3: W = V·diag(f), out[i,j] = Σ_k W[i,k]·V[j,k] on the upper triangle, mirrored.
//
// Complexity:
//   - Time O(n^3) plus Eigen, Space O(n^2).
func applySpectral(m Matrix, tag string, f spectralFn, opts ...Option) (*Dense, error) {
	vals, vecs, err := Eigen(m, opts...)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	n := len(vals)
	fv := make([]float64, n)
	for k, lambda := range vals {
		if fv[k], err = f(lambda); err != nil {
			return nil, matrixErrorf(tag, fmt.Errorf("eigenvalue %d (%g): %w", k, lambda, err))
		}
	}

	v := vecs.data
	w := make([]float64, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for k = 0; k < n; k++ {
			w[i*n+k] = v[i*n+k] * fv[k]
		}
	}

	out, _ := NewDense(n, n)
	var sum float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < n; k++ {
				sum += w[i*n+k] * v[j*n+k]
			}
			out.data[i*n+j] = sum
			out.data[j*n+i] = sum
		}
	}

	return out, nil
}

// Logm returns the principal matrix logarithm of a symmetric positive definite matrix.
// Errors: ErrNotPositiveDefinite if any eigenvalue is ≤ 0, plus the Eigen errors.
func Logm(m Matrix, opts ...Option) (*Dense, error) {
	return applySpectral(m, opLogm, func(lambda float64) (float64, error) {
		if lambda <= 0 {
			return 0, ErrNotPositiveDefinite
		}

		return math.Log(lambda), nil
	}, opts...)
}

// Expm returns the matrix exponential of a symmetric matrix.
// Always defined; very large eigenvalues overflow to +Inf entries.
func Expm(m Matrix, opts ...Option) (*Dense, error) {
	return applySpectral(m, opExpm, func(lambda float64) (float64, error) {
		return math.Exp(lambda), nil
	}, opts...)
}

// Sqrtm returns the principal square root of a symmetric positive semi-definite matrix.
// Eigenvalues in [−1e-9·‖A‖_F, 0) are rounding noise and are clamped to 0.
// Errors: ErrNotPositiveDefinite for clearly negative eigenvalues.
func Sqrtm(m Matrix, opts ...Option) (*Dense, error) {
	floor, err := negativeFloor(m)
	if err != nil {
		return nil, matrixErrorf(opSqrtm, err)
	}

	return applySpectral(m, opSqrtm, func(lambda float64) (float64, error) {
		if lambda < floor {
			return 0, ErrNotPositiveDefinite
		}

		return math.Sqrt(math.Max(lambda, 0)), nil
	}, opts...)
}

// Invsqrtm returns A^{-1/2} for a symmetric positive definite matrix.
func Invsqrtm(m Matrix, opts ...Option) (*Dense, error) {
	return applySpectral(m, opInvsqrtm, func(lambda float64) (float64, error) {
		if lambda <= 0 {
			return 0, ErrNotPositiveDefinite
		}

		return 1 / math.Sqrt(lambda), nil
	}, opts...)
}

// Powm returns A^p for a symmetric matrix.
// Contract:
//   - integer p ≥ 0: any symmetric A.
//   - negative p: all eigenvalues > 0.
//   - non-integer p: all eigenvalues ≥ 0.
//
// p == 1 returns a copy of A without decomposing it.
func Powm(m Matrix, p float64, opts ...Option) (*Dense, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, matrixErrorf(opPowm, ErrNaNInf)
	}
	if p == 1 {
		if err := ValidateSquare(m); err != nil {
			return nil, matrixErrorf(opPowm, err)
		}
		d, err := asDense(m)
		if err != nil {
			return nil, matrixErrorf(opPowm, err)
		}

		return d.Clone().(*Dense), nil
	}
	integer := p == math.Trunc(p)

	return applySpectral(m, opPowm, func(lambda float64) (float64, error) {
		switch {
		case p < 0 && lambda <= 0:
			return 0, ErrNotPositiveDefinite
		case !integer && lambda < 0:
			return 0, ErrNotPositiveDefinite
		}

		return math.Pow(lambda, p), nil
	}, opts...)
}

// psdSlack is the relative size of negative eigenvalues accepted as rounding noise.
const psdSlack = 1e-9

// negativeFloor returns −psdSlack·max(1,‖A‖_F), the most negative eigenvalue treated as zero.
func negativeFloor(m Matrix) (float64, error) {
	norm, err := FrobeniusNorm(m)
	if err != nil {
		return 0, err
	}

	return -psdSlack * math.Max(1, norm), nil
}
