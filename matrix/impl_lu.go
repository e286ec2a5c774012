// SPDX-License-Identifier: MIT
// Package matrix - LU factorization, inverse and determinant.
//
// Purpose:
//   - Reference Inverse/Det for square matrices, independent of the spectral path.
//
// Determinism:
//   - Partial pivoting picks the first row with the largest |a[k,j]| (ties keep the lower index).

package matrix

import (
	"errors"
	"fmt"
	"math"
)

const (
	opLU      = "LU"
	opInverse = "Inverse"
	opDet     = "Det"
)

// LUFactors holds P·A = L·U packed into one buffer: L below the diagonal
// (unit diagonal implied), U on and above it. perm[i] is the source row of row i.
type LUFactors struct {
	n    int
	lu   []float64
	perm []int
	sign float64 // +1 or -1, parity of perm
}

// LU factorizes a square matrix with partial pivoting (Doolittle elimination).
// Implementation:
//   - Stage 1: ValidateSquare; copy m into a flat buffer.
//   - Stage 2: for each column k pick the pivot row, swap, eliminate below.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - ErrSingular if a whole pivot column is zero.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := d.r
	f := &LUFactors{n: n, lu: make([]float64, n*n), perm: make([]int, n), sign: 1}
	copy(f.lu, d.data)
	for i := range f.perm {
		f.perm[i] = i
	}

	a := f.lu
	var (
		i, j, k, p int
		maxAbs, l  float64
	)
	for k = 0; k < n; k++ {
		p, maxAbs = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a[i*n+k]); v > maxAbs {
				p, maxAbs = i, v
			}
		}
		if maxAbs == 0 {
			return nil, matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
			f.sign = -f.sign
		}
		for i = k + 1; i < n; i++ {
			l = a[i*n+k] / a[k*n+k]
			a[i*n+k] = l
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return f, nil
}

// Det returns det(A) = sign(P)·Π U[i,i].
func (f *LUFactors) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// solveColumn solves A·x = e_col into x using y as scratch.
func (f *LUFactors) solveColumn(col int, x, y []float64) {
	n, a := f.n, f.lu
	var (
		i, k int
		sum  float64
	)
	// Forward substitution: L·y = P·e_col.
	for i = 0; i < n; i++ {
		sum = 0
		if f.perm[i] == col {
			sum = 1
		}
		for k = 0; k < i; k++ {
			sum -= a[i*n+k] * y[k]
		}
		y[i] = sum
	}
	// Backward substitution: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= a[i*n+k] * x[k]
		}
		x[i] = sum / a[i*n+i]
	}
}

// Inverse returns A^{-1} by solving A·x = e_j for every basis column.
// Errors: see LU; ErrSingular also covers a result that overflows to ±Inf.
// Complexity: O(n^3).
func Inverse(m Matrix) (*Dense, error) {
	f, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.n
	out, _ := NewDense(n, n)
	x := make([]float64, n)
	y := make([]float64, n)
	var i, col int
	for col = 0; col < n; col++ {
		f.solveColumn(col, x, y)
		for i = 0; i < n; i++ {
			if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			out.data[i*n+col] = x[i]
		}
	}

	return out, nil
}

// Det returns the determinant of a square matrix. A singular matrix yields 0, nil.
func Det(m Matrix) (float64, error) {
	f, err := LU(m)
	if errors.Is(err, ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	return f.Det(), nil
}
