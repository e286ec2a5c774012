// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scalar scaling and the Frobenius norm. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel normalizes its operands with asDense once, so loops run on flat slices.
//   - Results are always freshly allocated *Dense; operands are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opNorm      = "FrobeniusNorm"
	opAllClose  = "AllClose"
	opEigen     = "Eigen"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateSameShape(a, b); normalize both operands to *Dense.
//   - Stage 2: single flat loop 0..r*c-1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for k := range out.data {
		out.data[k] = da.data[k] + sign*db.data[k]
	}

	return out, nil
}

// Add returns a + b (element-wise).
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Add").
// Complexity: O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b (element-wise).
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
// Complexity: O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul returns the matrix product a × b.
//
// Implementation:
//   - Stage 1: require a.Cols == b.Rows (ErrDimensionMismatch otherwise).
//   - Stage 2: i→k→j loop order so the inner loop walks both b and out row-wise.
//
// Behavior highlights:
//   - Zero a[i,k] entries skip their inner loop (cheap for diagonal factors).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j        int
		aik            float64
		aRow, bRow, oR int // row offsets into the flat buffers
	)
	for i = 0; i < da.r; i++ {
		aRow = i * da.c
		oR = i * out.c
		for k = 0; k < da.c; k++ {
			aik = da.data[aRow+k]
			if aik == 0 {
				continue
			}
			bRow = k * db.c
			for j = 0; j < db.c; j++ {
				out.data[oR+j] += aik * db.data[bRow+j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			out.data[j*out.c+i] = dm.data[i*dm.c+j]
		}
	}

	return out, nil
}

// Scale returns alpha*m. A non-finite alpha is rejected with ErrNaNInf.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range dm.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// FrobeniusNorm returns ‖m‖_F = √(Σ m[i,j]²).
// Uses a scaled sum of squares (LAPACK dlassq style) so large entries do not overflow.
// Complexity: O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opNorm, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opNorm, err)
	}

	return frobenius(dm.data), nil
}

// frobenius is the allocation-free core of FrobeniusNorm.
func frobenius(data []float64) float64 {
	scale, ssq := 0.0, 1.0
	var absv, r float64
	for _, v := range data {
		if v == 0 {
			continue
		}
		absv = math.Abs(v)
		if scale < absv {
			r = scale / absv
			ssq = 1 + ssq*r*r
			scale = absv
		} else {
			r = absv / scale
			ssq += r * r
		}
	}

	return scale * math.Sqrt(ssq)
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN never compares close. rtol and atol are treated as absolute values.
// Complexity: O(r*c).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for k, av := range da.data {
		bv := db.data[k]
		if math.IsNaN(av) || math.IsNaN(bv) {
			return false, nil
		}
		if av == bv { // covers equal infinities
			continue
		}
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
