// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation tag
// via %w) and tests match them with errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and grep-ability.
// Wrap with fmt.Errorf("Op: %w", ErrX) at the detection site; callers still
// use errors.Is to match.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive
	// or that a backing slice does not match rows*cols.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, Mul where a.Cols != b.Rows, or a non-square
	// input to a spectral routine.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrMatrixEigenFailed indicates that the Jacobi routine failed to converge
	// under the given tolerance/sweeps.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrNotPositiveDefinite is returned by matrix functions whose real-valued
	// result requires positive (or non-negative) eigenvalues.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrSingular is returned when LU elimination meets an exactly zero pivot column.
	ErrSingular = errors.New("matrix: matrix is singular")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.
