// SPDX-License-Identifier: MIT
// Package covmat: sentinel error set.
// Every operation returns one of these sentinels wrapped with an operation tag
// ("Logm: covmat: numerical error: ..."); callers match with errors.Is.

package covmat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports malformed construction input (non-positive size,
	// non-square or asymmetric data, NaN/Inf entries, bad scalar) or an index out of range.
	ErrInvalidArgument = errors.New("covmat: invalid argument")

	// ErrDimensionMismatch reports a binary operation on CovMats of different dimension.
	ErrDimensionMismatch = errors.New("covmat: dimension mismatch")

	// ErrNumerical reports a matrix function that is undefined or could not be computed
	// for the given data (e.g. Logm of a matrix that is not positive definite).
	ErrNumerical = errors.New("covmat: numerical error")

	// ErrReadOnly is returned by in-place mutators called on a derived value.
	// It also matches ErrInvalidArgument.
	ErrReadOnly = fmt.Errorf("%w: derived value is read-only", ErrInvalidArgument)
)

// opErrorf wraps err with an operation tag, preserving it for errors.Is.
func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// opDetailf wraps err with an operation tag and a formatted detail.
func opDetailf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
