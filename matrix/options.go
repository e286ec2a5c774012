// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the Jacobi eigen-solver and the
// matrix functions built on it.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the convergence threshold on the off-diagonal
	// Frobenius norm relative to the full norm, and the symmetry tolerance.
	DefaultTolerance = 1e-12

	// DefaultMaxSweeps caps the number of cyclic Jacobi sweeps.
	// Symmetric matrices converge quadratically; 6-10 sweeps are typical.
	DefaultMaxSweeps = 64
)

const (
	panicToleranceInvalid = "matrix: WithTolerance: tol must be finite, non-negative"
	panicMaxSweepsInvalid = "matrix: WithMaxSweeps: sweeps must be > 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol       float64 // >= 0; DefaultTolerance
	maxSweeps int     // > 0; DefaultMaxSweeps
}

// WithTolerance sets the Jacobi convergence / symmetry tolerance.
// Panics when tol is NaN, ±Inf or negative.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxSweeps caps the number of cyclic Jacobi sweeps.
// Panics when sweeps <= 0.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// gatherOptions applies user options over the defaults.
func gatherOptions(user ...Option) Options {
	o := Options{tol: DefaultTolerance, maxSweeps: DefaultMaxSweeps}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
