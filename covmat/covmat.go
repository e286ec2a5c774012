// SPDX-License-Identifier: MIT

// Package covmat - the CovMat type, its constructors and plain accessors.
//
// Ownership:
//   - Constructors copy their input; Symmetric() returns a copy.
//   - A CovMat must not be copied by value after first use (it holds a mutex); use Clone.

package covmat

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

const (
	opNew       = "New"
	opFromDense = "FromDense"
	opFromSlice = "FromSlice"
	opZeros     = "Zeros"
	opRandom    = "Random"
	opAt        = "At"
)

// CovMat is a symmetric matrix with lazily computed, cached matrix functions.
type CovMat struct {
	mu       sync.Mutex
	data     *mat.SymDense // n×n, n > 0; mutated only under mu
	cfg      config
	readOnly bool // set on values owned by a parent's cache

	cache cache
	stats Stats
}

// New returns a CovMat holding a copy of a.
// Errors: ErrInvalidArgument if a is nil, empty, or holds NaN/Inf.
func New(a mat.Symmetric, opts ...Option) (*CovMat, error) {
	if a == nil {
		return nil, opDetailf(opNew, ErrInvalidArgument, "nil matrix")
	}
	n := a.SymmetricDim()
	if n <= 0 {
		return nil, opDetailf(opNew, ErrInvalidArgument, "empty matrix")
	}
	data := mat.NewSymDense(n, nil)
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, opDetailf(opNew, ErrInvalidArgument, "non-finite entry at (%d,%d)", i, j)
			}
			data.SetSym(i, j, v)
		}
	}

	return newCovMat(data, gatherOptions(opts...)), nil
}

// FromDense returns a CovMat built from a general square matrix that is symmetric
// within the configured tolerance. The stored data is the exact symmetric part (a+aᵀ)/2.
// Errors: ErrInvalidArgument for nil, empty, non-square, non-finite or asymmetric input.
func FromDense(a mat.Matrix, opts ...Option) (*CovMat, error) {
	if a == nil {
		return nil, opDetailf(opFromDense, ErrInvalidArgument, "nil matrix")
	}
	r, c := a.Dims()
	if r <= 0 || r != c {
		return nil, opDetailf(opFromDense, ErrInvalidArgument, "shape %dx%d is not square", r, c)
	}
	cfg := gatherOptions(opts...)
	data, err := symmetrize(r, a.At, cfg.tol)
	if err != nil {
		return nil, opErrorf(opFromDense, err)
	}

	return newCovMat(data, cfg), nil
}

// FromSlice returns an n×n CovMat from row-major data of length n*n.
// Errors: ErrInvalidArgument for n <= 0, a length mismatch, non-finite or asymmetric data.
func FromSlice(n int, data []float64, opts ...Option) (*CovMat, error) {
	if n <= 0 {
		return nil, opDetailf(opFromSlice, ErrInvalidArgument, "size %d must be positive", n)
	}
	if len(data) != n*n {
		return nil, opDetailf(opFromSlice, ErrInvalidArgument, "got %d values for %dx%d", len(data), n, n)
	}
	cfg := gatherOptions(opts...)
	sym, err := symmetrize(n, func(i, j int) float64 { return data[i*n+j] }, cfg.tol)
	if err != nil {
		return nil, opErrorf(opFromSlice, err)
	}

	return newCovMat(sym, cfg), nil
}

// Zeros returns the n×n zero CovMat.
func Zeros(n int, opts ...Option) (*CovMat, error) {
	if n <= 0 {
		return nil, opDetailf(opZeros, ErrInvalidArgument, "size %d must be positive", n)
	}

	return newCovMat(mat.NewSymDense(n, nil), gatherOptions(opts...)), nil
}

// Random returns a size×size random covariance matrix T·Tᵀ, where T is
// size×2·size with entries uniform in [0,1). The result is symmetric positive
// semi-definite, and positive definite with probability 1.
// Errors: ErrInvalidArgument if size <= 0.
func Random(size int, opts ...Option) (*CovMat, error) {
	if size <= 0 {
		return nil, opDetailf(opRandom, ErrInvalidArgument, "size %d must be positive", size)
	}
	cfg := gatherOptions(opts...)

	return newCovMat(randomSPD(size, cfg.rng), cfg), nil
}

// randomSPD draws T (n×2n) from rng and returns T·Tᵀ.
func randomSPD(n int, rng *lockedRand) *mat.SymDense {
	vals := make([]float64, n*2*n)
	rng.fill(vals)
	var out mat.SymDense
	out.SymOuterK(1, mat.NewDense(n, 2*n, vals))

	return &out
}

// symmetrize checks at(i,j) ≈ at(j,i) within tol (relative, floor 1) and returns (A+Aᵀ)/2.
func symmetrize(n int, at func(i, j int) float64, tol float64) (*mat.SymDense, error) {
	out := mat.NewSymDense(n, nil)
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			aij, aji = at(i, j), at(j, i)
			if math.IsNaN(aij) || math.IsInf(aij, 0) || math.IsNaN(aji) || math.IsInf(aji, 0) {
				return nil, opDetailf("symmetrize", ErrInvalidArgument, "non-finite entry at (%d,%d)", i, j)
			}
			if math.Abs(aij-aji) > tol*math.Max(1, math.Max(math.Abs(aij), math.Abs(aji))) {
				return nil, opDetailf("symmetrize", ErrInvalidArgument, "asymmetric at (%d,%d): %g vs %g", i, j, aij, aji)
			}
			out.SetSym(i, j, (aij+aji)/2)
		}
	}

	return out, nil
}

func newCovMat(data *mat.SymDense, cfg config) *CovMat {
	return &CovMat{data: data, cfg: cfg, stats: newStats()}
}

// derive wraps a freshly computed matrix as a read-only value owned by c's cache.
func (c *CovMat) derive(data *mat.SymDense) *CovMat {
	d := newCovMat(data, c.cfg)
	d.readOnly = true

	return d
}

// Dim returns n for an n×n CovMat.
func (c *CovMat) Dim() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.data.SymmetricDim()
}

// At returns the element at (i, j).
// Errors: ErrInvalidArgument if the index is out of range.
func (c *CovMat) At(i, j int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.data.SymmetricDim()
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, opDetailf(opAt, ErrInvalidArgument, "index (%d,%d) out of range for %dx%d", i, j, n, n)
	}

	return c.data.At(i, j), nil
}

// Symmetric returns a copy of the underlying matrix.
func (c *CovMat) Symmetric() *mat.SymDense {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyData()
}

// copyData returns a copy of c.data. Callers hold c.mu.
func (c *CovMat) copyData() *mat.SymDense {
	out := mat.NewSymDense(c.data.SymmetricDim(), nil)
	out.CopySym(c.data)

	return out
}

// Clone returns a mutable deep copy with the same configuration and an empty cache.
func (c *CovMat) Clone() *CovMat {
	c.mu.Lock()
	defer c.mu.Unlock()

	return newCovMat(c.copyData(), c.cfg)
}

// ReadOnly reports whether c is a derived value owned by another CovMat's cache.
func (c *CovMat) ReadOnly() bool { return c.readOnly }

// String implements fmt.Stringer.
func (c *CovMat) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fmt.Sprintf("%v", mat.Formatted(c.data, mat.Squeeze()))
}
