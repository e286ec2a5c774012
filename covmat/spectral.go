// SPDX-License-Identifier: MIT

// Package covmat - derived properties.
//
// Spectral functions share one cached eigen decomposition A = V·diag(λ)·Vᵀ and
// rebuild f(A) = V·diag(f(λ))·Vᵀ. Each result is cached in its own slot.
//
// Complexity quicksheet:
//   - Eigen: O(n^3) once per cache generation.
//   - Logm/Expm/Sqrtm/Invsqrtm/Powm: O(n^3) on a miss (one GEMM), O(1) on a hit.
//   - Inverse: O(n^3) Cholesky; Norm: O(n^2); Determinant: O(n^3).

package covmat

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opEigen       = "Eigen"
	opLogm        = "Logm"
	opExpm        = "Expm"
	opSqrtm       = "Sqrtm"
	opInvsqrtm    = "Invsqrtm"
	opPowm        = "Powm"
	opInverse     = "Inverse"
	opDeterminant = "Determinant"
)

// psdSlack is the relative size of negative eigenvalues accepted as rounding noise
// by functions defined on positive semi-definite matrices.
const psdSlack = 1e-9

// Eigen returns the eigenvalues (ascending) and the matrix whose columns are the
// matching unit eigenvectors. The decomposition is cached; returned values are copies.
// Errors: ErrNumerical if the decomposition does not converge.
func (c *CovMat) Eigen() ([]float64, *mat.Dense, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.eigenLocked()
	if err != nil {
		return nil, nil, opErrorf(opEigen, err)
	}
	vals := make([]float64, len(e.values))
	copy(vals, e.values)

	return vals, mat.DenseCopyOf(e.vectors), nil
}

// eigenLocked fills or reads the eigen slot. Callers hold c.mu.
func (c *CovMat) eigenLocked() (eigenPair, error) {
	return cached(c, FieldEigen, &c.cache.eigen, func() (eigenPair, error) {
		var es mat.EigenSym
		if ok := es.Factorize(c.data, true); !ok {
			return eigenPair{}, opDetailf(opEigen, ErrNumerical, "eigen decomposition did not converge")
		}
		var vecs mat.Dense
		es.VectorsTo(&vecs)

		return eigenPair{values: es.Values(nil), vectors: &vecs}, nil
	})
}

// spectralFn maps one eigenvalue to f(λ); ok=false means f is undefined there.
type spectralFn func(lambda float64) (v float64, ok bool)

// spectral rebuilds V·diag(f(λ))·Vᵀ from the cached decomposition. Callers hold c.mu.
// Implementation:
//   - Stage 1: map every λ through f; undefined or non-finite results fail with ErrNumerical.
//   - Stage 2: W = V·diag(f) (column scaling), P = W·Vᵀ (one GEMM).
//   - Stage 3: copy the upper triangle of P into a SymDense, so the result is exactly symmetric.
func (c *CovMat) spectral(op, requirement string, f spectralFn) (*CovMat, error) {
	e, err := c.eigenLocked()
	if err != nil {
		return nil, opErrorf(op, err)
	}
	n := len(e.values)
	fv := make([]float64, n)
	var ok bool
	for k, lambda := range e.values {
		if fv[k], ok = f(lambda); !ok {
			return nil, opDetailf(op, ErrNumerical, "%s; eigenvalue %d is %g", requirement, k, lambda)
		}
		if math.IsNaN(fv[k]) || math.IsInf(fv[k], 0) {
			return nil, opDetailf(op, ErrNumerical, "f(λ) overflows for eigenvalue %d (%g)", k, lambda)
		}
	}

	var w, p mat.Dense
	w.Apply(func(_, j int, v float64) float64 { return v * fv[j] }, e.vectors)
	p.Mul(&w, e.vectors.T())

	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, p.At(i, j))
		}
	}

	return c.derive(out), nil
}

// Logm returns the matrix logarithm, cached.
// Errors: ErrNumerical unless every eigenvalue is > 0 (positive definite).
func (c *CovMat) Logm() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldLogm, &c.cache.logm, func() (*CovMat, error) {
		return c.spectral(opLogm, "logarithm requires a positive definite matrix", func(l float64) (float64, bool) {
			return math.Log(l), l > 0
		})
	})
}

// Expm returns the matrix exponential, cached.
// Errors: ErrNumerical if an eigenvalue is so large that exp overflows.
func (c *CovMat) Expm() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldExpm, &c.cache.expm, func() (*CovMat, error) {
		return c.spectral(opExpm, "", func(l float64) (float64, bool) {
			return math.Exp(l), true
		})
	})
}

// Sqrtm returns the principal square root, cached. Eigenvalues within
// −1e-9·max(1,|λ|max) of zero are treated as zero.
// Errors: ErrNumerical for clearly negative eigenvalues.
func (c *CovMat) Sqrtm() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldSqrtm, &c.cache.sqrtm, func() (*CovMat, error) {
		floor, err := c.negativeFloor()
		if err != nil {
			return nil, opErrorf(opSqrtm, err)
		}

		return c.spectral(opSqrtm, "square root requires a positive semi-definite matrix", func(l float64) (float64, bool) {
			return math.Sqrt(math.Max(l, 0)), l >= floor
		})
	})
}

// Invsqrtm returns A^{-1/2}, cached.
// Errors: ErrNumerical unless every eigenvalue is > 0.
func (c *CovMat) Invsqrtm() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldInvsqrtm, &c.cache.invsqrtm, func() (*CovMat, error) {
		return c.spectral(opInvsqrtm, "inverse square root requires a positive definite matrix", func(l float64) (float64, bool) {
			return 1 / math.Sqrt(l), l > 0
		})
	})
}

// Powm returns A^p. Powm(1) returns c itself. Otherwise one power is cached at a
// time: asking for a different p replaces the cached one.
// Contract:
//   - integer p ≥ 0: any symmetric A.
//   - negative p: every eigenvalue > 0.
//   - non-integer p: every eigenvalue ≥ 0 (within rounding).
//
// Errors: ErrInvalidArgument for NaN/Inf p, ErrNumerical when the contract is violated.
func (c *CovMat) Powm(p float64) (*CovMat, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, opDetailf(opPowm, ErrInvalidArgument, "power %g must be finite", p)
	}
	if p == 1 {
		return c, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache.powm.ok && c.cache.power != p {
		c.cache.powm.clear()
	}
	out, err := cached(c, FieldPowm, &c.cache.powm, func() (*CovMat, error) {
		floor, err := c.negativeFloor()
		if err != nil {
			return nil, opErrorf(opPowm, err)
		}
		integer := p == math.Trunc(p)

		return c.spectral(opPowm, "power undefined for this spectrum", func(l float64) (float64, bool) {
			switch {
			case p < 0 && l <= 0:
				return 0, false
			case !integer && l < floor:
				return 0, false
			case !integer:
				l = math.Max(l, 0)
			}

			return math.Pow(l, p), true
		})
	})
	if err == nil {
		c.cache.power = p
	}

	return out, err
}

// Inverse returns A^{-1} via a Cholesky factorization, cached.
// Errors: ErrNumerical if A is not positive definite or is too ill-conditioned.
func (c *CovMat) Inverse() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldInverse, &c.cache.inverse, func() (*CovMat, error) {
		var chol mat.Cholesky
		if ok := chol.Factorize(c.data); !ok {
			return nil, opDetailf(opInverse, ErrNumerical, "matrix is not positive definite")
		}
		var inv mat.SymDense
		if err := chol.InverseTo(&inv); err != nil {
			return nil, opDetailf(opInverse, ErrNumerical, "%v", err)
		}

		return c.derive(&inv), nil
	})
}

// Norm returns the Frobenius norm ‖A‖_F, cached.
func (c *CovMat) Norm() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, _ := cached(c, FieldNorm, &c.cache.norm, func() (float64, error) {
		return mat.Norm(c.data, 2), nil
	})

	return v
}

// Determinant returns det(A), cached.
func (c *CovMat) Determinant() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, _ := cached(c, FieldDeterminant, &c.cache.determinant, func() (float64, error) {
		return mat.Det(c.data), nil
	})

	return v
}

// negativeFloor returns the most negative eigenvalue treated as zero. Callers hold c.mu.
func (c *CovMat) negativeFloor() (float64, error) {
	e, err := c.eigenLocked()
	if err != nil {
		return 0, err
	}
	scale := 1.0
	for _, l := range e.values {
		scale = math.Max(scale, math.Abs(l))
	}

	return -psdSlack * scale, nil
}
