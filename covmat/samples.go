// SPDX-License-Identifier: MIT

package covmat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	opFromSamples = "FromSamples"
	opCorrelation = "Correlation"
)

// FromSamples estimates the unbiased sample covariance of x, whose rows are
// observations and columns are variables. weights may be nil; otherwise it
// holds one non-negative frequency weight per row, summing to more than 1.
// Errors: ErrInvalidArgument for nil x, fewer than two rows, non-finite entries,
// a weights length mismatch, a weight sum ≤ 1, or a covariance that overflows.
func FromSamples(x mat.Matrix, weights []float64, opts ...Option) (*CovMat, error) {
	if x == nil {
		return nil, opDetailf(opFromSamples, ErrInvalidArgument, "nil matrix")
	}
	r, c := x.Dims()
	if r < 2 || c < 1 {
		return nil, opDetailf(opFromSamples, ErrInvalidArgument, "need at least 2 observations of 1 variable, got %dx%d", r, c)
	}
	if weights != nil && len(weights) != r {
		return nil, opDetailf(opFromSamples, ErrInvalidArgument, "got %d weights for %d observations", len(weights), r)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, opDetailf(opFromSamples, ErrInvalidArgument, "non-finite sample at (%d,%d)", i, j)
			}
		}
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, opDetailf(opFromSamples, ErrInvalidArgument, "weight %d is %g", i, w)
		}
	}
	// The unbiased estimate divides by Σw − 1.
	if weights != nil {
		if sum := floats.Sum(weights); sum <= 1 {
			return nil, opDetailf(opFromSamples, ErrInvalidArgument, "weights sum to %g, need more than 1", sum)
		}
	}

	data := mat.NewSymDense(c, nil)
	stat.CovarianceMatrix(data, x, weights)
	for i = 0; i < c; i++ {
		for j = i; j < c; j++ {
			if v = data.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, opDetailf(opFromSamples, ErrInvalidArgument, "covariance overflows at (%d,%d)", i, j)
			}
		}
	}

	return newCovMat(data, gatherOptions(opts...)), nil
}

// Correlation returns D^{-1/2}·A·D^{-1/2} with D = diag(A), cached.
// Errors: ErrNumerical if a diagonal entry is not positive.
func (c *CovMat) Correlation() (*CovMat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cached(c, FieldCorrelation, &c.cache.correlation, func() (*CovMat, error) {
		n := c.data.SymmetricDim()
		inv := make([]float64, n)
		var i, j int
		for i = 0; i < n; i++ {
			d := c.data.At(i, i)
			if d <= 0 {
				return nil, opDetailf(opCorrelation, ErrNumerical, "variance %d is %g", i, d)
			}
			inv[i] = 1 / math.Sqrt(d)
		}
		out := mat.NewSymDense(n, nil)
		for i = 0; i < n; i++ {
			out.SetSym(i, i, 1)
			for j = i + 1; j < n; j++ {
				out.SetSym(i, j, c.data.At(i, j)*inv[i]*inv[j])
			}
		}

		return c.derive(out), nil
	})
}
