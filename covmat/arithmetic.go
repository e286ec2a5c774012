// SPDX-License-Identifier: MIT

// Package covmat - arithmetic.
//
// Binary operations read the other operand through a locked copy, so a.Sub(b)
// and b.Sub(a) running concurrently never hold both locks at once.
// In-place mutators invalidate the cache and are refused on derived values.

package covmat

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opAdd          = "Add"
	opSub          = "Sub"
	opScale        = "Scale"
	opDiv          = "Div"
	opDistance     = "Distance"
	opAddInPlace   = "AddInPlace"
	opSubInPlace   = "SubInPlace"
	opScaleInPlace = "ScaleInPlace"
	opRandomize    = "Randomize"
	opSetZero      = "SetZero"
)

// Add returns a new CovMat holding c + o.
// Errors: ErrInvalidArgument for nil o, ErrDimensionMismatch for different sizes.
func (c *CovMat) Add(o *CovMat) (*CovMat, error) { return c.combine(o, +1, opAdd) }

// Sub returns a new CovMat holding c − o. The difference of two covariance
// matrices need not be positive semi-definite; it is still a valid CovMat
// (Norm, Expm and friends remain defined).
// Errors: ErrInvalidArgument for nil o, ErrDimensionMismatch for different sizes.
func (c *CovMat) Sub(o *CovMat) (*CovMat, error) { return c.combine(o, -1, opSub) }

// Distance returns ‖c − o‖_F, the near-equality metric between two CovMats.
func (c *CovMat) Distance(o *CovMat) (float64, error) {
	d, err := c.combine(o, -1, opDistance)
	if err != nil {
		return 0, err
	}

	return d.Norm(), nil
}

func (c *CovMat) combine(o *CovMat, sign float64, op string) (*CovMat, error) {
	if o == nil {
		return nil, opDetailf(op, ErrInvalidArgument, "nil operand")
	}
	other := o.Symmetric()

	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := addSigned(c.data, other, sign, op)
	if err != nil {
		return nil, err
	}

	return newCovMat(out, c.cfg), nil
}

// addSigned returns a + sign·b as a new SymDense.
func addSigned(a, b *mat.SymDense, sign float64, op string) (*mat.SymDense, error) {
	n, m := a.SymmetricDim(), b.SymmetricDim()
	if n != m {
		return nil, opDetailf(op, ErrDimensionMismatch, "%dx%d vs %dx%d", n, n, m, m)
	}
	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, a.At(i, j)+sign*b.At(i, j))
		}
	}

	return out, nil
}

// Scale returns a new CovMat holding alpha·c.
// Errors: ErrInvalidArgument for NaN/Inf alpha.
func (c *CovMat) Scale(alpha float64) (*CovMat, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, opDetailf(opScale, ErrInvalidArgument, "factor %g must be finite", alpha)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var out mat.SymDense
	out.ScaleSym(alpha, c.data)

	return newCovMat(&out, c.cfg), nil
}

// Div returns a new CovMat holding c/alpha.
// Errors: ErrInvalidArgument for zero or non-finite alpha.
func (c *CovMat) Div(alpha float64) (*CovMat, error) {
	if alpha == 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, opDetailf(opDiv, ErrInvalidArgument, "divisor %g must be finite and non-zero", alpha)
	}

	return c.Scale(1 / alpha)
}

// AddInPlace sets c = c + o and invalidates the cache.
func (c *CovMat) AddInPlace(o *CovMat) error { return c.combineInPlace(o, +1, opAddInPlace) }

// SubInPlace sets c = c − o and invalidates the cache.
func (c *CovMat) SubInPlace(o *CovMat) error { return c.combineInPlace(o, -1, opSubInPlace) }

func (c *CovMat) combineInPlace(o *CovMat, sign float64, op string) error {
	if c.readOnly {
		return opErrorf(op, ErrReadOnly)
	}
	if o == nil {
		return opDetailf(op, ErrInvalidArgument, "nil operand")
	}
	other := o.Symmetric()

	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := addSigned(c.data, other, sign, op)
	if err != nil {
		return err
	}
	c.data = out
	c.invalidate(resetMutation)

	return nil
}

// ScaleInPlace sets c = alpha·c and invalidates the cache.
func (c *CovMat) ScaleInPlace(alpha float64) error {
	if c.readOnly {
		return opErrorf(opScaleInPlace, ErrReadOnly)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return opDetailf(opScaleInPlace, ErrInvalidArgument, "factor %g must be finite", alpha)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var out mat.SymDense
	out.ScaleSym(alpha, c.data)
	c.data = &out
	c.invalidate(resetMutation)

	return nil
}

// Randomize replaces the data with a fresh random covariance matrix of the same
// size (see Random) and invalidates the cache.
func (c *CovMat) Randomize() error {
	if c.readOnly {
		return opErrorf(opRandomize, ErrReadOnly)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = randomSPD(c.data.SymmetricDim(), c.cfg.rng)
	c.invalidate(resetMutation)

	return nil
}

// SetZero zeroes the data and invalidates the cache.
func (c *CovMat) SetZero() error {
	if c.readOnly {
		return opErrorf(opSetZero, ErrReadOnly)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.Zero()
	c.invalidate(resetMutation)

	return nil
}
