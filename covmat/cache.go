// SPDX-License-Identifier: MIT

// Package covmat - memoization slots, instrumentation and invalidation.
//
// Every derived property lives in a nullable slot. Access follows one shape:
// lock → slot set? hit : compute → store on success only → unlock.

package covmat

import (
	"errors"
	"time"

	"github.com/katalvlaran/spdlab/internal/metrics"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Field names one cached derived property.
type Field string

// Cached fields.
const (
	FieldEigen       Field = "eigen"
	FieldLogm        Field = "logm"
	FieldExpm        Field = "expm"
	FieldSqrtm       Field = "sqrtm"
	FieldInvsqrtm    Field = "invsqrtm"
	FieldInverse     Field = "inverse"
	FieldPowm        Field = "powm"
	FieldNorm        Field = "norm"
	FieldDeterminant Field = "determinant"
	FieldCorrelation Field = "correlation"
)

// Fields lists every cached field in a stable order.
var Fields = []Field{
	FieldEigen, FieldLogm, FieldExpm, FieldSqrtm, FieldInvsqrtm,
	FieldInverse, FieldPowm, FieldNorm, FieldDeterminant, FieldCorrelation,
}

// Cache invalidation reasons (metric label values).
const (
	resetExplicit = "reset_fields"
	resetMutation = "mutation"
)

// slot is an optional cached value.
type slot[T any] struct {
	value T
	ok    bool
}

func (s *slot[T]) clear() {
	var zero T
	s.value, s.ok = zero, false
}

// eigenPair is a cached symmetric eigen decomposition (values ascending).
type eigenPair struct {
	values  []float64
	vectors *mat.Dense
}

// cache holds one slot per Field. powm additionally remembers its exponent.
type cache struct {
	eigen       slot[eigenPair]
	logm        slot[*CovMat]
	expm        slot[*CovMat]
	sqrtm       slot[*CovMat]
	invsqrtm    slot[*CovMat]
	inverse     slot[*CovMat]
	powm        slot[*CovMat]
	power       float64
	norm        slot[float64]
	determinant slot[float64]
	correlation slot[*CovMat]
}

func (k *cache) clear() {
	k.eigen.clear()
	k.logm.clear()
	k.expm.clear()
	k.sqrtm.clear()
	k.invsqrtm.clear()
	k.inverse.clear()
	k.powm.clear()
	k.power = 0
	k.norm.clear()
	k.determinant.clear()
	k.correlation.clear()
}

// Stats is a snapshot of cache activity on one CovMat.
// Computes counts successful slot fills; Hits counts lookups served from a slot.
// Counters survive ResetFields.
type Stats struct {
	Hits     map[Field]uint64
	Computes map[Field]uint64
	Failures map[Field]uint64
	Resets   uint64
}

func newStats() Stats {
	return Stats{
		Hits:     make(map[Field]uint64, len(Fields)),
		Computes: make(map[Field]uint64, len(Fields)),
		Failures: make(map[Field]uint64, len(Fields)),
	}
}

// Stats returns a copy of the cache counters.
func (c *CovMat) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := newStats()
	for f, v := range c.stats.Hits {
		out.Hits[f] = v
	}
	for f, v := range c.stats.Computes {
		out.Computes[f] = v
	}
	for f, v := range c.stats.Failures {
		out.Failures[f] = v
	}
	out.Resets = c.stats.Resets

	return out
}

// cached implements compute-if-absent for one slot. Callers hold c.mu.
// A failed compute leaves the slot empty, so the next access retries.
func cached[T any](c *CovMat, field Field, s *slot[T], compute func() (T, error)) (T, error) {
	if s.ok {
		c.stats.Hits[field]++
		metrics.CacheLookupsTotal.WithLabelValues(string(field), metrics.ResultHit).Inc()

		return s.value, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(string(field), metrics.ResultMiss).Inc()

	start := time.Now()
	v, err := compute()
	took := time.Since(start)
	if err != nil {
		c.stats.Failures[field]++
		if errors.Is(err, ErrNumerical) {
			metrics.NumericalErrorsTotal.WithLabelValues(string(field)).Inc()
		}
		c.cfg.logger.Warn("covmat: compute failed",
			zap.String("field", string(field)),
			zap.Int("dim", c.data.SymmetricDim()),
			zap.Error(err))
		var zero T

		return zero, err
	}

	s.value, s.ok = v, true
	c.stats.Computes[field]++
	metrics.ComputeDurationSeconds.WithLabelValues(string(field)).Observe(took.Seconds())
	c.cfg.logger.Debug("covmat: computed",
		zap.String("field", string(field)),
		zap.Int("dim", c.data.SymmetricDim()),
		zap.Duration("took", took))

	return v, nil
}

// ResetFields clears every cached derived value without altering the matrix.
// The next access to any property recomputes it.
func (c *CovMat) ResetFields() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate(resetExplicit)
}

// invalidate empties the cache. Callers hold c.mu.
func (c *CovMat) invalidate(reason string) {
	c.cache.clear()
	c.stats.Resets++
	metrics.CacheResetsTotal.WithLabelValues(reason).Inc()
}
