// SPDX-License-Identifier: MIT

package covmat

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTolerance is the relative tolerance used when checking symmetry of
// input data: |a[i,j] − a[j,i]| ≤ tol·max(1, |a[i,j]|, |a[j,i]|).
const DefaultTolerance = 1e-10

const panicToleranceInvalid = "covmat: WithTolerance: tol must be finite, non-negative"

// Option configures a CovMat at construction. Derived values inherit the
// configuration of their parent.
type Option func(*config)

type config struct {
	tol    float64
	logger *zap.Logger
	rng    *lockedRand
}

// WithTolerance sets the symmetry tolerance for FromDense and FromSlice.
// Panics on NaN, ±Inf or negative values (programmer error).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(c *config) { c.tol = tol }
}

// WithLogger routes cache and numeric events to l. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithRand sets the random source used by Random and Randomize.
// The source is guarded by a mutex, so it may be shared between CovMats.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = &lockedRand{r: r}
		}
	}
}

// WithSeed is WithRand(rand.New(rand.NewSource(seed))), for reproducible matrices.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func gatherOptions(opts ...Option) config {
	c := config{tol: DefaultTolerance, logger: zap.NewNop()}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	if c.rng == nil {
		c.rng = &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}

	return c
}

// lockedRand serializes access to a *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// fill writes uniform [0,1) samples into dst.
func (l *lockedRand) fill(dst []float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range dst {
		dst[i] = l.r.Float64()
	}
}
