// Package bench times the stateless reference matrix functions against the
// cached CovMat properties, one size at a time.
//
// For every size the same seeded matrix feeds both sides:
//   - "old": matrix.Logm/Expm/Sqrtm/Invsqrtm/Inverse on a matrix.Dense copy, recomputed on every call;
//   - "new": CovMat.ResetFields followed by the field accessor, i.e. a full
//     recompute through the cache.
//
// Repetitions follow the reversed size schedule (small sizes run many times,
// large sizes few) unless Config.Repetitions overrides it.
package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/katalvlaran/spdlab/covmat"
	"github.com/katalvlaran/spdlab/internal/metrics"
	"github.com/katalvlaran/spdlab/matrix"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config validation errors
var (
	ErrUnsupportedField = errors.New("field must be logm, expm, sqrtm, invsqrtm or inverse")
	ErrNoSizes          = errors.New("sizes cannot be empty")
	ErrInvalidSize      = errors.New("sizes must be positive")
	ErrInvalidReps      = errors.New("repetitions cannot be negative")
	ErrInvalidWarmup    = errors.New("warmup rounds cannot be negative and warmup size must be positive")
)

// Config describes one benchmark run
type Config struct {
	Field        covmat.Field
	Sizes        []int
	Repetitions  int // > 0 overrides the reversed schedule
	WarmupRounds int
	WarmupSize   int
	Seed         int64
}

// DefaultConfig returns the default benchmark configuration
func DefaultConfig() Config {
	return Config{
		Field:        covmat.FieldLogm,
		Sizes:        []int{10, 25, 50, 75, 100, 250},
		WarmupRounds: 10,
		WarmupSize:   100,
		Seed:         1,
	}
}

// Validate checks the configuration and returns a sentinel error if invalid
func (c Config) Validate() error {
	if _, _, ok := fieldFuncs(c.Field); !ok {
		return ErrUnsupportedField
	}
	if len(c.Sizes) == 0 {
		return ErrNoSizes
	}
	for _, s := range c.Sizes {
		if s <= 0 {
			return ErrInvalidSize
		}
	}
	if c.Repetitions < 0 {
		return ErrInvalidReps
	}
	if c.WarmupRounds < 0 || (c.WarmupRounds > 0 && c.WarmupSize <= 0) {
		return ErrInvalidWarmup
	}
	return nil
}

// Schedule returns the repetition count for every size
func (c Config) Schedule() []int {
	reps := make([]int, len(c.Sizes))
	for i := range c.Sizes {
		if c.Repetitions > 0 {
			reps[i] = c.Repetitions
		} else {
			reps[i] = c.Sizes[len(c.Sizes)-1-i]
		}
	}
	return reps
}

// Row is the result for one size. Old and New are mean durations per call.
type Row struct {
	Size    int           `json:"size"`
	Reps    int           `json:"reps"`
	Old     time.Duration `json:"old_ns"`
	New     time.Duration `json:"new_ns"`
	Speedup float64       `json:"speedup"`
}

type referenceFunc func(matrix.Matrix, ...matrix.Option) (*matrix.Dense, error)

type cachedFunc func(*covmat.CovMat) (*covmat.CovMat, error)

func fieldFuncs(f covmat.Field) (referenceFunc, cachedFunc, bool) {
	switch f {
	case covmat.FieldLogm:
		return matrix.Logm, (*covmat.CovMat).Logm, true
	case covmat.FieldExpm:
		return matrix.Expm, (*covmat.CovMat).Expm, true
	case covmat.FieldSqrtm:
		return matrix.Sqrtm, (*covmat.CovMat).Sqrtm, true
	case covmat.FieldInvsqrtm:
		return matrix.Invsqrtm, (*covmat.CovMat).Invsqrtm, true
	case covmat.FieldInverse:
		return func(m matrix.Matrix, _ ...matrix.Option) (*matrix.Dense, error) {
			return matrix.Inverse(m)
		}, (*covmat.CovMat).Inverse, true
	default:
		return nil, nil, false
	}
}

// Run warms up, then times every size in cfg.Sizes. It returns the rows
// completed so far together with ctx's error if cancelled.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	old, cur, _ := fieldFuncs(cfg.Field)

	if err := warmup(ctx, cfg, cur); err != nil {
		return nil, fmt.Errorf("warmup: %w", err)
	}
	logger.Debug("warmup done", zap.Int("rounds", cfg.WarmupRounds), zap.Int("size", cfg.WarmupSize))

	reps := cfg.Schedule()
	rows := make([]Row, 0, len(cfg.Sizes))
	for i, n := range cfg.Sizes {
		row, err := measure(ctx, cfg, n, reps[i], old, cur)
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
		metrics.BenchSpeedup.WithLabelValues(string(cfg.Field), strconv.Itoa(n)).Set(row.Speedup)
		logger.Info("size measured",
			zap.String("field", string(cfg.Field)),
			zap.Int("size", n),
			zap.Int("reps", row.Reps),
			zap.Duration("old", row.Old),
			zap.Duration("new", row.New),
			zap.Float64("speedup", row.Speedup))
	}
	return rows, nil
}

// warmup runs cfg.WarmupRounds independent Random + field computations in parallel.
func warmup(ctx context.Context, cfg Config, cur cachedFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < cfg.WarmupRounds; r++ {
		r := r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := covmat.Random(cfg.WarmupSize, covmat.WithSeed(cfg.Seed+int64(r)))
			if err != nil {
				return err
			}
			_, err = cur(c)
			return err
		})
	}
	return g.Wait()
}

func measure(ctx context.Context, cfg Config, n, reps int, old referenceFunc, cur cachedFunc) (Row, error) {
	c, err := covmat.Random(n, covmat.WithSeed(cfg.Seed+int64(n)))
	if err != nil {
		return Row{}, err
	}
	ref, err := ToDense(c)
	if err != nil {
		return Row{}, err
	}

	var oldTotal, newTotal time.Duration
	for k := 0; k < reps; k++ {
		if err := ctx.Err(); err != nil {
			return Row{}, err
		}

		start := time.Now()
		if _, err := old(ref); err != nil {
			return Row{}, fmt.Errorf("reference %s n=%d: %w", cfg.Field, n, err)
		}
		oldTotal += time.Since(start)

		start = time.Now()
		c.ResetFields()
		if _, err := cur(c); err != nil {
			return Row{}, fmt.Errorf("covmat %s n=%d: %w", cfg.Field, n, err)
		}
		newTotal += time.Since(start)
	}

	row := Row{
		Size: n,
		Reps: reps,
		Old:  oldTotal / time.Duration(reps),
		New:  newTotal / time.Duration(reps),
	}
	if row.New > 0 {
		row.Speedup = float64(row.Old) / float64(row.New)
	}
	return row, nil
}

// ToDense copies a CovMat into a reference matrix.Dense.
func ToDense(c *covmat.CovMat) (*matrix.Dense, error) {
	s := c.Symmetric()
	n := s.SymmetricDim()
	data := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			data[i*n+j] = s.At(i, j)
		}
	}
	return matrix.NewDenseFrom(n, n, data)
}
