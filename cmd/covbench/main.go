// Command covbench compares the cost of the stateless reference matrix
// functions with recomputing the same field through a CovMat cache.
//
// Configuration comes from COVBENCH_* environment variables, optionally
// seeded from a .env file (see Config).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/spdlab/internal/bench"
	"github.com/katalvlaran/spdlab/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env-file", ".env", "Optional dotenv file read before the environment")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, "covbench:", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("benchmark starting",
		zap.String("field", cfg.Field),
		zap.Ints("sizes", cfg.Sizes),
		zap.Ints("reps", cfg.Bench().Schedule()))

	return runBench(ctx, cfg, logger, os.Stdout)
}

// runBench runs the benchmark and writes the report. Rows finished before a
// cancellation are still reported, then the run error is returned.
func runBench(ctx context.Context, cfg Config, logger *zap.Logger, w io.Writer) error {
	rows, err := bench.Run(ctx, cfg.Bench(), logger)
	if len(rows) > 0 {
		if rerr := bench.Report(w, cfg.ReportFormat, rows); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		if len(rows) > 0 {
			logger.Warn("benchmark stopped early", zap.Int("sizes_done", len(rows)), zap.Error(err))
		}
		return err
	}
	return nil
}

func startMetricsServer(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Starting metrics server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start metrics server", zap.Error(err))
		}
	}()
	return srv
}
