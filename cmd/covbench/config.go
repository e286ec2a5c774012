package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/spdlab/covmat"
	"github.com/katalvlaran/spdlab/internal/bench"
	"github.com/katalvlaran/spdlab/internal/logging"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix of every environment variable read by covbench
const envPrefix = "COVBENCH"

// Config validation errors
var (
	ErrInvalidLogFormat    = errors.New("log_format must be 'json', 'console' or 'text'")
	ErrInvalidLogLevel     = errors.New("log_level must be debug, info, warn, warning, or error")
	ErrInvalidReportFormat = errors.New("report_format must be 'table' or 'json'")
)

// Config is read from COVBENCH_* environment variables
type Config struct {
	Field        string `envconfig:"FIELD" default:"logm"`
	Sizes        []int  `envconfig:"SIZES" default:"10,25,50,75,100,250"`
	Repetitions  int    `envconfig:"REPETITIONS" default:"0"`
	WarmupRounds int    `envconfig:"WARMUP_ROUNDS" default:"10"`
	WarmupSize   int    `envconfig:"WARMUP_SIZE" default:"100"`
	Seed         int64  `envconfig:"SEED" default:"1"`

	ReportFormat string `envconfig:"REPORT_FORMAT" default:"table"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"console"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsAddr  string `envconfig:"METRICS_ADDR"` // empty disables /metrics
}

// LoadConfig loads envFile if present, then processes COVBENCH_* variables.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	var cfg Config
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if err := cfg.Bench().Validate(); err != nil {
		return err
	}
	if cfg.ReportFormat != bench.FormatTable && cfg.ReportFormat != bench.FormatJSON {
		return ErrInvalidReportFormat
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "json", "console", "text":
	default:
		return ErrInvalidLogFormat
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}
	return nil
}

// Bench converts the configuration into a bench.Config
func (c *Config) Bench() bench.Config {
	return bench.Config{
		Field:        covmat.Field(c.Field),
		Sizes:        c.Sizes,
		Repetitions:  c.Repetitions,
		WarmupRounds: c.WarmupRounds,
		WarmupSize:   c.WarmupSize,
		Seed:         c.Seed,
	}
}

// Logging converts the configuration into a logging.Config
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Format = c.LogFormat
	lc.Level = c.LogLevel
	return lc
}
