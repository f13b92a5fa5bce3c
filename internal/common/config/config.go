// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Rating   RatingConfig   `mapstructure:"rating"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// PipelineConfig governs the parallel execution of the scoring stage.
type PipelineConfig struct {
	// WorkerFraction is the share of detected CPUs used for the worker
	// pool. Effective pool size is max(1, floor(NumCPU * WorkerFraction)).
	WorkerFraction float64 `mapstructure:"worker_fraction"`
	// ChunkCount overrides the number of batches the validated set is
	// split into. Zero means one chunk per worker.
	ChunkCount int `mapstructure:"chunk_count"`
	// RunTimeout bounds one full run. Zero disables the timeout.
	RunTimeout int `mapstructure:"run_timeout"` // milliseconds
}

// GetRunTimeout returns the run timeout as a duration.
func (p PipelineConfig) GetRunTimeout() time.Duration {
	return time.Duration(p.RunTimeout) * time.Millisecond
}

// RatingConfig holds the aggregation policy. The thresholds are defaults,
// not contract: callers may retune the bands per pool.
type RatingConfig struct {
	WeightByLoanAmount   bool    `mapstructure:"weight_by_loan_amount"`
	PoolCreditAdjustment bool    `mapstructure:"pool_credit_adjustment"`
	AAAMax               float64 `mapstructure:"aaa_max"`
	BBBMax               float64 `mapstructure:"bbb_max"`
}

// CacheConfig holds settings for the optional Redis score cache.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // milliseconds
}

// GetTTL returns the cache entry TTL as a duration.
func (c CacheConfig) GetTTL() time.Duration {
	return time.Duration(c.TTL) * time.Millisecond
}

// MetricsConfig holds settings for the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InputConfig locates the mortgage portfolio file.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig locates the report destination. Empty path writes to stdout.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pool-rater"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Pipeline.WorkerFraction == 0 {
		cfg.Pipeline.WorkerFraction = 0.75
	}
	if cfg.Rating.AAAMax == 0 {
		cfg.Rating.AAAMax = 30
	}
	if cfg.Rating.BBBMax == 0 {
		cfg.Rating.BBBMax = 65
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600000
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Pipeline.WorkerFraction <= 0 || cfg.Pipeline.WorkerFraction > 1 {
		return fmt.Errorf("pipeline.worker_fraction must be in (0,1], got %v", cfg.Pipeline.WorkerFraction)
	}
	if cfg.Pipeline.ChunkCount < 0 {
		return fmt.Errorf("pipeline.chunk_count must be >= 0, got %d", cfg.Pipeline.ChunkCount)
	}
	if cfg.Rating.AAAMax <= 0 || cfg.Rating.BBBMax <= cfg.Rating.AAAMax {
		return fmt.Errorf("rating thresholds must satisfy 0 < aaa_max < bbb_max, got aaa_max=%v bbb_max=%v",
			cfg.Rating.AAAMax, cfg.Rating.BBBMax)
	}
	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		return fmt.Errorf("cache.address is required when cache is enabled")
	}
	return nil
}
