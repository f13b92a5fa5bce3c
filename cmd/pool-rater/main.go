// cmd/pool-rater/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mortgage-pool-rater/internal/common/config"
	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/common/observability"
	"mortgage-pool-rater/internal/ingest"
	"mortgage-pool-rater/internal/rating/executor"
	"mortgage-pool-rater/internal/rating/pipeline"
	"mortgage-pool-rater/internal/rating/scorecache"
	"mortgage-pool-rater/internal/rating/scorer"
	"mortgage-pool-rater/internal/report"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pool rater...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	inputPath := cfg.Input.Path
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}
	if inputPath == "" {
		zapLog.Fatal("no input file: pass a path argument or set input.path in config")
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, "ok")
			})
			zapLog.Info("metrics listener started", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	// --- Build the scorer, optionally behind the Redis cache ---
	var poolScorer executor.Scorer = scorer.New()
	if cfg.Cache.Enabled {
		var redisClient *redis.Client
		err := retryWithBackoff(func() error {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.Address,
				Password: cfg.Cache.Password,
				DB:       cfg.Cache.DB,
			})
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx).Err()
		}, 5, time.Second, zapLog, "Redis client initialization")
		if err != nil {
			zapLog.Warn("score cache unavailable, scoring without it", zap.Error(err))
		} else {
			defer redisClient.Close()
			poolScorer = scorecache.New(poolScorer, redisClient, cfg.Cache.GetTTL(), log)
		}
	}

	pipe, err := pipeline.New(pipeline.OptionsFromConfig(cfg), poolScorer, log)
	if err != nil {
		zapLog.Fatal("pipeline construction failed", zap.Error(err))
	}

	records, err := ingest.LoadFile(inputPath)
	if err != nil {
		zapLog.Fatal("input load failed", zap.String("path", inputPath), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if timeout := cfg.Pipeline.GetRunTimeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// SIGINT/SIGTERM cancel the run; partial results are discarded.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		zapLog.Warn("signal received, cancelling run", zap.String("signal", sig.String()))
		cancel()
	}()

	result, err := pipe.Run(ctx, records)
	if err != nil {
		zapLog.Fatal("run failed", zap.Error(err))
	}

	if err := report.WriteFile(cfg.Output.Path, result); err != nil {
		zapLog.Fatal("report write failed", zap.Error(err))
	}

	zapLog.Info(report.Summary(result))
}
