// internal/rating/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mortgage-pool-rater/internal/common/config"
	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/common/metrics"
	"mortgage-pool-rater/internal/common/observability"
	"mortgage-pool-rater/internal/models"
	"mortgage-pool-rater/internal/rating/aggregate"
	"mortgage-pool-rater/internal/rating/executor"
	"mortgage-pool-rater/internal/rating/partition"
	"mortgage-pool-rater/internal/rating/validator"
)

// Pipeline sequences validate -> partition -> execute -> aggregate over one
// batch of raw mortgage records. All tunables are fixed at construction and
// scoped to the instance; a Pipeline may run any number of batches.
type Pipeline struct {
	workers    int
	chunkCount int
	validator  *validator.Validator
	pool       *executor.Pool
	aggregator *aggregate.Aggregator
	logger     logger.Logger
	obs        *observability.Observability
}

// Options carries everything the orchestrator decides up front. Zero values
// fall back to defaults: worker count from DefaultWorkerFraction, one chunk
// per worker.
type Options struct {
	Workers    int
	ChunkCount int
	Aggregate  aggregate.Config
	Obs        *observability.Observability
}

// OptionsFromConfig maps the external configuration onto pipeline options,
// resolving the CPU fraction into a concrete worker count.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Workers:    executor.WorkerCount(cfg.Pipeline.WorkerFraction),
		ChunkCount: cfg.Pipeline.ChunkCount,
		Aggregate: aggregate.Config{
			WeightByLoanAmount:   cfg.Rating.WeightByLoanAmount,
			PoolCreditAdjustment: cfg.Rating.PoolCreditAdjustment,
			AAAMax:               cfg.Rating.AAAMax,
			BBBMax:               cfg.Rating.BBBMax,
		},
	}
}

func New(opts Options, scorer executor.Scorer, log logger.Logger) (*Pipeline, error) {
	workers := opts.Workers
	if workers == 0 {
		workers = executor.WorkerCount(executor.DefaultWorkerFraction)
	}

	pool, err := executor.NewPool(workers, scorer, log)
	if err != nil {
		return nil, err
	}

	chunkCount := opts.ChunkCount
	if chunkCount == 0 {
		chunkCount = workers
	}

	return &Pipeline{
		workers:    workers,
		chunkCount: chunkCount,
		validator:  validator.New(log),
		pool:       pool,
		aggregator: aggregate.New(opts.Aggregate, log),
		logger:     log.WithFields(map[string]interface{}{"component": "pipeline"}),
		obs:        opts.Obs,
	}, nil
}

// Run rates one batch. Per-record problems come back inside the PoolResult;
// only structural failures (cancellation, pool misconfiguration) return an
// error, and then no result is produced.
func (p *Pipeline) Run(ctx context.Context, records []models.RawMortgage) (*models.PoolResult, error) {
	runID := uuid.NewString()
	started := time.Now()

	log := p.logger.WithFields(map[string]interface{}{"runId": runID})
	log.Info("run started", map[string]interface{}{
		"records": len(records),
		"workers": p.workers,
		"chunks":  p.chunkCount,
	})

	validated, rejected := p.validator.ValidateAll(records)
	metrics.PoolRecordsValidated.Add(float64(len(validated)))
	for _, rej := range rejected {
		metrics.PoolRecordsRejected.WithLabelValues(string(rej.Reason)).Inc()
	}

	chunks := partition.Split(validated, p.chunkCount)

	execResult, err := p.pool.Run(ctx, chunks)
	if err != nil {
		log.Error("run aborted", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	metrics.PoolRecordsScored.Add(float64(len(execResult.Scores)))
	metrics.PoolRecordsFailed.Add(float64(len(execResult.Failures)))

	result := p.aggregator.Aggregate(validated, execResult.Scores, rejected, execResult.Failures)
	result.RunID = runID

	elapsed := time.Since(started)
	metrics.PoolRunsCompleted.WithLabelValues(result.Rating).Inc()
	metrics.PoolRunDuration.Observe(elapsed.Seconds())
	metrics.PoolMeanRiskScore.Set(result.MeanScore)
	if p.obs != nil {
		p.obs.RecordRunProcessed(ctx, result.Rating)
		p.obs.RecordRunDuration(ctx, elapsed, result.Rating)
	}

	log.Info("run finished", map[string]interface{}{
		"rating":   result.Rating,
		"mean":     result.MeanScore,
		"scored":   result.ScoredCount,
		"rejected": result.RejectedCount,
		"failed":   result.FailedCount,
		"elapsed":  elapsed.String(),
	})

	return result, nil
}
