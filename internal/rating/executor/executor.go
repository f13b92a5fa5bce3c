// internal/rating/executor/executor.go
package executor

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"mortgage-pool-rater/internal/common/errors"
	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/models"
)

// DefaultWorkerFraction is the share of detected CPUs used when the caller
// does not configure one.
const DefaultWorkerFraction = 0.75

// Scorer computes one risk score. Implementations must be safe for
// concurrent use; the pure scorer and its cache decorator both qualify.
type Scorer interface {
	Score(ctx context.Context, m *models.ValidatedMortgage) (float64, error)
}

// Result carries the merged per-record outcomes of one run. Scores appear in
// input order regardless of worker scheduling, so downstream aggregation is
// reproducible bit-for-bit across pool sizes.
type Result struct {
	Scores   []models.RiskScore
	Failures []models.ExecutionFailure
}

// Pool is a bounded worker pool that applies a Scorer to chunks of validated
// mortgages. Workers share only the read-only input; each chunk is consumed
// by exactly one worker.
type Pool struct {
	workers int
	scorer  Scorer
	logger  logger.Logger
}

// WorkerCount translates a CPU fraction into a pool size:
// max(1, floor(NumCPU * fraction)).
func WorkerCount(fraction float64) int {
	if fraction <= 0 {
		fraction = DefaultWorkerFraction
	}
	n := int(float64(runtime.NumCPU()) * fraction)
	if n < 1 {
		n = 1
	}
	return n
}

func NewPool(workers int, scorer Scorer, log logger.Logger) (*Pool, error) {
	if workers < 1 {
		return nil, errors.NewWorkerPoolInvalidError(
			fmt.Sprintf("worker count must be >= 1, got %d", workers))
	}
	if scorer == nil {
		return nil, errors.NewWorkerPoolInvalidError("scorer must not be nil")
	}
	return &Pool{
		workers: workers,
		scorer:  scorer,
		logger:  log.WithFields(map[string]interface{}{"stage": "execute", "workers": workers}),
	}, nil
}

// Workers returns the configured pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// chunkResult is one worker's outcome for one chunk, tagged with the chunk
// index so the merge can restore input order.
type chunkResult struct {
	index    int
	scores   []models.RiskScore
	failures []models.ExecutionFailure
}

// Run scores every record of every chunk and blocks until all chunks finish
// or ctx is cancelled. A per-record fault becomes an ExecutionFailure and
// never aborts its chunk; cancellation aborts the whole run and discards
// partial results.
func (p *Pool) Run(ctx context.Context, chunks [][]models.ValidatedMortgage) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{Scores: []models.RiskScore{}, Failures: []models.ExecutionFailure{}}, nil
	}

	jobs := make(chan int, len(chunks))
	results := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	workers := p.workers
	if workers > len(chunks) {
		workers = len(chunks)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, err := p.processChunk(ctx, idx, chunks[idx])
				if err != nil {
					// Cancelled; stop consuming. Remaining jobs are
					// abandoned, the merge below notices via ctx.
					return
				}
				results <- res
			}
		}()
	}

	for i := range chunks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		p.logger.Warn("run cancelled, discarding partial results", map[string]interface{}{
			"chunks": len(chunks),
		})
		return nil, errors.NewRunCancelledError(err)
	}

	merged := make([]chunkResult, len(chunks))
	for res := range results {
		merged[res.index] = res
	}

	out := &Result{Scores: []models.RiskScore{}, Failures: []models.ExecutionFailure{}}
	for _, res := range merged {
		out.Scores = append(out.Scores, res.scores...)
		out.Failures = append(out.Failures, res.failures...)
	}

	return out, nil
}

func (p *Pool) processChunk(ctx context.Context, idx int, chunk []models.ValidatedMortgage) (chunkResult, error) {
	res := chunkResult{index: idx}

	for i := range chunk {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		m := &chunk[i]
		score, err := p.scoreRecord(ctx, m)
		if err != nil {
			p.logger.Warn("record scoring faulted", map[string]interface{}{
				"mortgageId": m.ID,
				"error":      err.Error(),
			})
			res.failures = append(res.failures, models.ExecutionFailure{
				MortgageID: m.ID,
				Reason:     errors.ErrCodeScoringFault,
				Detail:     err.Error(),
			})
			continue
		}
		res.scores = append(res.scores, models.RiskScore{MortgageID: m.ID, Score: score})
	}

	return res, nil
}

// scoreRecord wraps one Scorer call with panic recovery so a fault in one
// record cannot take down the worker.
func (p *Pool) scoreRecord(ctx context.Context, m *models.ValidatedMortgage) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	return p.scorer.Score(ctx, m)
}
