// internal/rating/executor/executor_test.go
package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mortgage-pool-rater/internal/common/errors"
	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/models"
	"mortgage-pool-rater/internal/rating/partition"
)

// ==========================
// Test Helper Functions
// ==========================

// stubScorer scores each record as float64(credit score) and panics on
// records whose ID is listed in panicOn.
type stubScorer struct {
	panicOn map[string]bool
}

func (s *stubScorer) Score(_ context.Context, m *models.ValidatedMortgage) (float64, error) {
	if s.panicOn[m.ID] {
		panic(fmt.Sprintf("bad record %s", m.ID))
	}
	return float64(m.CreditScore), nil
}

func createTestMortgages(n int) []models.ValidatedMortgage {
	out := make([]models.ValidatedMortgage, n)
	for i := 0; i < n; i++ {
		out[i] = models.ValidatedMortgage{
			ID:          fmt.Sprintf("m-%04d", i),
			CreditScore: 300 + i%551,
		}
	}
	return out
}

func createTestPool(t *testing.T, workers int, scorer Scorer) *Pool {
	pool, err := NewPool(workers, scorer, logger.NewTestLogger(t))
	require.NoError(t, err)
	return pool
}

// ==========================
// Construction Tests
// ==========================

func TestNewPool_RejectsBadConfiguration(t *testing.T) {
	_, err := NewPool(0, &stubScorer{}, logger.NewNoOpLogger())
	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeWorkerPoolInvalid, stdErr.Code)

	_, err = NewPool(4, nil, logger.NewNoOpLogger())
	require.Error(t, err)
}

func TestWorkerCount_MinimumOne(t *testing.T) {
	assert.GreaterOrEqual(t, WorkerCount(0.75), 1)
	assert.Equal(t, 1, WorkerCount(0.0000001))
	// Non-positive fraction falls back to the default.
	assert.Equal(t, WorkerCount(DefaultWorkerFraction), WorkerCount(0))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestPool_Run_ScoresEverything(t *testing.T) {
	records := createTestMortgages(100)
	pool := createTestPool(t, 4, &stubScorer{})

	result, err := pool.Run(context.Background(), partition.Split(records, 4))

	require.NoError(t, err)
	require.Len(t, result.Scores, 100)
	assert.Empty(t, result.Failures)
}

func TestPool_Run_EmptyChunks(t *testing.T) {
	pool := createTestPool(t, 4, &stubScorer{})

	result, err := pool.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result.Scores)
	assert.Empty(t, result.Failures)
}

func TestPool_Run_MergesInInputOrder(t *testing.T) {
	records := createTestMortgages(257)

	for _, workers := range []int{1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			pool := createTestPool(t, workers, &stubScorer{})

			result, err := pool.Run(context.Background(), partition.Split(records, workers))
			require.NoError(t, err)
			require.Len(t, result.Scores, len(records))

			for i, score := range result.Scores {
				assert.Equal(t, records[i].ID, score.MortgageID)
			}
		})
	}
}

func TestPool_Run_RecordFaultDoesNotAbortChunk(t *testing.T) {
	records := createTestMortgages(50)
	scorer := &stubScorer{panicOn: map[string]bool{"m-0007": true, "m-0031": true}}
	pool := createTestPool(t, 4, scorer)

	result, err := pool.Run(context.Background(), partition.Split(records, 4))

	require.NoError(t, err)
	assert.Len(t, result.Scores, 48)
	require.Len(t, result.Failures, 2)

	failedIDs := map[string]bool{}
	for _, f := range result.Failures {
		failedIDs[f.MortgageID] = true
		assert.Contains(t, f.Detail, "scoring panic")
	}
	assert.True(t, failedIDs["m-0007"])
	assert.True(t, failedIDs["m-0031"])
}

func TestPool_Run_ConservationInvariant(t *testing.T) {
	records := createTestMortgages(500)
	scorer := &stubScorer{panicOn: map[string]bool{
		"m-0001": true, "m-0100": true, "m-0250": true, "m-0499": true,
	}}
	pool := createTestPool(t, 8, scorer)

	result, err := pool.Run(context.Background(), partition.Split(records, 8))
	require.NoError(t, err)

	assert.Equal(t, len(records), len(result.Scores)+len(result.Failures))

	seen := map[string]bool{}
	for _, s := range result.Scores {
		assert.False(t, seen[s.MortgageID])
		seen[s.MortgageID] = true
	}
	for _, f := range result.Failures {
		assert.False(t, seen[f.MortgageID])
		seen[f.MortgageID] = true
	}
	assert.Len(t, seen, len(records))
}

func TestPool_Run_CancelledRunDiscardsPartialResults(t *testing.T) {
	records := createTestMortgages(1000)
	pool := createTestPool(t, 4, &stubScorer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := pool.Run(ctx, partition.Split(records, 4))

	assert.Nil(t, result)
	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeRunCancelled, stdErr.Code)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkPool_Run_10K(b *testing.B) {
	records := createTestMortgages(10000)
	pool, _ := NewPool(4, &stubScorer{}, logger.NewNoOpLogger())
	chunks := partition.Split(records, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Run(context.Background(), chunks)
	}
}
