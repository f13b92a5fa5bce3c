// internal/rating/scorecache/cache.go
package scorecache

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/models"
	"mortgage-pool-rater/internal/rating/executor"
)

// CachedScorer is a read-through Redis decorator around a Scorer. The key is
// a hash of every score-relevant field, so identical mortgage terms across
// runs hit the cache. Cache misses and Redis errors fall back to computing;
// they are never surfaced as record failures.
type CachedScorer struct {
	inner  executor.Scorer
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(inner executor.Scorer, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedScorer {
	return &CachedScorer{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"stage": "score-cache"}),
	}
}

func (c *CachedScorer) Score(ctx context.Context, m *models.ValidatedMortgage) (float64, error) {
	key := c.cacheKey(m)

	if val, err := c.client.Get(ctx, key).Result(); err == nil {
		if score, perr := strconv.ParseFloat(val, 64); perr == nil {
			return score, nil
		}
	}

	score, err := c.inner.Score(ctx, m)
	if err != nil {
		return 0, err
	}

	if serr := c.client.Set(ctx, key, strconv.FormatFloat(score, 'g', -1, 64), c.ttl).Err(); serr != nil {
		c.logger.Debug("cache write failed", map[string]interface{}{
			"mortgageId": m.ID,
			"error":      serr.Error(),
		})
	}

	return score, nil
}

// cacheKey hashes the fields the score depends on. The record id is
// deliberately excluded: two mortgages with identical terms score the same.
func (c *CachedScorer) cacheKey(m *models.ValidatedMortgage) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%g|%g|%s|%s|%d",
		m.CreditScore, m.LoanToValue, m.DebtToIncome,
		m.LoanType, m.PropertyType, m.Delinquencies)
	return fmt.Sprintf("mortgage:score:%x", h.Sum64())
}
