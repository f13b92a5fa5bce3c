// internal/rating/aggregate/aggregate.go
package aggregate

import (
	"fmt"

	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/models"
)

// Default band cutoffs for the pool mean score. Reasonable policy defaults,
// not a regulatory contract; override per pool via Config.
const (
	DefaultAAAMax = 30.0
	DefaultBBBMax = 65.0
)

// Pool-level credit adjustment: a pool of strong (weak) borrowers shifts the
// mean down (up) by a fixed amount before banding.
const (
	strongPoolCreditScore = 700
	weakPoolCreditScore   = 650
	poolCreditShift       = 2.0
)

// Config selects the aggregation policy.
type Config struct {
	// WeightByLoanAmount switches the mean from arithmetic to
	// loan-amount-weighted.
	WeightByLoanAmount bool
	// PoolCreditAdjustment enables the average-borrower-credit shift.
	PoolCreditAdjustment bool
	// AAAMax and BBBMax are the band cutoffs: mean <= AAAMax is AAA,
	// mean <= BBBMax is BBB, anything above is C.
	AAAMax float64
	BBBMax float64
}

func DefaultConfig() Config {
	return Config{
		PoolCreditAdjustment: true,
		AAAMax:               DefaultAAAMax,
		BBBMax:               DefaultBBBMax,
	}
}

// Aggregator reduces per-record outcomes into one PoolResult. The reduction
// is sum-based, so it is commutative over the score list: worker scheduling
// and merge order never change the result.
type Aggregator struct {
	cfg    Config
	logger logger.Logger
}

func New(cfg Config, log logger.Logger) *Aggregator {
	if cfg.AAAMax == 0 {
		cfg.AAAMax = DefaultAAAMax
	}
	if cfg.BBBMax == 0 {
		cfg.BBBMax = DefaultBBBMax
	}
	return &Aggregator{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"stage": "aggregate"}),
	}
}

// Aggregate builds the terminal PoolResult. Rejections and failures are
// always carried into the result, never dropped. A pool with zero scored
// mortgages is UNRATED with an explicit diagnostic.
func (a *Aggregator) Aggregate(
	validated []models.ValidatedMortgage,
	scores []models.RiskScore,
	rejects []models.RejectionRecord,
	failures []models.ExecutionFailure,
) *models.PoolResult {
	result := &models.PoolResult{
		TotalRecords:  len(scores) + len(rejects) + len(failures),
		ScoredCount:   len(scores),
		RejectedCount: len(rejects),
		FailedCount:   len(failures),
		Rejections:    rejects,
		Failures:      failures,
	}

	if len(scores) == 0 {
		result.Rating = models.RatingUnrated
		result.Diagnostic = fmt.Sprintf(
			"no mortgage could be scored: %d rejected, %d failed", len(rejects), len(failures))
		return result
	}

	byID := make(map[string]*models.ValidatedMortgage, len(validated))
	for i := range validated {
		byID[validated[i].ID] = &validated[i]
	}

	mean := a.meanScore(scores, byID)
	if a.cfg.PoolCreditAdjustment {
		mean = adjustForPoolCredit(mean, scores, byID)
	}

	result.MeanScore = mean
	result.Rating = a.band(mean)

	a.logger.Info("pool aggregated", map[string]interface{}{
		"scored":    result.ScoredCount,
		"rejected":  result.RejectedCount,
		"failed":    result.FailedCount,
		"meanScore": result.MeanScore,
		"rating":    result.Rating,
	})

	return result
}

func (a *Aggregator) meanScore(scores []models.RiskScore, byID map[string]*models.ValidatedMortgage) float64 {
	if a.cfg.WeightByLoanAmount {
		var weightedSum, totalWeight float64
		for _, s := range scores {
			weight := 1.0
			if m, ok := byID[s.MortgageID]; ok {
				weight = m.LoanAmount
			}
			weightedSum += s.Score * weight
			totalWeight += weight
		}
		return weightedSum / totalWeight
	}

	var sum float64
	for _, s := range scores {
		sum += s.Score
	}
	return sum / float64(len(scores))
}

// adjustForPoolCredit shifts the pool mean by the average borrower credit
// score of the scored mortgages, clamped back to [0,100].
func adjustForPoolCredit(mean float64, scores []models.RiskScore, byID map[string]*models.ValidatedMortgage) float64 {
	var creditSum float64
	counted := 0
	for _, s := range scores {
		if m, ok := byID[s.MortgageID]; ok {
			creditSum += float64(m.CreditScore)
			counted++
		}
	}
	if counted == 0 {
		return mean
	}

	avgCredit := creditSum / float64(counted)
	switch {
	case avgCredit >= strongPoolCreditScore:
		mean -= poolCreditShift
	case avgCredit < weakPoolCreditScore:
		mean += poolCreditShift
	}

	if mean < 0 {
		return 0
	}
	if mean > 100 {
		return 100
	}
	return mean
}

func (a *Aggregator) band(mean float64) string {
	switch {
	case mean <= a.cfg.AAAMax:
		return models.RatingAAA
	case mean <= a.cfg.BBBMax:
		return models.RatingBBB
	default:
		return models.RatingC
	}
}
