// internal/rating/scorer/scorer.go
package scorer

import (
	"context"

	"mortgage-pool-rater/internal/models"
)

// Component weights. Each component is a sub-score in [0,100]; the weighted
// sum plus the flat structure adjustments is clamped back to [0,100].
// Weighting: credit 30%, leverage 25%, affordability 20%, delinquency 15%.
const (
	WeightCredit        = 0.30
	WeightLeverage      = 0.25
	WeightAffordability = 0.20
	WeightDelinquency   = 0.15
)

// Flat adjustments for loan and collateral structure. Fixed-rate loans get a
// small discount; rate-volatile structures a surcharge.
const (
	AdjustFixed        = -5.0
	AdjustAdjustable   = 5.0
	AdjustInterestOnly = 8.0
	AdjustCondo        = 3.0
)

// DelinquencyCap saturates the delinquency penalty: events beyond the cap
// contribute nothing extra.
const DelinquencyCap = 5

// Scorer computes the per-mortgage risk score. It is a deterministic pure
// function of the validated record: no shared state, no I/O, total over
// every field combination that passes validation.
type Scorer struct{}

func New() *Scorer {
	return &Scorer{}
}

// Score implements the executor's Scorer interface. It never returns an
// error; the signature exists so caching decorators can wrap it.
func (s *Scorer) Score(_ context.Context, m *models.ValidatedMortgage) (float64, error) {
	return s.Compute(m), nil
}

// Compute returns the risk score in [0,100], lower = safer.
func (s *Scorer) Compute(m *models.ValidatedMortgage) float64 {
	score := creditComponent(m.CreditScore)*WeightCredit +
		leverageComponent(m.LoanToValue)*WeightLeverage +
		affordabilityComponent(m.DebtToIncome)*WeightAffordability +
		delinquencyComponent(m.Delinquencies)*WeightDelinquency

	score += structureAdjustment(m.LoanType, m.PropertyType)

	return clamp(score, 0, 100)
}

// creditComponent maps the credit score inverse-linearly onto [0,100]:
// a 300 score is maximum risk, 850 is none.
func creditComponent(creditScore int) float64 {
	return float64(850-creditScore) / float64(850-300) * 100
}

// leverageComponent scales LTV over its validated domain (0,1.5].
func leverageComponent(ltv float64) float64 {
	return ltv / 1.5 * 100
}

// affordabilityComponent scales DTI over its validated domain [0,1].
func affordabilityComponent(dti float64) float64 {
	return dti * 100
}

// delinquencyComponent grows linearly per event and saturates at the cap.
func delinquencyComponent(count int) float64 {
	if count > DelinquencyCap {
		count = DelinquencyCap
	}
	return float64(count) / float64(DelinquencyCap) * 100
}

func structureAdjustment(loanType models.LoanType, propertyType models.PropertyType) float64 {
	adjustment := 0.0
	switch loanType {
	case models.LoanTypeFixed:
		adjustment += AdjustFixed
	case models.LoanTypeAdjustable:
		adjustment += AdjustAdjustable
	case models.LoanTypeInterestOnly:
		adjustment += AdjustInterestOnly
	}
	if propertyType == models.PropertyTypeCondo {
		adjustment += AdjustCondo
	}
	return adjustment
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
