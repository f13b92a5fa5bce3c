// internal/rating/scorer/scorer_test.go
package scorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-pool-rater/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestMortgage(id string) *models.ValidatedMortgage {
	return &models.ValidatedMortgage{
		ID:            id,
		CreditScore:   720,
		LoanAmount:    250000,
		PropertyValue: 400000,
		AnnualIncome:  90000,
		DebtToIncome:  0.3,
		LoanToValue:   0.625,
		LoanType:      models.LoanTypeFixed,
		Delinquencies: 0,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestScorer_Compute_Bands(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		mortgage *models.ValidatedMortgage
		maxScore float64
		minScore float64
	}{
		{
			// credit 9.09*0.30 + leverage 33.33*0.25 + dti 20*0.20 + fixed -5 ~= 10.06
			name: "strong borrower lands in low band",
			mortgage: &models.ValidatedMortgage{
				ID: "a", CreditScore: 800, LoanToValue: 0.5, DebtToIncome: 0.2,
				LoanType: models.LoanTypeFixed, Delinquencies: 0,
			},
			maxScore: 30,
		},
		{
			// credit 54.55*0.30 + leverage 80*0.25 + dti 60*0.20 + delinq 100*0.15 + adjustable +5 ~= 68.36
			name: "weak borrower lands in high band",
			mortgage: &models.ValidatedMortgage{
				ID: "b", CreditScore: 550, LoanToValue: 1.2, DebtToIncome: 0.6,
				LoanType: models.LoanTypeAdjustable, Delinquencies: 5,
			},
			minScore: 65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := s.Compute(tt.mortgage)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
			if tt.maxScore > 0 {
				assert.Less(t, score, tt.maxScore)
			}
			if tt.minScore > 0 {
				assert.Greater(t, score, tt.minScore)
			}
		})
	}
}

func TestScorer_Compute_ExactComposition(t *testing.T) {
	s := New()

	m := &models.ValidatedMortgage{
		ID: "exact", CreditScore: 800, LoanToValue: 0.5, DebtToIncome: 0.2,
		LoanType: models.LoanTypeFixed, Delinquencies: 0,
	}

	// (50/550*100)*0.30 + (0.5/1.5*100)*0.25 + 20*0.20 + 0 - 5
	expected := (50.0/550.0*100)*WeightCredit + (0.5/1.5*100)*WeightLeverage + 20*WeightAffordability + AdjustFixed
	assert.InDelta(t, expected, s.Compute(m), 1e-9)
}

func TestScorer_Compute_Deterministic(t *testing.T) {
	s := New()
	m := createTestMortgage("det")

	first := s.Compute(m)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, s.Compute(m))
	}
}

func TestScorer_Compute_DelinquencyMonotonicity(t *testing.T) {
	s := New()

	prev := -1.0
	for count := 0; count <= 10; count++ {
		m := createTestMortgage("mono")
		m.Delinquencies = count
		score := s.Compute(m)
		assert.GreaterOrEqual(t, score, prev, "delinquencies=%d must not lower the score", count)
		prev = score
	}
}

func TestScorer_Compute_DelinquencySaturates(t *testing.T) {
	s := New()

	atCap := createTestMortgage("cap")
	atCap.Delinquencies = DelinquencyCap
	beyondCap := createTestMortgage("cap")
	beyondCap.Delinquencies = DelinquencyCap + 20

	assert.Equal(t, s.Compute(atCap), s.Compute(beyondCap))
}

func TestScorer_Compute_LoanTypeOrdering(t *testing.T) {
	s := New()

	fixed := createTestMortgage("lt")
	adjustable := createTestMortgage("lt")
	adjustable.LoanType = models.LoanTypeAdjustable
	interestOnly := createTestMortgage("lt")
	interestOnly.LoanType = models.LoanTypeInterestOnly

	assert.Less(t, s.Compute(fixed), s.Compute(adjustable))
	assert.Less(t, s.Compute(adjustable), s.Compute(interestOnly))
}

func TestScorer_Compute_CondoSurcharge(t *testing.T) {
	s := New()

	house := createTestMortgage("pt")
	house.PropertyType = models.PropertyTypeSingleFamily
	condo := createTestMortgage("pt")
	condo.PropertyType = models.PropertyTypeCondo

	assert.InDelta(t, AdjustCondo, s.Compute(condo)-s.Compute(house), 1e-9)
}

func TestScorer_Compute_ClampedToRange(t *testing.T) {
	s := New()

	// Best possible terms push the raw sum below zero; clamp holds the floor.
	best := &models.ValidatedMortgage{
		ID: "best", CreditScore: 850, LoanToValue: 0.01, DebtToIncome: 0,
		LoanType: models.LoanTypeFixed, Delinquencies: 0,
	}
	assert.Equal(t, 0.0, s.Compute(best))

	worst := &models.ValidatedMortgage{
		ID: "worst", CreditScore: 300, LoanToValue: 1.5, DebtToIncome: 1,
		LoanType: models.LoanTypeInterestOnly, PropertyType: models.PropertyTypeCondo,
		Delinquencies: 20,
	}
	score := s.Compute(worst)
	assert.LessOrEqual(t, score, 100.0)
	assert.Greater(t, score, 90.0)
}

func TestScorer_Score_NeverErrors(t *testing.T) {
	s := New()

	score, err := s.Score(context.Background(), createTestMortgage("iface"))
	require.NoError(t, err)
	assert.Equal(t, s.Compute(createTestMortgage("iface")), score)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkScorer_Compute(b *testing.B) {
	s := New()
	m := createTestMortgage("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Compute(m)
	}
}
