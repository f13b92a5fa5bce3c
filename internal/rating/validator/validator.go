// internal/rating/validator/validator.go
package validator

import (
	"fmt"
	"time"

	"mortgage-pool-rater/internal/common/errors"
	"mortgage-pool-rater/internal/common/logger"
	"mortgage-pool-rater/internal/models"
)

const (
	// CreditScoreMin and CreditScoreMax bound the accepted FICO range.
	CreditScoreMin = 300
	CreditScoreMax = 850

	// LTVMax is the upper bound of the accepted loan-to-value range.
	LTVMax = 1.5

	// CollateralBoundFactor caps the loan amount relative to the property
	// value. Anything above it is a data error, not a risky loan.
	CollateralBoundFactor = 1.5
)

// Validator checks raw mortgage records against the business rules. It is
// read-only over its input and never panics: every record comes back as
// either a ValidatedMortgage or a RejectionRecord carrying the first failing
// rule.
type Validator struct {
	logger logger.Logger
	now    func() time.Time
}

func New(log logger.Logger) *Validator {
	return &Validator{
		logger: log.WithFields(map[string]interface{}{"stage": "validate"}),
		now:    time.Now,
	}
}

// Validate runs the ordered rule set over one raw record. Exactly one of the
// two return values is non-nil.
func (v *Validator) Validate(raw *models.RawMortgage) (*models.ValidatedMortgage, *models.RejectionRecord) {
	if rej := v.checkRequired(raw); rej != nil {
		return nil, rej
	}
	if rej := v.checkRanges(raw); rej != nil {
		return nil, rej
	}

	ltv := deriveLTV(raw)
	if ltv <= 0 || ltv > LTVMax {
		return nil, v.reject(raw.ID, errors.ErrCodeLTVRange,
			fmt.Sprintf("loan_to_value must be in (0,%v], got %v", LTVMax, ltv))
	}

	if rej := v.checkConsistency(raw); rej != nil {
		return nil, rej
	}

	propertyType := models.PropertyTypeUnknown
	if raw.PropertyType != nil {
		propertyType = models.PropertyType(*raw.PropertyType)
	}

	return &models.ValidatedMortgage{
		ID:            raw.ID,
		CreditScore:   *raw.CreditScore,
		LoanAmount:    *raw.LoanAmount,
		PropertyValue: *raw.PropertyValue,
		AnnualIncome:  *raw.AnnualIncome,
		DebtToIncome:  *raw.DebtToIncome,
		LoanToValue:   ltv,
		LoanType:      models.LoanType(*raw.LoanType),
		PropertyType:  propertyType,
		Delinquencies: *raw.Delinquencies,
		ValidatedAt:   v.now().UTC(),
	}, nil
}

// ValidateAll partitions raw records into validated mortgages and
// rejections. Relative input order is preserved in both outputs.
func (v *Validator) ValidateAll(raws []models.RawMortgage) ([]models.ValidatedMortgage, []models.RejectionRecord) {
	validated := make([]models.ValidatedMortgage, 0, len(raws))
	rejected := []models.RejectionRecord{}

	for i := range raws {
		vm, rej := v.Validate(&raws[i])
		if rej != nil {
			v.logger.Debug("record rejected", map[string]interface{}{
				"mortgageId": rej.MortgageID,
				"reason":     rej.Reason,
			})
			rejected = append(rejected, *rej)
			continue
		}
		validated = append(validated, *vm)
	}

	return validated, rejected
}

func (v *Validator) checkRequired(raw *models.RawMortgage) *models.RejectionRecord {
	missing := ""
	switch {
	case raw.ID == "":
		missing = "id"
	case raw.CreditScore == nil:
		missing = "credit_score"
	case raw.LoanAmount == nil:
		missing = "loan_amount"
	case raw.PropertyValue == nil:
		missing = "property_value"
	case raw.AnnualIncome == nil:
		missing = "annual_income"
	case raw.DebtToIncome == nil:
		missing = "debt_to_income"
	case raw.LoanType == nil:
		missing = "loan_type"
	case raw.Delinquencies == nil:
		missing = "delinquencies"
	}
	if missing == "" {
		return nil
	}
	return v.reject(raw.ID, errors.ErrCodeMissingField,
		fmt.Sprintf("required field missing: %s", missing))
}

func (v *Validator) checkRanges(raw *models.RawMortgage) *models.RejectionRecord {
	if cs := *raw.CreditScore; cs < CreditScoreMin || cs > CreditScoreMax {
		return v.reject(raw.ID, errors.ErrCodeCreditScoreRange,
			fmt.Sprintf("credit_score must be in [%d,%d], got %d", CreditScoreMin, CreditScoreMax, cs))
	}
	if *raw.LoanAmount <= 0 {
		return v.reject(raw.ID, errors.ErrCodeNonPositiveLoan,
			fmt.Sprintf("loan_amount must be > 0, got %v", *raw.LoanAmount))
	}
	if *raw.PropertyValue <= 0 {
		return v.reject(raw.ID, errors.ErrCodeNonPositiveProperty,
			fmt.Sprintf("property_value must be > 0, got %v", *raw.PropertyValue))
	}
	if *raw.AnnualIncome <= 0 {
		return v.reject(raw.ID, errors.ErrCodeNonPositiveIncome,
			fmt.Sprintf("annual_income must be > 0, got %v", *raw.AnnualIncome))
	}
	if dti := *raw.DebtToIncome; dti < 0 || dti > 1 {
		return v.reject(raw.ID, errors.ErrCodeDTIRange,
			fmt.Sprintf("debt_to_income must be in [0,1], got %v", dti))
	}
	if *raw.Delinquencies < 0 {
		return v.reject(raw.ID, errors.ErrCodeNegativeDelinquency,
			fmt.Sprintf("delinquencies must be >= 0, got %d", *raw.Delinquencies))
	}
	if !models.ValidLoanType(*raw.LoanType) {
		return v.reject(raw.ID, errors.ErrCodeInvalidLoanType,
			fmt.Sprintf("loan_type must be one of fixed, adjustable, interest_only; got %q", *raw.LoanType))
	}
	if raw.PropertyType != nil && !models.ValidPropertyType(*raw.PropertyType) {
		return v.reject(raw.ID, errors.ErrCodeInvalidPropertyType,
			fmt.Sprintf("property_type must be one of single_family, condo; got %q", *raw.PropertyType))
	}
	return nil
}

func (v *Validator) checkConsistency(raw *models.RawMortgage) *models.RejectionRecord {
	if *raw.LoanAmount > *raw.PropertyValue*CollateralBoundFactor {
		return v.reject(raw.ID, errors.ErrCodeLoanExceedsBound,
			fmt.Sprintf("loan_amount %v exceeds property_value %v x %v",
				*raw.LoanAmount, *raw.PropertyValue, CollateralBoundFactor))
	}
	if *raw.DebtToIncome > 0 && *raw.AnnualIncome <= 0 {
		return v.reject(raw.ID, errors.ErrCodeIncomeRatioMismatch,
			"debt_to_income is positive but annual_income is not")
	}
	return nil
}

// deriveLTV prefers the supplied ratio and falls back to loan/property.
// Required fields are non-nil and property_value is positive by the time
// this runs.
func deriveLTV(raw *models.RawMortgage) float64 {
	if raw.LoanToValue != nil {
		return *raw.LoanToValue
	}
	return *raw.LoanAmount / *raw.PropertyValue
}

func (v *Validator) reject(id string, reason errors.ErrorCode, detail string) *models.RejectionRecord {
	return &models.RejectionRecord{
		MortgageID: id,
		Reason:     reason,
		Detail:     detail,
	}
}
