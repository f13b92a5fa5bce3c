// internal/models/mortgage.go
package models

import "time"

// LoanType enumerates the supported amortization structures.
type LoanType string

const (
	LoanTypeFixed        LoanType = "fixed"
	LoanTypeAdjustable   LoanType = "adjustable"
	LoanTypeInterestOnly LoanType = "interest_only"
)

// ValidLoanType reports whether s is an allowed loan type.
func ValidLoanType(s string) bool {
	switch LoanType(s) {
	case LoanTypeFixed, LoanTypeAdjustable, LoanTypeInterestOnly:
		return true
	}
	return false
}

// PropertyType enumerates the supported collateral categories. The field is
// optional on input; records without it carry PropertyTypeUnknown.
type PropertyType string

const (
	PropertyTypeUnknown      PropertyType = ""
	PropertyTypeSingleFamily PropertyType = "single_family"
	PropertyTypeCondo        PropertyType = "condo"
)

// ValidPropertyType reports whether s is an allowed property type.
func ValidPropertyType(s string) bool {
	switch PropertyType(s) {
	case PropertyTypeSingleFamily, PropertyTypeCondo:
		return true
	}
	return false
}

// RawMortgage is one mortgage record as ingested, before validation. Numeric
// and categorical fields are pointers so a missing field is distinguishable
// from a zero value.
type RawMortgage struct {
	ID            string   `json:"id"`
	CreditScore   *int     `json:"credit_score"`
	LoanAmount    *float64 `json:"loan_amount"`
	PropertyValue *float64 `json:"property_value"`
	AnnualIncome  *float64 `json:"annual_income"`
	DebtToIncome  *float64 `json:"debt_to_income"`
	// LoanToValue is derived as loan_amount / property_value when absent.
	LoanToValue   *float64 `json:"loan_to_value,omitempty"`
	LoanType      *string  `json:"loan_type"`
	PropertyType  *string  `json:"property_type,omitempty"`
	Delinquencies *int     `json:"delinquencies"`
}

// ValidatedMortgage is a mortgage that passed every validation rule. It is
// never mutated after construction; workers share it read-only.
type ValidatedMortgage struct {
	ID            string       `json:"id"`
	CreditScore   int          `json:"credit_score"`
	LoanAmount    float64      `json:"loan_amount"`
	PropertyValue float64      `json:"property_value"`
	AnnualIncome  float64      `json:"annual_income"`
	DebtToIncome  float64      `json:"debt_to_income"`
	LoanToValue   float64      `json:"loan_to_value"`
	LoanType      LoanType     `json:"loan_type"`
	PropertyType  PropertyType `json:"property_type,omitempty"`
	Delinquencies int          `json:"delinquencies"`
	ValidatedAt   time.Time    `json:"validated_at"`
}
