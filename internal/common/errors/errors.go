// Package errors provides standardized error and rejection codes for the
// rating pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes. The same type is
// used for per-record rejection reasons (which travel as data) and for fatal
// pipeline errors (which travel as errors).
type ErrorCode string

// Validation rejection reasons. A record carrying one of these never reaches
// the scorer.
const (
	ErrCodeMissingField         ErrorCode = "MISSING_FIELD"
	ErrCodeCreditScoreRange     ErrorCode = "CREDIT_SCORE_OUT_OF_RANGE"
	ErrCodeNonPositiveLoan      ErrorCode = "NON_POSITIVE_LOAN_AMOUNT"
	ErrCodeNonPositiveProperty  ErrorCode = "NON_POSITIVE_PROPERTY_VALUE"
	ErrCodeNonPositiveIncome    ErrorCode = "NON_POSITIVE_ANNUAL_INCOME"
	ErrCodeDTIRange             ErrorCode = "DTI_OUT_OF_RANGE"
	ErrCodeLTVRange             ErrorCode = "LTV_OUT_OF_RANGE"
	ErrCodeNegativeDelinquency  ErrorCode = "NEGATIVE_DELINQUENCY_COUNT"
	ErrCodeInvalidLoanType      ErrorCode = "INVALID_LOAN_TYPE"
	ErrCodeInvalidPropertyType  ErrorCode = "INVALID_PROPERTY_TYPE"
	ErrCodeLoanExceedsBound     ErrorCode = "LOAN_EXCEEDS_COLLATERAL_BOUND"
	ErrCodeIncomeRatioMismatch  ErrorCode = "INCOME_RATIO_INCONSISTENT"
	ErrCodeScoringFault         ErrorCode = "SCORING_FAULT"
)

// Fatal pipeline errors. Any of these aborts the run with no PoolResult.
const (
	ErrCodeInputContainerInvalid ErrorCode = "INPUT_CONTAINER_INVALID"
	ErrCodeWorkerPoolInvalid     ErrorCode = "WORKER_POOL_INVALID"
	ErrCodeRunCancelled          ErrorCode = "RUN_CANCELLED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInputContainerError creates a non-retryable fatal error for a malformed
// input container.
func NewInputContainerError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputContainerInvalid,
		Message:   "Input container is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkerPoolInvalidError creates a non-retryable fatal error for a worker
// pool that cannot be constructed from the supplied configuration.
func NewWorkerPoolInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkerPoolInvalid,
		Message:   "Worker pool configuration is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRunCancelledError creates a retryable fatal error for an aborted run.
// Partial results are discarded by the caller.
func NewRunCancelledError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeRunCancelled,
		Message:   "Run was cancelled before completion",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsFatalCode reports whether code identifies a run-aborting error rather
// than a per-record outcome.
func IsFatalCode(code ErrorCode) bool {
	switch code {
	case ErrCodeInputContainerInvalid, ErrCodeWorkerPoolInvalid, ErrCodeRunCancelled:
		return true
	}
	return false
}
