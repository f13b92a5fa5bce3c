// internal/models/result.go
package models

import "mortgage-pool-rater/internal/common/errors"

// Rating bands for the aggregate pool score.
const (
	RatingAAA     = "AAA"
	RatingBBB     = "BBB"
	RatingC       = "C"
	RatingUnrated = "UNRATED"
)

// RiskScore ties one risk score to one mortgage. Scores live in [0,100],
// lower is safer.
type RiskScore struct {
	MortgageID string  `json:"mortgage_id"`
	Score      float64 `json:"score"`
}

// RejectionRecord reports a record that failed validation and never reached
// the scorer.
type RejectionRecord struct {
	MortgageID string           `json:"mortgage_id"`
	Reason     errors.ErrorCode `json:"reason"`
	Detail     string           `json:"detail,omitempty"`
}

// ExecutionFailure reports a validated record whose scoring faulted at
// runtime. It is recorded inside the worker and never aborts the run.
type ExecutionFailure struct {
	MortgageID string           `json:"mortgage_id"`
	Reason     errors.ErrorCode `json:"reason"`
	Detail     string           `json:"detail"`
}

// PoolResult is the terminal output of one rating run. Exactly one is
// produced per successful run; it is immutable after construction. Every
// input record appears in exactly one of the three outcome groups.
type PoolResult struct {
	RunID         string             `json:"run_id"`
	TotalRecords  int                `json:"total_records"`
	ScoredCount   int                `json:"scored_count"`
	RejectedCount int                `json:"rejected_count"`
	FailedCount   int                `json:"failed_count"`
	MeanScore     float64            `json:"mean_score"`
	Rating        string             `json:"rating"`
	Diagnostic    string             `json:"diagnostic,omitempty"`
	Rejections    []RejectionRecord  `json:"rejections,omitempty"`
	Failures      []ExecutionFailure `json:"failures,omitempty"`
}
