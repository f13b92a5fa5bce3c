// internal/report/report.go

// Package report serializes the pool result for external consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mortgage-pool-rater/internal/models"
)

// Write renders the result as indented JSON.
func Write(w io.Writer, result *models.PoolResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteFile writes the report to path, or stdout when path is empty.
func WriteFile(path string, result *models.PoolResult) error {
	if path == "" {
		return Write(os.Stdout, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	return Write(f, result)
}

// Summary renders a one-line human-readable digest for logs.
func Summary(result *models.PoolResult) string {
	if result.Rating == models.RatingUnrated {
		return fmt.Sprintf("pool UNRATED (%s): %d records, %d rejected, %d failed",
			result.Diagnostic, result.TotalRecords, result.RejectedCount, result.FailedCount)
	}
	return fmt.Sprintf("pool rated %s (mean risk %.2f): %d records, %d scored, %d rejected, %d failed",
		result.Rating, result.MeanScore, result.TotalRecords,
		result.ScoredCount, result.RejectedCount, result.FailedCount)
}
