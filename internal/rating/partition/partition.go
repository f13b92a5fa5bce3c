// internal/rating/partition/partition.go
package partition

import "mortgage-pool-rater/internal/models"

// Split slices validated mortgages into at most chunkCount contiguous,
// near-equal, disjoint chunks, preserving input order within and across
// chunks. Empty input yields zero chunks; chunkCount is capped at the record
// count so no chunk is ever empty.
func Split(validated []models.ValidatedMortgage, chunkCount int) [][]models.ValidatedMortgage {
	n := len(validated)
	if n == 0 || chunkCount < 1 {
		return nil
	}
	if chunkCount > n {
		chunkCount = n
	}

	chunks := make([][]models.ValidatedMortgage, 0, chunkCount)
	base := n / chunkCount
	extra := n % chunkCount

	start := 0
	for i := 0; i < chunkCount; i++ {
		size := base
		if i < extra {
			size++
		}
		chunks = append(chunks, validated[start:start+size])
		start += size
	}

	return chunks
}
