package usecase

import (
	"sort"

	"github.com/honeybarrel/backend/internal/domain"
)

// DefaultSimilarityThreshold is the minimum similarity for a listing to qualify
const DefaultSimilarityThreshold = 0.4

// Aggregate keeps candidates with similarity >= threshold, maps them to
// MatchResult, and sorts descending by similarity. The sort is stable so
// equal scores keep discovery order.
func Aggregate(candidates []domain.ScoredCandidate, threshold float64) []domain.MatchResult {
	results := make([]domain.MatchResult, 0)

	for _, c := range candidates {
		if c.Similarity < threshold {
			continue
		}
		results = append(results, ToMatchResult(c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	return results
}

// ToMatchResult converts a scored candidate to the public record
func ToMatchResult(c domain.ScoredCandidate) domain.MatchResult {
	return domain.MatchResult{
		ID:         c.Entry.ID,
		Name:       c.Entry.Name,
		Price:      c.Entry.Price,
		ImageURL:   c.Entry.ImageURL,
		SpiritType: c.Entry.SpiritType,
		Blurhash:   c.Entry.Blurhash,
		Region:     c.Entry.Region,
		Country:    c.Entry.Country,
		Producer:   c.Entry.Producer,
		Similarity: c.Similarity,
	}
}
