package usecase

import (
	"context"
	"log"

	"github.com/honeybarrel/backend/internal/domain"
)

// DefaultMaxPages bounds page requests when the caller gives no limit
const DefaultMaxPages = 2000

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	PageSize            int
	MaxPages            int
	SimilarityThreshold float64
	StopWords           []string // nil selects DefaultStopWords
	FoldAccents         bool
	ScoringWorkers      int
	EnableDebugLogging  bool
}

// SearchService finds catalog listings matching a free-text product name
type SearchService struct {
	normalizer         *Normalizer
	paginator          *Paginator
	threshold          float64
	maxPages           int
	enableDebugLogging bool
}

// NewSearchService wires normalizer, matcher and paginator over source.
// A nil policy selects StatusFaultPolicy.
func NewSearchService(
	source domain.CatalogSource,
	policy domain.FaultPolicy,
	config SearchServiceConfig,
) *SearchService {
	normalizer := NewNormalizer(config.StopWords, config.FoldAccents)
	matcher := NewCandidateMatcher(normalizer, config.EnableDebugLogging)
	paginator := NewPaginator(source, matcher, policy, PaginatorConfig{
		PageSize:           config.PageSize,
		ScoringWorkers:     config.ScoringWorkers,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	threshold := config.SimilarityThreshold
	if threshold < 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}

	maxPages := config.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	return &SearchService{
		normalizer:         normalizer,
		paginator:          paginator,
		threshold:          threshold,
		maxPages:           maxPages,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// MaxPages returns the configured default page limit
func (s *SearchService) MaxPages() int {
	return s.maxPages
}

// Threshold returns the similarity cutoff
func (s *SearchService) Threshold() float64 {
	return s.threshold
}

// Search ranks catalog listings against rawQuery. maxPages <= 0 uses the
// configured default. The outcome is never nil. The error is set only
// when the catalog became unreachable or ctx was cancelled; the outcome
// then still carries the matches accumulated before that point.
func (s *SearchService) Search(ctx context.Context, rawQuery string, maxPages int) (*domain.SearchOutcome, error) {
	outcome := &domain.SearchOutcome{
		Query:   rawQuery,
		Matches: []domain.MatchResult{},
	}

	normalizedQuery := s.normalizer.Normalize(rawQuery)
	outcome.NormalizedQuery = normalizedQuery
	log.Printf("[SEARCH] Query %q normalized to %q", rawQuery, normalizedQuery)

	if normalizedQuery == "" {
		log.Printf("[SEARCH] %v, skipping fetch", domain.ErrEmptyQuery)
		return outcome, nil
	}

	if maxPages <= 0 {
		maxPages = s.maxPages
	}

	run, err := s.paginator.FetchAll(ctx, normalizedQuery, maxPages)
	outcome.PagesFetched = run.PagesFetched
	outcome.Faults = run.Faults
	outcome.Matches = Aggregate(run.Candidates, s.threshold)

	if s.enableDebugLogging {
		for _, m := range outcome.Matches {
			log.Printf("[SEARCH] Match %q (similarity: %.3f)", m.Name, m.Similarity)
		}
	}

	log.Printf("[SEARCH] %d of %d scored listings above threshold %.2f across %d pages",
		len(outcome.Matches), len(run.Candidates), s.threshold, run.PagesFetched)

	return outcome, err
}
