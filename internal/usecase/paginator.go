package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/honeybarrel/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// minParallelPage is the smallest page worth fanning out over workers
const minParallelPage = 64

// PaginatorConfig holds configuration for the catalog paginator
type PaginatorConfig struct {
	PageSize           int
	ScoringWorkers     int
	EnableDebugLogging bool
}

// Paginator walks catalog pages sequentially and scores every record
type Paginator struct {
	source             domain.CatalogSource
	matcher            *CandidateMatcher
	policy             domain.FaultPolicy
	pageSize           int
	scoringWorkers     int
	enableDebugLogging bool
}

// PageRun is the accumulated state of one FetchAll call
type PageRun struct {
	Candidates   []domain.ScoredCandidate
	PagesFetched int
	Faults       []*domain.FetchError
}

// NewPaginator creates a paginator. A nil policy selects StatusFaultPolicy.
func NewPaginator(
	source domain.CatalogSource,
	matcher *CandidateMatcher,
	policy domain.FaultPolicy,
	config PaginatorConfig,
) *Paginator {
	if policy == nil {
		policy = NewStatusFaultPolicy()
	}

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = 2000
	}

	workers := config.ScoringWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Paginator{
		source:             source,
		matcher:            matcher,
		policy:             policy,
		pageSize:           pageSize,
		scoringWorkers:     workers,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FetchAll requests pages at offsets 0, pageSize, 2*pageSize, ... until a
// page is empty, maxPages pages were requested, a terminating fault
// occurs, or ctx is cancelled. The returned run always holds what was
// accumulated; the error is non-nil only for an aborting fault or
// cancellation.
func (p *Paginator) FetchAll(ctx context.Context, normalizedQuery string, maxPages int) (*PageRun, error) {
	run := &PageRun{}

	for page := 0; page < maxPages; page++ {
		// Pages are the only cancellation points
		if err := ctx.Err(); err != nil {
			log.Printf("[PAGINATE] Cancelled before page %d: %v", page+1, err)
			return run, err
		}

		offset := page * p.pageSize
		if p.enableDebugLogging {
			log.Printf("[PAGINATE] Fetching page %d (from: %d, size: %d)", page+1, offset, p.pageSize)
		}

		entries, err := p.source.FetchPage(ctx, offset, p.pageSize)
		run.PagesFetched++

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Printf("[PAGINATE] Cancelled during page %d: %v", page+1, ctxErr)
				return run, ctxErr
			}

			fault := asPageFault(err, page+1, offset)
			run.Faults = append(run.Faults, fault)

			action := p.policy.Classify(fault)
			log.Printf("[PAGINATE] Page %d failed (%s): %v", page+1, action, fault)

			switch action {
			case domain.FaultAbort:
				return run, fault
			case domain.FaultStop:
				return run, nil
			default:
				continue
			}
		}

		if len(entries) == 0 {
			if p.enableDebugLogging {
				log.Printf("[PAGINATE] Page %d is empty, stopping", page+1)
			}
			return run, nil
		}

		scored, err := p.scorePage(entries, normalizedQuery)
		if err != nil {
			return run, err
		}
		run.Candidates = append(run.Candidates, scored...)

		if p.enableDebugLogging {
			log.Printf("[PAGINATE] Scored %d records on page %d", len(scored), page+1)
		}
	}

	return run, nil
}

// scorePage scores entries in place order. Large pages are split across
// workers; each worker writes only its own indices.
func (p *Paginator) scorePage(entries []domain.CatalogEntry, normalizedQuery string) ([]domain.ScoredCandidate, error) {
	scored := make([]domain.ScoredCandidate, len(entries))

	if p.scoringWorkers == 1 || len(entries) < minParallelPage {
		for i, entry := range entries {
			scored[i] = p.matcher.Score(entry, normalizedQuery)
		}
		return scored, nil
	}

	g := new(errgroup.Group)
	g.SetLimit(p.scoringWorkers)

	chunk := (len(entries) + p.scoringWorkers - 1) / p.scoringWorkers
	for start := 0; start < len(entries); start += chunk {
		end := min(start+chunk, len(entries))
		g.Go(func() error {
			for i := start; i < end; i++ {
				scored[i] = p.matcher.Score(entries[i], normalizedQuery)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

// asPageFault stamps page coordinates onto a source error, wrapping
// unclassified errors as network faults.
func asPageFault(err error, page, offset int) *domain.FetchError {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		stamped := *fe
		stamped.Page = page
		stamped.Offset = offset
		return &stamped
	}
	return &domain.FetchError{
		Page:   page,
		Offset: offset,
		Kind:   domain.FaultNetwork,
		Err:    fmt.Errorf("%w: %v", domain.ErrCatalogUnreachable, err),
	}
}
