package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/honeybarrel/backend/internal/domain"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// ListingSearcher is the search operation the handlers depend on
type ListingSearcher interface {
	Search(ctx context.Context, rawQuery string, maxPages int) (*domain.SearchOutcome, error)
	MaxPages() int
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher ListingSearcher
}

// NewHandler creates a new HTTP handler
func NewHandler(searcher ListingSearcher) *Handler {
	return &Handler{searcher: searcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "honeybarrel-backend",
		"version": Version,
	})
}

// SearchListings ranks catalog listings against a scraped bottle name.
// Partial results are returned with an error message when the catalog
// became unreachable mid-search.
func (h *Handler) SearchListings(c *gin.Context) {
	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, domain.SearchResponse{
			Matches: []domain.MatchResult{},
			Error:   "Invalid request body",
		})
		return
	}

	// Only a missing name is rejected; a blank one normalizes to an empty
	// query and yields no matches
	if request.BottleName == "" {
		c.JSON(http.StatusBadRequest, domain.SearchResponse{
			Matches: []domain.MatchResult{},
			Error:   "No bottle name provided",
		})
		return
	}

	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, domain.SearchResponse{
			Matches: []domain.MatchResult{},
			Query:   &request.BottleName,
			Error:   "Search is not configured",
		})
		return
	}

	maxPages := request.MaxPages
	if maxPages <= 0 || maxPages > h.searcher.MaxPages() {
		maxPages = h.searcher.MaxPages()
	}

	outcome, err := h.searcher.Search(c.Request.Context(), request.BottleName, maxPages)

	response := domain.SearchResponse{
		Matches: []domain.MatchResult{},
		Query:   &request.BottleName,
	}
	if outcome != nil && outcome.Matches != nil {
		response.Matches = outcome.Matches
	}

	if err != nil {
		log.Printf("[HTTP] Search for %q ended early: %v", request.BottleName, err)
		if errors.Is(err, context.Canceled) {
			response.Error = "Search cancelled"
		} else {
			response.Error = err.Error()
		}
	}

	log.Printf("[HTTP] Sending back %d matches for query %q", len(response.Matches), request.BottleName)
	c.JSON(http.StatusOK, response)
}
