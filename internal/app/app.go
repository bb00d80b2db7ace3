// Package app builds the search service and HTTP router from configuration.
package app

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/honeybarrel/backend/config"
	httpDelivery "github.com/honeybarrel/backend/internal/delivery/http"
	"github.com/honeybarrel/backend/internal/infrastructure/catalog"
	"github.com/honeybarrel/backend/internal/usecase"
)

// NewCatalogClient creates the listings client described by cfg
func NewCatalogClient(cfg *config.Config) *catalog.Client {
	client := catalog.NewClient(cfg.Catalog.BaseURL, catalog.ClientConfig{
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
		MaxAttempts:       cfg.Catalog.MaxAttempts,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("[CATALOG] Client debug mode enabled")
	}

	return client
}

// NewSearchService wires the catalog client into a search service
func NewSearchService(cfg *config.Config) *usecase.SearchService {
	return usecase.NewSearchService(
		NewCatalogClient(cfg),
		usecase.NewStatusFaultPolicy(),
		usecase.SearchServiceConfig{
			PageSize:            cfg.Catalog.PageSize,
			MaxPages:            cfg.Catalog.MaxPages,
			SimilarityThreshold: cfg.Matching.SimilarityThreshold,
			FoldAccents:         cfg.Matching.FoldAccents,
			ScoringWorkers:      cfg.Matching.ScoringWorkers,
			EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
		},
	)
}

// NewRouter builds the HTTP router around a fresh search service.
// Call the returned func once the router stops serving.
func NewRouter(cfg *config.Config) (*gin.Engine, func()) {
	service := NewSearchService(cfg)

	log.Printf("Catalog: %s (page size %d, max pages %d, %.1f req/s)",
		cfg.Catalog.BaseURL, cfg.Catalog.PageSize, cfg.Catalog.MaxPages, cfg.Catalog.RequestsPerSecond)
	log.Printf("Matching: threshold=%.2f, workers=%d, fold_accents=%v, debug=%v",
		service.Threshold(),
		cfg.Matching.ScoringWorkers,
		cfg.Matching.FoldAccents,
		cfg.Matching.EnableDebugLogging)

	handler := httpDelivery.NewHandler(service)
	return httpDelivery.SetupRouter(cfg, handler)
}
