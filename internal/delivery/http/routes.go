package http

import (
	"github.com/gin-gonic/gin"
	"github.com/honeybarrel/backend/config"
)

// SetupRouter creates and configures the Gin router. The returned func
// releases background resources held by the middleware.
func SetupRouter(cfg *config.Config, handler *Handler) (*gin.Engine, func()) {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	limiter := NewIPRateLimiter(cfg.RateLimit.PerIP)
	v1.Use(RateLimitMiddleware(limiter))
	{
		listings := v1.Group("/listings")
		{
			listings.POST("/search", handler.SearchListings)
		}
	}

	return router, limiter.Close
}
