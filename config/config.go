package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds listings catalog configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	PageSize          int           `mapstructure:"page_size"`
	MaxPages          int           `mapstructure:"max_pages"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
}

// MatchingConfig holds normalization and ranking configuration
type MatchingConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	FoldAccents         bool    `mapstructure:"fold_accents"`
	ScoringWorkers      int     `mapstructure:"scoring_workers"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path
// searches the default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/honeybarrel/")
	}

	// .env values never override the real environment
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v.SetEnvPrefix("HONEYBARREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional unless one was named explicitly
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	v.SetDefault("catalog.base_url", "https://services.baxus.co/api/search/listings")
	v.SetDefault("catalog.page_size", 2000)
	v.SetDefault("catalog.max_pages", 2000)
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.requests_per_second", 5.0)
	v.SetDefault("catalog.burst", 10)
	v.SetDefault("catalog.max_attempts", 1)

	v.SetDefault("matching.similarity_threshold", 0.4)
	v.SetDefault("matching.fold_accents", false)
	v.SetDefault("matching.scoring_workers", 4)
	v.SetDefault("matching.enable_debug_logging", false)

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set HONEYBARREL_CATALOG_BASE_URL)")
	}

	if config.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got: %d", config.Catalog.PageSize)
	}

	if config.Catalog.MaxPages <= 0 {
		return fmt.Errorf("catalog max pages must be positive, got: %d", config.Catalog.MaxPages)
	}

	if config.Catalog.MaxAttempts < 1 {
		return fmt.Errorf("catalog max attempts must be at least 1, got: %d", config.Catalog.MaxAttempts)
	}

	if config.Catalog.RequestsPerSecond <= 0 {
		return fmt.Errorf("catalog requests per second must be positive, got: %v", config.Catalog.RequestsPerSecond)
	}

	threshold := config.Matching.SimilarityThreshold
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("similarity threshold must be within [0, 1], got: %v", threshold)
	}

	if config.Matching.ScoringWorkers < 1 {
		return fmt.Errorf("scoring workers must be at least 1, got: %d", config.Matching.ScoringWorkers)
	}

	return nil
}

// loadEnvFile exports KEY=VALUE lines from ./.env into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func loadEnvFile() error {
	if err := gotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
