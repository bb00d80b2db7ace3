package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("HONEYBARREL_SERVER_PORT")
		os.Unsetenv("HONEYBARREL_SERVER_ENVIRONMENT")
		os.Unsetenv("HONEYBARREL_CATALOG_BASE_URL")
		os.Unsetenv("HONEYBARREL_CATALOG_PAGE_SIZE")
		os.Unsetenv("HONEYBARREL_CATALOG_MAX_PAGES")
		os.Unsetenv("HONEYBARREL_CATALOG_TIMEOUT")
		os.Unsetenv("HONEYBARREL_CATALOG_MAX_ATTEMPTS")
		os.Unsetenv("HONEYBARREL_MATCHING_SIMILARITY_THRESHOLD")
		os.Unsetenv("HONEYBARREL_MATCHING_SCORING_WORKERS")
		os.Unsetenv("HONEYBARREL_RATELIMIT_PER_IP")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://services.baxus.co/api/search/listings" {
			t.Errorf("Catalog.BaseURL = %s, want baxus listings endpoint", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.PageSize != 2000 {
			t.Errorf("Catalog.PageSize = %d, want 2000", cfg.Catalog.PageSize)
		}
		if cfg.Catalog.MaxPages != 2000 {
			t.Errorf("Catalog.MaxPages = %d, want 2000", cfg.Catalog.MaxPages)
		}
		if cfg.Catalog.Timeout != 30*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout)
		}
		if cfg.Catalog.MaxAttempts != 1 {
			t.Errorf("Catalog.MaxAttempts = %d, want 1", cfg.Catalog.MaxAttempts)
		}
		if cfg.Matching.SimilarityThreshold != 0.4 {
			t.Errorf("Matching.SimilarityThreshold = %v, want 0.4", cfg.Matching.SimilarityThreshold)
		}
		if cfg.Matching.FoldAccents {
			t.Error("Matching.FoldAccents = true, want false")
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("HONEYBARREL_SERVER_PORT", "9090")
		os.Setenv("HONEYBARREL_SERVER_ENVIRONMENT", "production")
		os.Setenv("HONEYBARREL_CATALOG_BASE_URL", "https://catalog.example.com/listings")
		os.Setenv("HONEYBARREL_CATALOG_PAGE_SIZE", "500")
		os.Setenv("HONEYBARREL_CATALOG_TIMEOUT", "5s")
		os.Setenv("HONEYBARREL_MATCHING_SIMILARITY_THRESHOLD", "0.6")
		os.Setenv("HONEYBARREL_RATELIMIT_PER_IP", "200")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://catalog.example.com/listings" {
			t.Errorf("Catalog.BaseURL = %s, want https://catalog.example.com/listings", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.PageSize != 500 {
			t.Errorf("Catalog.PageSize = %d, want 500", cfg.Catalog.PageSize)
		}
		if cfg.Catalog.Timeout != 5*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 5s", cfg.Catalog.Timeout)
		}
		if cfg.Matching.SimilarityThreshold != 0.6 {
			t.Errorf("Matching.SimilarityThreshold = %v, want 0.6", cfg.Matching.SimilarityThreshold)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails validation for threshold above one", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("HONEYBARREL_MATCHING_SIMILARITY_THRESHOLD", "1.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for threshold out of range")
		}
		if !strings.Contains(err.Error(), "similarity threshold") {
			t.Errorf("Load() error = %v, want similarity threshold error", err)
		}
	})

	t.Run("fails validation for zero page size", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("HONEYBARREL_CATALOG_PAGE_SIZE", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero page size")
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads explicit yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "honeybarrel.yaml")
		content := `
catalog:
  page_size: 250
  max_pages: 3
matching:
  similarity_threshold: 0.55
  fold_accents: true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v, want nil", err)
		}

		if cfg.Catalog.PageSize != 250 {
			t.Errorf("Catalog.PageSize = %d, want 250", cfg.Catalog.PageSize)
		}
		if cfg.Catalog.MaxPages != 3 {
			t.Errorf("Catalog.MaxPages = %d, want 3", cfg.Catalog.MaxPages)
		}
		if cfg.Matching.SimilarityThreshold != 0.55 {
			t.Errorf("Matching.SimilarityThreshold = %v, want 0.55", cfg.Matching.SimilarityThreshold)
		}
		if !cfg.Matching.FoldAccents {
			t.Error("Matching.FoldAccents = false, want true")
		}
		// Untouched keys keep defaults
		if cfg.Catalog.BaseURL == "" {
			t.Error("Catalog.BaseURL is empty, want default")
		}
	})

	t.Run("fails when explicit file is missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Error("LoadFile() error = nil, want error for missing file")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		envContent := `
# Comment line
TEST_HB_VAR_1=value1
   # indented comment

TEST_HB_VAR_2="quoted value"
# TEST_HB_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_HB_VAR_1")
		os.Unsetenv("TEST_HB_VAR_2")
		os.Unsetenv("TEST_HB_COMMENTED")
		defer func() {
			os.Unsetenv("TEST_HB_VAR_1")
			os.Unsetenv("TEST_HB_VAR_2")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_HB_VAR_1") != "value1" {
			t.Errorf("TEST_HB_VAR_1 = %s, want value1", os.Getenv("TEST_HB_VAR_1"))
		}
		if os.Getenv("TEST_HB_VAR_2") != "quoted value" {
			t.Errorf("TEST_HB_VAR_2 = %s, want quoted value", os.Getenv("TEST_HB_VAR_2"))
		}
		if os.Getenv("TEST_HB_COMMENTED") != "" {
			t.Errorf("TEST_HB_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		os.Setenv("TEST_HB_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_HB_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_HB_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_HB_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_HB_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_HB_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{
				BaseURL:           "https://services.baxus.co/api/search/listings",
				PageSize:          2000,
				MaxPages:          2000,
				RequestsPerSecond: 5,
				MaxAttempts:       1,
			},
			Matching: MatchingConfig{
				SimilarityThreshold: 0.4,
				ScoringWorkers:      4,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("accepts threshold bounds", func(t *testing.T) {
		for _, threshold := range []float64{0, 1} {
			cfg := valid()
			cfg.Matching.SimilarityThreshold = threshold
			if err := validate(cfg); err != nil {
				t.Errorf("validate() threshold %v error = %v, want nil", threshold, err)
			}
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base URL", func(c *Config) { c.Catalog.BaseURL = "" }},
		{"negative page size", func(c *Config) { c.Catalog.PageSize = -1 }},
		{"zero max pages", func(c *Config) { c.Catalog.MaxPages = 0 }},
		{"zero max attempts", func(c *Config) { c.Catalog.MaxAttempts = 0 }},
		{"zero request rate", func(c *Config) { c.Catalog.RequestsPerSecond = 0 }},
		{"negative threshold", func(c *Config) { c.Matching.SimilarityThreshold = -0.1 }},
		{"zero scoring workers", func(c *Config) { c.Matching.ScoringWorkers = 0 }},
	}

	for _, tt := range tests {
		t.Run("fails for "+tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Errorf("validate() error = nil, want error for %s", tt.name)
			}
		})
	}
}
