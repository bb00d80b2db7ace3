// Package cli implements the honeybarrel command tree.
package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/honeybarrel/backend/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "honeybarrel",
	Short: "Match scraped bottle names against the listings catalog",
	Long: heredoc.Doc(`
		Honey Barrel finds marketplace listings that resemble a bottle name
		scraped from a retailer page.

		Configuration is read from config.yaml (., ./config, /etc/honeybarrel)
		and HONEYBARREL_* environment variables, for example
		HONEYBARREL_CATALOG_BASE_URL or HONEYBARREL_MATCHING_SIMILARITY_THRESHOLD.
	`),
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
