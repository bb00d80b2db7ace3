package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/honeybarrel/backend/internal/app"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	searchMaxPages  int
	searchThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search <name...>",
	Short: "Rank catalog listings against a bottle name",
	Long: heredoc.Doc(`
		Walk the listings catalog page by page and print every listing whose
		name, producer, type, region or country resembles the given bottle
		name, best match first.

		All arguments are joined with spaces to form the query.
	`),
	Example: heredoc.Doc(`
		$ honeybarrel search "Blanton's Original Single Barrel"
		$ honeybarrel search lagavulin 16 --max-pages 5 --json
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("threshold") {
			if searchThreshold < 0 || searchThreshold > 1 {
				return fmt.Errorf("threshold must be within [0, 1], got: %v", searchThreshold)
			}
			cfg.Matching.SimilarityThreshold = searchThreshold
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		query := strings.Join(args, " ")
		service := app.NewSearchService(cfg)

		maxPages := searchMaxPages
		if maxPages <= 0 || maxPages > service.MaxPages() {
			maxPages = service.MaxPages()
		}

		outcome, searchErr := service.Search(ctx, query, maxPages)

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := writeJSON(out, query, outcome, searchErr); err != nil {
				return err
			}
		} else {
			renderOutcome(out, query, outcome, searchErr, isatty.IsTerminal(os.Stdout.Fd()))
		}

		if ctx.Err() != nil {
			return fmt.Errorf("search cancelled: %w", ctx.Err())
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxPages, "max-pages", 0, "Maximum catalog pages to scan (default from config)")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0, "Minimum similarity for a listing to be reported")
	rootCmd.AddCommand(searchCmd)
}
