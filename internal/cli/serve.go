package cli

import (
	"fmt"
	"log"

	"github.com/honeybarrel/backend/internal/app"
	httpDelivery "github.com/honeybarrel/backend/internal/delivery/http"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		log.Printf("Starting Honey Barrel Backend v%s (%s)", httpDelivery.Version, cfg.Server.Environment)

		router, cleanup := app.NewRouter(cfg)
		defer cleanup()
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Server listening on %s", addr)

		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
