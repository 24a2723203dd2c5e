package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seatsync/seatsync/bootstrap"
	"github.com/seatsync/seatsync/config"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconciliation service",
	Long: `Start the SeatSync service.

The server will:
  - Load configuration from seatsync.yaml (or --config)
  - Or load configuration from SEATSYNC_* environment variables
  - Connect to the database and run pending migrations
  - Expose /healthz and /metrics for operations

Environment variables (for Docker deployments):
  SEATSYNC_DATABASE_DSN        - Database path (default: seatsync.db)
  SEATSYNC_SERVER_PORT         - Server port (default: 8080)
  SEATSYNC_BILLING_MODE        - Gateway mode: stripe, dummy, none
  SEATSYNC_BILLING_STRIPE_KEY  - Stripe secret key
  SEATSYNC_EMAIL_ALERT_TO      - Operator address for divergence alerts
  SEATSYNC_LOG_LEVEL           - Log level: debug, info, warn, error

Examples:
  seatsync serve
  seatsync serve --config /etc/seatsync/config.yaml
  seatsync serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with a config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}

		if !hasConfigFile {
			fmt.Println("Running with environment variables (no config file)")
		}

		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
