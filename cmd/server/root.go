package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitcontest/internal/platform/config"
	"fitcontest/internal/platform/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fitcontest",
	Short: "Weight-loss contest API server",
	Long: `fitcontest serves the REST API for running weight-loss contests: users,
contests and their members, weigh-ins, body measurements, workouts, points
and wins, all stored in PostgreSQL.

QUICK START:

  $ fitcontest migrate     # Create the tables
  $ fitcontest serve       # Start the API on API_PORT (default 8000)

Running without a subcommand is the same as 'fitcontest serve'.

CONFIGURATION:

  Settings come from the environment, optionally loaded from a .env file.

  APP_ENV               'production' hides error details from clients
  API_PORT              HTTP port
  DATABASE_URL          PostgreSQL DSN (or DB_HOST, DB_PORT, DB_USER, ...)
  CORS_ALLOWED_ORIGINS  Comma separated list of browser origins
  JWT_SECRET            Signing key for login tokens
  REQUIRE_AUTH          'true' requires a bearer token on writes
  REDIS_ADDR            Enables activity events on EVENTS_QUEUE_NAME
  LOG_LEVEL             debug, info, warn or error`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log, err = logger.New(cfg.IsProduction(), cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}
