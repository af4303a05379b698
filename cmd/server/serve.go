package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitcontest/internal/api"
	"fitcontest/internal/app/service"
	"fitcontest/internal/common/security"
	"fitcontest/internal/domain/repository"
	"fitcontest/internal/platform/database"
	"fitcontest/internal/platform/queue"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and block until SIGINT or SIGTERM.

The schema is expected to exist already; run 'fitcontest migrate' first on a
fresh database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	db, err := database.Connect(ctx, cfg.DBConnStr)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connected.")

	publisher, err := queue.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)

	// Repositories
	userRepo := repository.NewPgUserRepository(db)
	weighinRepo := repository.NewPgWeighinRepository(db)
	pointsRepo := repository.NewPgPointsRepository(db)

	// Services and plain stores
	deps := api.Dependencies{
		Users:        service.NewUserService(userRepo, tokens),
		Contests:     repository.NewPgContestRepository(db),
		ContestUsers: repository.NewPgContestUserRepository(db),
		CurrentStats: repository.NewPgCurrentStatsRepository(db),
		Measurements: repository.NewPgMeasurementRepository(db),
		Weighins:     service.NewWeighinService(weighinRepo, publisher, log),
		Workouts:     repository.NewPgWorkoutRepository(db),
		Points:       service.NewPointsService(pointsRepo, publisher, log),
		Wins:         repository.NewPgWinRepository(db),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := api.NewRouter(api.Options{
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequireAuth:    cfg.RequireAuth,
		TokenAuth:      tokens.Auth,
		Logger:         log,
		Registry:       registry,
	}, deps)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("port", cfg.APIPort), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serverErr:
		return err
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped gracefully.")
	return nil
}
