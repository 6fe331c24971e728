package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mlefebvre/patrimoine-backend/internal/adapter/httpapi"
	"github.com/mlefebvre/patrimoine-backend/internal/adapter/repository/sqlite"
	"github.com/mlefebvre/patrimoine-backend/internal/config"
	"github.com/mlefebvre/patrimoine-backend/internal/events"
	"github.com/mlefebvre/patrimoine-backend/internal/scheduler"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/goals"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/history"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/ledger"
	"github.com/mlefebvre/patrimoine-backend/internal/usecase/seeder"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := newLogger(cfg)

	// 2. Database (embedded sqlite in the data directory)
	db, err := sqlite.NewDB(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database schema")
	}

	// 3. Repositories
	assetRepo := sqlite.NewAssetRepository(db)
	goalRepo := sqlite.NewGoalRepository(db)
	historyRepo := sqlite.NewHistoryRepository(db)

	// 4. Event bus and services
	bus := events.NewBus(log)

	ledgerService := ledger.New(assetRepo, bus, log, seeder.DefaultAssets())
	if err := ledgerService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load asset collection")
	}

	goalService := goals.New(goalRepo, bus, log, seeder.DefaultGoals())
	if err := goalService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load goals")
	}

	recorder := history.NewRecorder(ledgerService, historyRepo, bus, log)

	// 5. Net-worth snapshot job
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.HistorySchedule, recorder); err != nil {
		log.Fatal().Err(err).Msg("Failed to register net-worth snapshot job")
	}
	sched.Start()

	// 6. HTTP server
	server := httpapi.New(httpapi.Config{
		Log:      log,
		Port:     cfg.Port,
		Ledger:   ledgerService,
		Goals:    goalService,
		Recorder: recorder,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	waitForShutdown(log, server, sched)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.DevMode {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

// waitForShutdown blocks until SIGTERM or SIGINT, then stops the scheduler
// and drains the HTTP server
func waitForShutdown(log zerolog.Logger, server *httpapi.Server, sched *scheduler.Scheduler) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
