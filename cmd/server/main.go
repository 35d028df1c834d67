package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifedash/lifedash/internal/api"
	"github.com/lifedash/lifedash/internal/config"
	"github.com/lifedash/lifedash/internal/db"
	"github.com/lifedash/lifedash/internal/logger"
	"github.com/lifedash/lifedash/internal/repository/sqlite"
	"github.com/lifedash/lifedash/internal/services"
	"github.com/lifedash/lifedash/internal/srs"
	"github.com/lifedash/lifedash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LifeDash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("initial_ease_factor=%.2f", cfg.InitialEase)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)
	log.Debug("study_batch_size=%d", cfg.StudyBatchSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Review scheduler
	scheduler := srs.New(srs.Config{InitialEase: cfg.InitialEase})

	// Background stats refresh pool
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)

	// Services
	deckService := services.NewDeckService(deckRepo)
	cardService := services.NewCardService(cardRepo, deckRepo, scheduler)
	studyService := services.NewStudyService(cardRepo, scheduler, cfg.StudyBatchSize)
	statsService := services.NewStatsService(deckRepo, statsRepo)

	srv := &api.Server{
		DB:             database,
		DeckService:    deckService,
		CardService:    cardService,
		StudyService:   studyService,
		StatsService:   statsService,
		StatsRepo:      statsRepo,
		StatsPool:      statsPool,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	statsPool.Stop()

	log.Info("===========================================")
	log.Info("LifeDash Server Stopped")
	log.Info("===========================================")
}
