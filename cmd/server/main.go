package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/sense/internal/api"
	"github.com/vytor/sense/internal/cache"
	"github.com/vytor/sense/internal/config"
	"github.com/vytor/sense/internal/db"
	"github.com/vytor/sense/internal/evaluator"
	"github.com/vytor/sense/internal/jobs"
	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/puzzlefeed"
	"github.com/vytor/sense/internal/repository"
	"github.com/vytor/sense/internal/repository/sqlrepo"
	"github.com/vytor/sense/internal/services"
	"github.com/vytor/sense/internal/session"
	"github.com/vytor/sense/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.DevTools),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("SENSE Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("redis_enabled=%t", cfg.CacheEnabled())
	log.Debug("strong_match_threshold=%.2f", cfg.StrongMatchThreshold)
	log.Debug("weak_match_threshold=%.2f", cfg.WeakMatchThreshold)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("dev_tools=%t", cfg.DevTools)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open database
	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	m := metrics.New()

	var puzzleRepo repository.PuzzleRepository = sqlrepo.NewPuzzleRepository(database.DB, database.Builder)
	progressRepo := sqlrepo.NewProgressRepository(database.DB, database.Builder)
	statsRepo := sqlrepo.NewStatsRepository(database.DB, database.Builder)

	if cfg.CacheEnabled() {
		client, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, serving puzzles from the database only: %v", err)
		} else {
			defer client.Close()
			puzzleRepo = cache.NewPuzzleCache(puzzleRepo, client, cfg.PuzzleCacheTTL, m)
			log.Info("puzzle cache enabled: addr=%s, ttl=%s", cfg.RedisAddr, cfg.PuzzleCacheTTL)
		}
	}

	eval := evaluator.New(evaluator.Thresholds{
		Strong: cfg.StrongMatchThreshold,
		Weak:   cfg.WeakMatchThreshold,
	})
	policy := session.NewPolicy(session.WithEvaluator(eval))

	// Initialize services
	gameService := services.NewGameService(puzzleRepo, progressRepo, statsRepo, policy, m, cfg.ShareURL)
	statsService := services.NewStatsService(statsRepo)
	puzzleService := services.NewPuzzleService(puzzleRepo)

	// Initialize worker pool
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importPool.Start(ctx)
	jobQueue := jobs.NewWorkerQueue(importPool, puzzleService, puzzlefeed.New(cfg.PuzzleFeedTimeout), m)

	if cfg.PuzzleSeedPath != "" {
		if err := jobQueue.EnqueueSeedFile(cfg.PuzzleSeedPath); err != nil {
			log.Warn("failed to queue puzzle seed file %s: %v", cfg.PuzzleSeedPath, err)
		}
	}
	if cfg.PuzzleFeedURL != "" {
		if err := jobQueue.EnqueueFeed(cfg.PuzzleFeedURL); err != nil {
			log.Warn("failed to queue puzzle feed %s: %v", cfg.PuzzleFeedURL, err)
		}
	}

	srv := &api.Server{
		GameService:   gameService,
		StatsService:  statsService,
		PuzzleService: puzzleService,
		JobQueue:      jobQueue,
		Metrics:       m,
		DB:            database,
		FeedURL:       cfg.PuzzleFeedURL,
		DevTools:      cfg.DevTools,
	}

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

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain queued imports before the database closes
	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("SENSE Server Stopped")
	log.Info("===========================================")
}
