package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/workshop-admin-api/internal/api"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/database"
	"github.com/workshop-admin-api/internal/repository"
	"github.com/workshop-admin-api/internal/scheduler"
	"github.com/workshop-admin-api/internal/service"
	"github.com/workshop-admin-api/internal/storage"
	"github.com/workshop-admin-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting workshop admin API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run embedded migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	repos := repository.New(db)
	products := catalog.New(cfg.Shopify, log)

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media storage")
	}

	services := service.NewServices(repos, products, store, cfg, log)

	// Start scheduled catalog import
	syncScheduler := scheduler.NewSyncScheduler(services.Sync, cfg.Sync, cfg.Shopify.CollectionID, log)
	if err := syncScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start sync scheduler")
	}

	router := api.NewRouter(services, cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Let an in-flight scheduled import finish before closing the database
	if err := syncScheduler.Stop(ctx); err != nil {
		log.Warn().Err(err).Msg("Scheduled sync did not finish before shutdown")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
