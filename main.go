package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/catalog"
	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/LexiconIndonesia/country-currency-service/common/db"
	"github.com/LexiconIndonesia/country-currency-service/common/logger"
	"github.com/LexiconIndonesia/country-currency-service/common/messaging"
	"github.com/LexiconIndonesia/country-currency-service/common/storage"
	"github.com/LexiconIndonesia/country-currency-service/common/work"

	"github.com/rs/zerolog/log"

	"github.com/joho/godotenv"

	_ "github.com/LexiconIndonesia/country-currency-service/docs"
)

// @title       Country Currency Service API
// @version     1.0
// @description Country catalog enriched with exchange rates and estimated GDP

// @host     localhost:8080
// @BasePath /
// @schemes  http https

func main() {
	// INITIATE CONFIGURATION
	envErr := godotenv.Load()

	cfg := config.DefaultConfig()
	cfg.LoadFromEnv()

	logger.Setup(cfg)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("Error loading .env file, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// INITIATE DATABASES
	dbConn, err := db.SetupDatabase(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup database")
	}
	defer dbConn.Close()

	reporter := catalog.NewReporter(dbConn.Countries)
	var refreshObservers []catalog.RefreshObserver
	var deleteObservers []catalog.DeleteObserver

	// INITIATE NATS CLIENT
	if cfg.Nats.Enabled {
		natsClient, err := messaging.SetupNatsBroker(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup NATS client")
		}
		defer natsClient.Close()

		events := messaging.NewCatalogEvents(natsClient)
		refreshObservers = append(refreshObservers, events)
		deleteObservers = append(deleteObservers, events)
	}

	// gcs
	if cfg.GCS.Enabled {
		gcsStorage, err := storage.NewGCSStorage(ctx, storage.GCSConfig{
			ProjectID:       cfg.GCS.ProjectID,
			CredentialsFile: cfg.GCS.CredentialsFile,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup GCS storage")
		}
		defer gcsStorage.Close()

		refreshObservers = append(refreshObservers,
			catalog.NewSnapshotArchiver(reporter, gcsStorage, cfg.GCS.Bucket, cfg.GCS.SummaryObject))
	}

	refreshOpts := []catalog.RefresherOption{
		catalog.WithWorkers(cfg.Refresh.Workers),
		catalog.WithUpsertTimeout(cfg.Refresh.TaskTimeout),
		catalog.WithRefreshObservers(refreshObservers...),
	}

	services := Services{
		Catalog:  catalog.NewCatalog(dbConn.Countries, deleteObservers...),
		Reporter: reporter,
		Database: dbConn,
	}
	if dbConn.Redis != nil {
		refreshOpts = append(refreshOpts, catalog.WithRunGuard(
			work.NewRunGuard(dbConn.Redis, common.RefreshLockKey, cfg.Refresh.LockTTL, cfg.Refresh.LockWait)))
		services.Redis = dbConn.Redis
	}
	services.Refresher = catalog.NewRefresher(catalog.NewHTTPSource(cfg), dbConn.Countries, refreshOpts...)

	// INITIATE SERVER
	server, err := NewAppHttpServer(cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create the server")
	}

	// Start server in a goroutine
	go func() {
		if err := server.start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			shutdown <- syscall.SIGTERM
		}
	}()

	log.Info().Str("address", cfg.Listen.Addr()).Msg("Server started successfully")
	log.Info().Str("swagger", fmt.Sprintf("http://%s/swagger/index.html", cfg.Listen.Addr())).Msg("Swagger documentation available at")

	// Wait for shutdown signal
	<-shutdown
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server gracefully stopped")
}
