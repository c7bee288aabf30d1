package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/echallan/enforcement-platform/internal/api"
	"github.com/echallan/enforcement-platform/internal/core/service"
	"github.com/echallan/enforcement-platform/internal/infrastructure/config"
	mongorepo "github.com/echallan/enforcement-platform/internal/infrastructure/db/mongo"
	redisinfra "github.com/echallan/enforcement-platform/internal/infrastructure/db/redis"
	"github.com/echallan/enforcement-platform/internal/infrastructure/queue"
	"github.com/echallan/enforcement-platform/internal/infrastructure/storage"
	"github.com/echallan/enforcement-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependencies ---
	client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure mongo indexes")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	store, uploadsDir, err := buildEvidenceStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup evidence storage")
	}

	// --- Detection pipeline ---
	detectionService := service.NewDetectionService(
		mongorepo.NewViolationRepository(db),
		mongorepo.NewVehicleRepository(db),
		mongorepo.NewCameraRepository(db),
		redisinfra.NewDedupChecker(rdb),
		log,
	)
	dispatcher := queue.NewDispatcher(cfg.Pipeline.Workers, detectionService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		DB:            db,
		Redis:         rdb,
		Dispatcher:    dispatcher,
		EvidenceStore: store,
		JWTSecret:     cfg.JWTSecret,
		UploadsDir:    uploadsDir,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
}

// buildEvidenceStore selects the configured backend. The returned dir is
// non-empty only for the filesystem backend, where /uploads is served
// statically.
func buildEvidenceStore(ctx context.Context, cfg *config.Config) (storage.EvidenceStore, string, error) {
	if cfg.Evidence.Backend == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.Evidence.Bucket,
			KeyPrefix: cfg.Evidence.KeyPrefix,
			Region:    cfg.Evidence.Region,
			Endpoint:  cfg.Evidence.Endpoint,
		})
		return store, "", err
	}

	store, err := storage.NewFilesystemStore(cfg.Evidence.LocalDir)
	if err != nil {
		return nil, "", err
	}
	return store, cfg.Evidence.LocalDir, nil
}
