package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/miniblog/blog-api/internal/api"
	"github.com/miniblog/blog-api/internal/core/ports"
	"github.com/miniblog/blog-api/internal/core/service"
	"github.com/miniblog/blog-api/internal/infrastructure/config"
	"github.com/miniblog/blog-api/internal/infrastructure/db/mongo"
	"github.com/miniblog/blog-api/internal/infrastructure/db/redis"
	"github.com/miniblog/blog-api/internal/infrastructure/files"
	"github.com/miniblog/blog-api/internal/infrastructure/storage"
	"github.com/miniblog/blog-api/pkg/logger"
)

const tokenTTL = 30 * 24 * time.Hour

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Process-wide clients ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	var uploader ports.Uploader
	if cfg.Storage.Mode == config.StorageModeRemote {
		gcsClient, err := gcs.NewClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("object storage client failed")
		}
		defer gcsClient.Close()

		uploader, err = storage.NewUploader(gcsClient, storage.Config{
			Bucket:        cfg.Storage.Bucket,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("object storage setup failed")
		}
	}

	// --- Repositories ---
	postRepo := mongo.NewPostRepository(db)
	userRepo := mongo.NewUserRepository(db)
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("post indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	// --- File lifecycle ---
	fileManager, err := files.NewManager(cfg.Storage.UploadDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir setup failed")
	}
	cleaner := files.NewCleaner(0, fileManager, log)
	cleaner.Start(ctx)
	fileManager.AttachCleaner(cleaner)

	// --- Services ---
	sync := service.NewSynchronizer(postRepo, userRepo, log)
	cache := redis.NewPostListCache(rdb, log)
	postService := service.NewPostService(postRepo, sync, fileManager, uploader, cache, log)
	userService := service.NewUserService(userRepo, sync, fileManager, uploader, cfg.JWTSecret, tokenTTL, log)

	// --- HTTP ---
	uploadDir := ""
	if cfg.Storage.Mode == config.StorageModeLocal {
		uploadDir = cfg.Storage.UploadDir
	}
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Posts:     postService,
		Users:     userService,
		Files:     fileManager,
		JWTSecret: cfg.JWTSecret,
		UploadDir: uploadDir,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("storage_mode", cfg.Storage.Mode).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
