package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/katalog/internal/config"
	dbRedis "github.com/kailas-cloud/katalog/internal/db/redis"
	logpkg "github.com/kailas-cloud/katalog/internal/logger"
	"github.com/kailas-cloud/katalog/internal/metrics"
	catalogrepo "github.com/kailas-cloud/katalog/internal/repository/catalog"
	preferencerepo "github.com/kailas-cloud/katalog/internal/repository/preference"
	chiTransport "github.com/kailas-cloud/katalog/internal/transport/chi"
	batchuc "github.com/kailas-cloud/katalog/internal/usecase/batch"
	cataloguc "github.com/kailas-cloud/katalog/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/katalog/internal/usecase/health"
	preferenceuc "github.com/kailas-cloud/katalog/internal/usecase/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
	"github.com/kailas-cloud/katalog/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting katalog API server",
		zap.Stringer("build", version.Get()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Redis and Valkey speak the same protocol for the commands we use.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register ranking metrics explicitly (no init())
	metrics.RegisterRankingMetrics()

	catalogRepo := catalogrepo.New(store, cfg.Storage.KeyPrefix)
	prefRepo := preferencerepo.New(store, cfg.Storage.KeyPrefix)

	catalogSvc := cataloguc.New(catalogRepo, cfg.Recommend.MaxLimit)
	batchSvc := batchuc.New(catalogSvc, catalogSvc).WithMaxBatchSize(cfg.Batch.MaxSize)
	prefSvc := preferenceuc.New(prefRepo, time.Duration(cfg.Session.TokenTTLSec)*time.Second)
	recSvc := recommenduc.New(catalogRepo, prefSvc, recommenduc.Config{
		WindowSize:   cfg.Recommend.WindowSize,
		DefaultLimit: cfg.Recommend.DefaultLimit,
		MaxLimit:     cfg.Recommend.MaxLimit,
	})
	healthSvc := healthuc.New(store, map[string]healthuc.Checker{"catalog": catalogSvc})

	server := chiTransport.NewServer(catalogSvc, batchSvc, prefSvc, recSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORS(cfg.CORS.AllowedOrigins))
	r.Use(chiTransport.RateLimit(cfg.RateLimit.RequestsPerMinute))
	r.Use(metrics.Middleware("/metrics"))
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
