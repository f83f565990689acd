package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/getmentor/companyforms/config"
	"github.com/getmentor/companyforms/internal/handlers"
	"github.com/getmentor/companyforms/internal/middleware"
	"github.com/getmentor/companyforms/internal/repository"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/profiling"
	"github.com/getmentor/companyforms/pkg/storage"
	"github.com/getmentor/companyforms/pkg/tracing"
	"go.uber.org/zap"
)

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if !cfg.UsesObjectStorage() {
		logger.Info("Using in-memory asset storage")
		return storage.NewMemoryStorage(cfg.DevServer.PublicBaseURL + "/uploads"), nil
	}
	s3Store, err := storage.NewS3Storage(storage.S3Config{
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		BucketName:      cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		PublicURL:       cfg.Storage.PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return s3Store, nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.App.Env,
		ServiceName: cfg.Observability.ServiceName + "-devapi",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting company directory dev API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.App.Env),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.Observability.ServiceName + "-devapi",
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.App.Env,
		Endpoint:       cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Observability.Profiling, profiling.Labels{
		Service:     cfg.Observability.ServiceName + "-devapi",
		Version:     cfg.Observability.ServiceVersion,
		Environment: cfg.App.Env,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize asset storage", zap.Error(err))
	}

	repo := repository.NewDirectoryRepository()
	directoryService := services.NewDirectoryService(repo, store)
	assetService := services.NewAssetService(store, cfg.Storage.KeyPrefix, cfg.MaxUploadBytes())

	rootCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	rateLimiter := middleware.NewRateLimiter(rootCtx, rate.Limit(cfg.DevServer.RateLimitRPS), cfg.DevServer.RateLimitBurst)

	gin.SetMode(cfg.DevServer.GinMode)
	router := handlers.NewRouter(handlers.RouterConfig{
		Directory:      directoryService,
		Assets:         assetService,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.DevServer.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		ServiceName:    cfg.Observability.ServiceName + "-devapi",
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.DevServer.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.DevServer.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
