package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/config"
	"github.com/infrastructure-search/internal/pkg/logger"
	"github.com/infrastructure-search/internal/pkg/metrics"
	"github.com/infrastructure-search/internal/repository/cache"
	redisRepo "github.com/infrastructure-search/internal/repository/redis"
	"github.com/infrastructure-search/internal/usecase"
	"github.com/infrastructure-search/internal/worker"
	"github.com/infrastructure-search/internal/worker/catalog"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, _, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Catalog Invalidation Worker")
	log.Info("Configuration loaded",
		zap.String("redis_addr", cfg.GetRedisAddr()),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and use cases.
	// Воркер только сбрасывает общий кеш каталога, хранилище объектов ему не нужно.
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	facetUC := usecase.NewFacetUseCase(
		nil,
		cache.NewCacheRepository(redisClient),
		metrics.New(),
		log,
		cfg.Cache.FacetsCacheTTL,
		cfg.Cache.LocalCacheTTL,
		cfg.Database.QueryTimeout,
	)

	// 5. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(catalog.NewInvalidationWorker(
		streamRepo,
		facetUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		log,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
