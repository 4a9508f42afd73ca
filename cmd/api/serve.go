package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/config"
	httpDelivery "github.com/infrastructure-search/internal/delivery/http"
	"github.com/infrastructure-search/internal/delivery/http/handler"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/pkg/logger"
	"github.com/infrastructure-search/internal/pkg/metrics"
	"github.com/infrastructure-search/internal/repository/cache"
	"github.com/infrastructure-search/internal/repository/sqlstore"
	"github.com/infrastructure-search/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	// 1. Load configuration
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	// 2. Initialize logger
	log, level, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	if err := config.Watch(configPath, func(next *config.Config) {
		level.SetLevel(logger.ParseLevel(next.Log.Level))
		log.Info("Log level updated", zap.String("level", next.Log.Level))
	}); err != nil {
		log.Debug("Config watch disabled", zap.Error(err))
	}

	log.Info("Starting Infrastructure Search")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. Connect to database
	db, err := sqlstore.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (необязателен: без него каталог кешируется только локально)
	checks := map[string]handler.HealthCheck{}
	var cacheRepo repository.CacheRepository
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, facet cache is local only", zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		checks["redis"] = redisClient.Health
	}

	// 5. Repositories and use cases
	infraRepo := sqlstore.NewInfrastructureRepository(db)
	checks["database"] = infraRepo.Health

	m := metrics.New()
	opts := usecase.SearchOptions{
		MaxLimit:         cfg.Search.MaxLimit,
		MaxDateRangeDays: cfg.Search.MaxDateRangeDays,
		QueryTimeout:     cfg.Database.QueryTimeout,
		ViewportSeed:     cfg.Search.ViewportSeed,
	}

	searchUC := usecase.NewSearchUseCase(infraRepo, m, log, opts)
	infraUC := usecase.NewInfrastructureUseCase(infraRepo, m, log, opts)
	facetUC := usecase.NewFacetUseCase(
		infraRepo,
		cacheRepo,
		m,
		log,
		cfg.Cache.FacetsCacheTTL,
		cfg.Cache.LocalCacheTTL,
		cfg.Database.QueryTimeout,
	)

	// 6. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		m,
		handler.NewSearchHandler(searchUC, log),
		handler.NewFilterHandler(facetUC, log),
		handler.NewInfrastructureHandler(infraUC, log),
		handler.NewHealthHandler(checks, log),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
	return nil
}
