package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/config"
	"github.com/infrastructure-search/internal/delivery/http/handler"
	"github.com/infrastructure-search/internal/delivery/http/middleware"
	"github.com/infrastructure-search/internal/pkg/metrics"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	searchHandler         *handler.SearchHandler
	filterHandler         *handler.FilterHandler
	infrastructureHandler *handler.InfrastructureHandler
	healthHandler         *handler.HealthHandler
	metrics               *metrics.Metrics
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	searchHandler *handler.SearchHandler,
	filterHandler *handler.FilterHandler,
	infrastructureHandler *handler.InfrastructureHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Infrastructure Search",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                   app,
		config:                cfg,
		logger:                logger,
		searchHandler:         searchHandler,
		filterHandler:         filterHandler,
		infrastructureHandler: infrastructureHandler,
		healthHandler:         healthHandler,
		metrics:               m,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)
	api.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	limited := api.Group("",
		middleware.RateLimit(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst),
		middleware.Identity(s.config.Auth.JWTSecret, s.logger),
	)

	// Search routes
	limited.Post("/search", s.searchHandler.Search)
	limited.Get("/search", s.searchHandler.QuickSearch)
	limited.Get("/filters", s.filterHandler.GetFilters)

	// Infrastructure routes
	limited.Get("/infrastructures", s.searchHandler.Viewport)
	limited.Get("/infrastructures/:id", s.infrastructureHandler.GetDetail)
	limited.Get("/infrastructures/:id/availability", s.infrastructureHandler.GetAvailability)
}

// App - приложение Fiber (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута,
// паника после recover). Внутренние детали клиенту не отдаются.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": message,
			},
		})
	}
}
