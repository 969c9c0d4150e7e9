package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kwasin02/estimator-warframe/internal/cache"
	"github.com/Kwasin02/estimator-warframe/internal/config"
	"github.com/Kwasin02/estimator-warframe/internal/handler"
	"github.com/Kwasin02/estimator-warframe/internal/logging"
	"github.com/Kwasin02/estimator-warframe/internal/middleware"
	"github.com/Kwasin02/estimator-warframe/internal/model"
	"github.com/Kwasin02/estimator-warframe/internal/service"
	"github.com/Kwasin02/estimator-warframe/internal/wfm"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Upstream client
	wfmClient := wfm.NewClient(cfg.WFMBaseURL, cfg.WFMOrderTimeout, cfg.WFMCatalogTimeout, logger)

	// Catalog snapshot: one slot, 24h TTL, refreshed on demand
	catalogCache := cache.NewSlot[[]model.CatalogItem](cfg.CatalogCacheTTL, wfmClient.FetchItems)

	// Services
	estimatorSvc := service.NewEstimatorService(wfmClient, logger)
	catalogSvc := service.NewCatalogService(catalogCache, logger)

	// Warm the catalog so /ready flips without waiting for a search
	go catalogCache.GetOrFetch(context.Background())

	// Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    64 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))

	// Health
	healthH := handler.NewHealthHandler(catalogSvc)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)

	// Estimates — rate limited: one estimate can cost up to 20 upstream calls
	estimateH := handler.NewEstimateHandler(estimatorSvc)
	app.Post("/estimate", middleware.RateLimit(cfg.EstimateRateMax, cfg.EstimateRateWindow), estimateH.Estimate)

	// Catalog search
	catalogH := handler.NewCatalogHandler(catalogSvc)
	app.Get("/items/search", catalogH.Search)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	logger.Info("Estimator backend running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-quit
	logger.Info("Shutting down...")
	_ = app.ShutdownWithTimeout(5 * time.Second)
	logger.Info("Server stopped")
}
