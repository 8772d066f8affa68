package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpapi "github.com/i474232898/weather-forecast-gateway/internal/api/http"
	"github.com/i474232898/weather-forecast-gateway/internal/config"
	"github.com/i474232898/weather-forecast-gateway/internal/scheduler"
	"github.com/i474232898/weather-forecast-gateway/internal/store"
	"github.com/i474232898/weather-forecast-gateway/internal/weather"
	"github.com/i474232898/weather-forecast-gateway/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	backoff := providers.DefaultBackoff()
	backoff.MaxRetries = cfg.ProviderMaxRetries

	primary := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, providers.WithBackoff(backoff))
	secondary := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.ZipCountry, providers.WithBackoff(backoff))

	if !primary.Configured() && !secondary.Configured() {
		logger.Warn("no weather provider keys configured; forecast requests will fail")
	}

	opts := []weather.Option{weather.WithLogger(logger.Named("weather"))}

	var memStore *store.MemoryStore
	if cfg.CacheEnabled() {
		memStore = store.NewMemoryStore(cfg.CacheMaxEntries, cfg.CacheTTL)
		opts = append(opts, weather.WithCache(memStore))
	}

	// Core service running the aggregation pipeline.
	service := weather.NewService(primary, secondary, opts...)

	// Cache warmer; only useful while the cache is on.
	if memStore != nil {
		sched := scheduler.New(cfg.Locations(), cfg.WarmInterval, service, memStore, logger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			logger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	app := newApp(service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Info("fiber server stopped", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("port", cfg.Port))

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

func newApp(service httpapi.Forecaster) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-gateway",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlog.New(fiberlog.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-forecast-gateway",
		})
	})

	httpapi.RegisterRoutes(app, service)
	return app
}

func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development() {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
