package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/city-weather/internal/api/http"
	"github.com/i474232898/city-weather/internal/config"
	"github.com/i474232898/city-weather/internal/logging"
	"github.com/i474232898/city-weather/internal/metrics"
	"github.com/i474232898/city-weather/internal/notify"
	"github.com/i474232898/city-weather/internal/openmeteo"
	"github.com/i474232898/city-weather/internal/scheduler"
	"github.com/i474232898/city-weather/internal/selection"
	"github.com/i474232898/city-weather/internal/store"
	"github.com/i474232898/city-weather/internal/weather"
)

const serviceName = "city-weather"

func main() {
	os.Exit(start())
}

// start returns the process exit code so deferred cleanup runs before exit.
func start() int {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	zlog, err := logging.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		log.Printf("failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Error("city-weather stopped", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.AppConfig, zlog *zap.Logger) error {
	// Shared HTTP client for the upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTP.Timeout,
	}

	// Upstream client with resilience (backoff + circuit breaker).
	upstream, err := openmeteo.NewClient(httpClient, cfg.Upstream(), zlog.Named("openmeteo"))
	if err != nil {
		return fmt.Errorf("openmeteo client: %w", err)
	}

	service := weather.NewService(upstream, zlog.Named("weather"))

	// Selected city, resolved from the configured default in the background.
	cell := selection.New(service, cfg.SelectionOptions(), zlog.Named("selection"))
	initDone := cell.Init(ctx)

	// Conditions of the selected city, kept current by the scheduler.
	memStore := store.NewMemoryStore(2 * cfg.Refresh.Interval)
	sched := scheduler.New(cell, service, memStore, cfg.Refresh.Interval, zlog.Named("scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.NATS.URL != "" {
		publisher, err := notify.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return err
		}
		defer publisher.Close()

		updates, unsubscribe := cell.Subscribe()
		defer unsubscribe()
		go notify.Forward(ctx, updates, publisher, zlog.Named("notify"))
		zlog.Info("publishing selection changes", zap.String("subject", cfg.NATS.Subject))
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		select {
		case <-initDone:
		default:
			status = "initializing"
		}
		_, selected := cell.Get()
		return c.JSON(fiber.Map{
			"status":   status,
			"service":  serviceName,
			"selected": selected,
		})
	})
	app.Get("/metrics", metrics.Handler())

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:    service,
		Selection:  cell,
		Conditions: memStore,
		Logger:     zlog.Named("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zlog.Info("listening", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("fiber server stopped: %w", err)
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	return nil
}
