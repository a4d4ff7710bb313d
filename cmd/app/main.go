package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pricing/cmd"
	httpadapter "pricing/internal/adapters/in/http"
	"pricing/internal/adapters/out/postgres"
	"pricing/internal/pkg/logging"
	"pricing/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	loadDotEnv()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, syncLogs, err := logging.New(configs.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer syncLogs()
	slog.SetDefault(logger)

	if err := run(configs, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		syncLogs()
		os.Exit(1)
	}
}

// loadDotEnv loads .env once. A missing file is fine: the environment may be set by the platform.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}
}

func run(configs cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(tracing.Config{
		Enabled:     configs.OtelEnabled,
		ServiceName: configs.OtelServiceName,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	db, err := cmd.OpenDatabase(configs, logger)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisClient, err := cmd.OpenRedis(ctx, configs)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	app := cmd.NewCompositionRoot(configs, db, redisClient, logger)
	app.CreateConsumerRouter()
	if err := app.PrepareEventBus(ctx); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.EventSubscriber().Run(ctx)
	})

	e := httpadapter.NewRouter(app.CreateHTTPServer(), configs.CORSAllowedOrigins)
	e.Logger.SetLevel(log.INFO)
	startWebServer(ctx, g, e, configs)

	logger.Info("Pricing service started",
		"http_port", configs.HTTPPort,
		"store", configs.StoreDriver,
		"event_bus", configs.EventBusDriver,
		"notification", configs.NotificationDriver,
		"accumulation_mode", string(configs.DemandAccumulationMode),
	)

	return g.Wait()
}

func startWebServer(ctx context.Context, g *errgroup.Group, e *echo.Echo, configs cmd.Config) {
	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
}
