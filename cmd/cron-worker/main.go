package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/movematch/movematch-backend/internal/availability"
	"github.com/movematch/movematch-backend/internal/catalog"
	"github.com/movematch/movematch-backend/internal/comparison"
	"github.com/movematch/movematch-backend/internal/cron"
	"github.com/movematch/movematch-backend/internal/eligibility"
	"github.com/movematch/movematch-backend/internal/movers"
	"github.com/movematch/movematch-backend/internal/orders"
	"github.com/movematch/movematch-backend/internal/pricing"
	"github.com/movematch/movematch-backend/internal/quotes"
	"github.com/movematch/movematch-backend/pkg/config"
	"github.com/movematch/movematch-backend/pkg/db"
	"github.com/movematch/movematch-backend/pkg/logger"
	"github.com/movematch/movematch-backend/pkg/metrics"
	"github.com/movematch/movematch-backend/pkg/migrate"
	"github.com/movematch/movematch-backend/pkg/outbox"
	"github.com/movematch/movematch-backend/pkg/redis"
)

const lockKeyFormat = "mm:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	comparisonService, err := buildComparisonService(cfg, dbClient, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create comparison service", err)
		os.Exit(1)
	}

	expiryJob, err := cron.NewComparisonExpiryJob(cron.ComparisonExpiryJobParams{
		Logger:  logg,
		Expirer: comparisonService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create comparison expiry job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(expiryJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func buildComparisonService(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client, logg *logger.Logger) (comparison.Service, error) {
	moverRepo := movers.NewRepository(dbClient.DB())
	availabilityService, err := availability.NewService(availability.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return nil, err
	}
	eligibilityService, err := eligibility.NewService(moverRepo, availabilityService, logg)
	if err != nil {
		return nil, err
	}
	return comparison.NewService(comparison.Deps{
		Tx:          dbClient,
		Repo:        comparison.NewRepository(dbClient.DB()),
		Orders:      orders.NewRepository(dbClient.DB()),
		Movers:      moverRepo,
		Catalog:     catalog.NewRepository(dbClient.DB()),
		Pricing:     pricing.NewRepository(dbClient.DB()),
		Quotes:      quotes.NewRepository(dbClient.DB()),
		Eligibility: eligibilityService,
		Outbox:      outbox.NewService(outbox.NewRepository(dbClient.DB()), logg),
		Locks:       redisClient,
		Metrics:     metrics.NewComparisonMetrics(prometheus.DefaultRegisterer),
		Logger:      logg,
		TTL:         cfg.Comparison.TTL(),
		LockTTL:     cfg.Comparison.GenerateLockTTL,
	})
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
