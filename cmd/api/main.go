package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/movematch/movematch-backend/api/routes"
	"github.com/movematch/movematch-backend/internal/availability"
	"github.com/movematch/movematch-backend/internal/catalog"
	"github.com/movematch/movematch-backend/internal/comparison"
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

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	moverRepo := movers.NewRepository(dbClient.DB())
	availabilityService, err := availability.NewService(availability.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}
	eligibilityService, err := eligibility.NewService(moverRepo, availabilityService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create eligibility service", err)
		os.Exit(1)
	}

	comparisonService, err := comparison.NewService(comparison.Deps{
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
		Metrics:     metrics.NewComparisonMetrics(promRegistry),
		Logger:      logg,
		TTL:         cfg.Comparison.TTL(),
		LockTTL:     cfg.Comparison.GenerateLockTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create comparison service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, comparisonService, promRegistry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
