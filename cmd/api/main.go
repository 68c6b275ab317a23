package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/craftsign/signquote-backend/api/routes"
	"github.com/craftsign/signquote-backend/internal/coefficients"
	"github.com/craftsign/signquote-backend/internal/materials"
	"github.com/craftsign/signquote-backend/internal/quotes"
	"github.com/craftsign/signquote-backend/pkg/config"
	"github.com/craftsign/signquote-backend/pkg/db"
	"github.com/craftsign/signquote-backend/pkg/logger"
	"github.com/craftsign/signquote-backend/pkg/metrics"
	"github.com/craftsign/signquote-backend/pkg/migrate"
	"github.com/craftsign/signquote-backend/pkg/redis"
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

	var redisClient *redis.Client
	if cfg.Quote.AllocatorBackend == config.AllocatorBackendRedis || cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	var allocator quotes.NumberAllocator
	switch cfg.Quote.AllocatorBackend {
	case config.AllocatorBackendRedis:
		allocator, err = quotes.NewRedisAllocator(redisClient, cfg.Quote.NumberPrefix)
	default:
		allocator, err = quotes.NewSequenceAllocator(dbClient.DB(), cfg.Quote.NumberPrefix)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create number allocator", err)
		os.Exit(1)
	}

	materialService, err := materials.NewService(materials.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create material service", err)
		os.Exit(1)
	}

	coefficientService, err := coefficients.NewService(coefficients.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create coefficient service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(
		quotes.NewRepository(dbClient.DB()),
		dbClient,
		materialService,
		coefficientService,
		allocator,
		quoteMetrics,
		cfg.Quote.TaxRateDecimal(),
		cfg.Quote.AllocationMaxRetries,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"allocator": cfg.Quote.AllocatorBackend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			quoteService,
			materialService,
			coefficientService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
