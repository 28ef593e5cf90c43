package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/retailops-backend/api/controllers"
	"github.com/angelmondragon/retailops-backend/api/routes"
	"github.com/angelmondragon/retailops-backend/internal/inventory"
	products "github.com/angelmondragon/retailops-backend/internal/products"
	"github.com/angelmondragon/retailops-backend/internal/revenue"
	"github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/config"
	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
	"github.com/angelmondragon/retailops-backend/pkg/migrate"
	"github.com/angelmondragon/retailops-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
		Env:         cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.IsProd() && cfg.DB.IsSQLite() {
		return errors.New("the sqlite store is for local runs only")
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	readiness := map[string]controllers.Pinger{"database": dbClient}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		readiness["redis"] = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, revenue cache disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, err := buildServices(cfg, logg, dbClient, redisClient, reg)
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, reg, metrics.NewHTTPMetrics(reg), readiness, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(serveCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(serveCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, reg prometheus.Registerer) (routes.Services, error) {
	loc, err := cfg.Revenue.Location()
	if err != nil {
		return routes.Services{}, err
	}

	var cache *revenue.Cache
	if redisClient != nil {
		cache = revenue.NewCache(redisClient, cfg.Revenue.CacheTTL, metrics.NewRevenueMetrics(reg), logg)
	}

	inventoryRepo := inventory.NewRepository(dbClient.DB())
	inventoryService, err := inventory.NewService(inventoryRepo, dbClient, inventory.Options{
		MaxRetries: cfg.Inventory.MaxRetries,
		Metrics:    metrics.NewInventoryMetrics(reg),
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	salesOpts := sales.Options{Metrics: metrics.NewSalesMetrics(reg), Logger: logg}
	if cache != nil {
		salesOpts.Invalidator = cache
	}
	salesRepo := sales.NewRepository(dbClient.DB())
	salesService, err := sales.NewService(salesRepo, dbClient, salesOpts)
	if err != nil {
		return routes.Services{}, err
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), inventoryRepo, salesRepo, dbClient, products.Options{Logger: logg})
	if err != nil {
		return routes.Services{}, err
	}

	revenueService, err := revenue.NewService(revenue.NewRepository(dbClient.DB()), revenue.Options{
		Location: loc,
		Cache:    cache,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Products:  productService,
		Sales:     salesService,
		Revenue:   revenueService,
		Inventory: inventoryService,
	}, nil
}
