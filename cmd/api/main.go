package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/capstudio-backend/api/routes"
	"github.com/angelmondragon/capstudio-backend/internal/notifications"
	"github.com/angelmondragon/capstudio-backend/internal/orders"
	"github.com/angelmondragon/capstudio-backend/internal/products"
	"github.com/angelmondragon/capstudio-backend/internal/reviews"
	"github.com/angelmondragon/capstudio-backend/internal/tenants"
	"github.com/angelmondragon/capstudio-backend/pkg/config"
	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/metrics"
	"github.com/angelmondragon/capstudio-backend/pkg/migrate"
	"github.com/angelmondragon/capstudio-backend/pkg/pubsub"
	"github.com/angelmondragon/capstudio-backend/pkg/redis"
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
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.App.Location()
	requireResource(ctx, logg, "timezone", err)
	defaultTenant, err := uuid.Parse(cfg.Tenant.DefaultID)
	requireResource(ctx, logg, "default tenant id", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)
	notificationMetrics := metrics.NewNotificationMetrics(registry)

	var sinks []notifications.Sink
	if cfg.Notify.WebhookURL == "" {
		logg.Warn(ctx, "notification webhook not configured; order notifications are disabled")
	} else {
		webhook, err := notifications.NewWebhookSink(cfg.Notify.WebhookURL, notifications.WithHTTPClient(&http.Client{Timeout: cfg.Notify.Timeout}))
		requireResource(ctx, logg, "notification webhook", err)
		sinks = append(sinks, webhook)
	}

	if cfg.PubSub.Enabled {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		pubsubSink, err := notifications.NewPubSubSink(psClient.OrderPublisher())
		requireResource(ctx, logg, "pubsub order publisher", err)
		sinks = append(sinks, pubsubSink)
	}

	bus, err := notifications.NewBus(logg, notifications.Options{
		BufferSize: cfg.Notify.BufferSize,
		Workers:    cfg.Notify.Workers,
		Timeout:    cfg.Notify.Timeout,
		Metrics:    notificationMetrics,
	}, sinks...)
	requireResource(ctx, logg, "notification bus", err)
	bus.Start()

	tenantsSvc, err := tenants.NewService(tenants.NewRepository(dbClient.DB()), dbClient)
	requireResource(ctx, logg, "tenants service", err)

	productsRepo := products.NewRepository(dbClient.DB())
	productsSvc, err := products.NewService(productsRepo, dbClient)
	requireResource(ctx, logg, "products service", err)

	ordersSvc, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		tenantsSvc,
		productsRepo,
		bus,
		orders.WithLocation(loc),
		orders.WithDefaultTenant(defaultTenant),
		orders.WithMetrics(orderMetrics),
		orders.WithLogger(logg),
	)
	requireResource(ctx, logg, "orders service", err)

	reviewsSvc, err := reviews.NewService(reviews.NewRepository(dbClient.DB()), dbClient)
	requireResource(ctx, logg, "reviews service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"timezone": loc.String(),
		"sinks":    len(sinks),
	})

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			ordersSvc,
			productsSvc,
			reviewsSvc,
			tenantsSvc,
		),
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "api server shutdown failed", err)
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Notify.DrainGrace)
	defer cancelDrain()
	if err := bus.Stop(drainCtx); err != nil {
		logg.Error(drainCtx, "notification bus did not drain", err)
	}
	logg.Info(context.Background(), "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
