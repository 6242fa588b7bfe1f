package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/hubs-storefront/api/routes"
	"github.com/angelmondragon/hubs-storefront/internal/cart"
	"github.com/angelmondragon/hubs-storefront/internal/catalog"
	"github.com/angelmondragon/hubs-storefront/internal/checkout"
	"github.com/angelmondragon/hubs-storefront/internal/cms"
	"github.com/angelmondragon/hubs-storefront/internal/cron"
	"github.com/angelmondragon/hubs-storefront/internal/customer"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	authsession "github.com/angelmondragon/hubs-storefront/pkg/auth/session"
	"github.com/angelmondragon/hubs-storefront/pkg/config"
	"github.com/angelmondragon/hubs-storefront/pkg/db"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
	"github.com/angelmondragon/hubs-storefront/pkg/metrics"
	"github.com/angelmondragon/hubs-storefront/pkg/migrate"
	"github.com/angelmondragon/hubs-storefront/pkg/redis"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	purgeInterval     = time.Hour
	purgeLockKeyFmt   = "sf:%s:cron:kv_purge"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "storage": cfg.Storage.Driver})

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var registry *prometheus.Registry
	var registerer prometheus.Registerer
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		registerer = registry
	}
	upstreamMetrics := metrics.NewUpstreamMetrics(registerer, cfg.Metrics.Namespace)

	var store kv.Store = redisClient
	var dbClient *db.Client
	if cfg.Storage.UsesSQL() {
		dbClient, err = db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
		requireResource(ctx, logg, "database", err)
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		err = migrate.MaybeAutoRun(ctx, cfg, logg, dbClient)
		requireResource(ctx, logg, "migrations", err)

		kvStore := db.NewKVStore(dbClient)
		store = kvStore
		startPurge(ctx, cfg, logg, redisClient, kvStore, registerer)
	}

	commerceClient, err := medusa.NewClient(cfg.Commerce.URL,
		medusa.WithPublishableKey(cfg.Commerce.PublishableKey),
		medusa.WithHTTPClient(&http.Client{Timeout: cfg.Commerce.Timeout}),
		medusa.WithMetrics(upstreamMetrics),
	)
	requireResource(ctx, logg, "commerce client", err)

	cmsClient, err := cms.NewClient(cfg.CMS.URL, cfg.CMS.APIToken,
		cms.WithHTTPClient(&http.Client{Timeout: cfg.CMS.Timeout}),
		cms.WithMetrics(upstreamMetrics),
		cms.WithLogger(logg),
	)
	requireResource(ctx, logg, "cms client", err)

	sessionManager, err := authsession.NewManager(store, cfg.Session)
	requireResource(ctx, logg, "session manager", err)

	bundles, err := session.NewFactory(session.FactoryParams{
		Store:    store,
		Commerce: commerceClient,
		TTL:      cfg.Session.TTL,
		Cart:     cart.Config{DefaultRegionID: cfg.Commerce.DefaultRegionID},
		Customer: customer.Config{
			EmailProvider: cfg.Commerce.EmailProvider,
			PhoneProvider: cfg.Commerce.PhoneProvider,
		},
		Logger: logg,
	})
	requireResource(ctx, logg, "session factory", err)

	pages, err := catalog.NewService(cmsClient, logg)
	requireResource(ctx, logg, "catalog service", err)

	checkoutService, err := checkout.NewService(commerceClient, cfg.Commerce.DefaultRegionID, logg)
	requireResource(ctx, logg, "checkout service", err)

	deps := routes.Dependencies{
		Redis:    redisClient,
		Sessions: sessionManager,
		Bundles:  bundles,
		Pages:    pages,
		Checkout: checkoutService,
	}
	if dbClient != nil {
		deps.DB = dbClient
	}
	if registry != nil {
		deps.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithField(ctx, "addr", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

// startPurge runs the expired-row cleanup for SQL session storage in the
// background until ctx is canceled.
func startPurge(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, store *db.KVStore, reg prometheus.Registerer) {
	job, err := cron.NewKVPurgeJob(store)
	requireResource(ctx, logg, "kv purge job", err)

	env := cfg.App.Env
	if env == "" {
		env = "local"
	}
	lock, err := cron.NewRedisLock(redisClient, fmt.Sprintf(purgeLockKeyFmt, env), 0)
	requireResource(ctx, logg, "cron lock", err)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(job),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(reg, cfg.Metrics.Namespace),
		Interval: purgeInterval,
	})
	requireResource(ctx, logg, "cron service", err)

	go func() {
		if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "kv purge loop stopped", err)
		}
	}()
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("failed to bootstrap %s", resource), err)
	os.Exit(1)
}
