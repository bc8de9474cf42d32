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
	"golang.org/x/sync/errgroup"

	"github.com/hiddenspringfield/shop-backend/api/controllers"
	"github.com/hiddenspringfield/shop-backend/api/middleware"
	"github.com/hiddenspringfield/shop-backend/api/routes"
	"github.com/hiddenspringfield/shop-backend/internal/auth"
	"github.com/hiddenspringfield/shop-backend/internal/cache"
	"github.com/hiddenspringfield/shop-backend/internal/cachesync"
	"github.com/hiddenspringfield/shop-backend/internal/cart"
	"github.com/hiddenspringfield/shop-backend/internal/catalog"
	"github.com/hiddenspringfield/shop-backend/internal/categories"
	"github.com/hiddenspringfield/shop-backend/internal/cron"
	"github.com/hiddenspringfield/shop-backend/internal/order"
	"github.com/hiddenspringfield/shop-backend/internal/settings"
	"github.com/hiddenspringfield/shop-backend/pkg/config"
	"github.com/hiddenspringfield/shop-backend/pkg/db"
	"github.com/hiddenspringfield/shop-backend/pkg/enums"
	"github.com/hiddenspringfield/shop-backend/pkg/env"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
	"github.com/hiddenspringfield/shop-backend/pkg/metrics"
	"github.com/hiddenspringfield/shop-backend/pkg/migrate"
	"github.com/hiddenspringfield/shop-backend/pkg/redis"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	closers = append(closers, dbClient.Close)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		redisPinger controllers.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		closers = append(closers, redisClient.Close)
		redisPinger = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, using in-process cart mirror and rate limiter")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	records := cache.New[any](
		cache.WithTTL(cfg.Cache.DefaultTTL),
		cache.WithObserver(metrics.NewCacheMetrics(reg)),
	)

	var catalogSvc catalog.Service
	if cfg.Catalog.IsStatic() {
		catalogSvc = catalog.NewStaticService()
	} else if catalogSvc, err = catalog.NewService(catalog.NewRepository(dbClient.DB()), records, logg); err != nil {
		return err
	}

	categorySvc, err := categories.NewService(categories.NewRepository(dbClient.DB()), records, logg)
	if err != nil {
		return err
	}

	settingsSvc, err := settings.NewService(settings.NewRepository(dbClient.DB()), records, logg)
	if err != nil {
		return err
	}
	store := settings.NewStore(
		settingsGateway(cfg, settingsSvc),
		settingsCache(records, redisClient),
		logg,
		settings.WithCacheTTL(cfg.Cache.SettingsTTL),
	)
	store.Load(ctx)
	closers = append(closers, func() error { store.Wait(); return nil })

	var (
		mirror  cart.Mirror
		limiter middleware.RateLimiter
	)
	if redisClient != nil {
		mirror = cart.NewRedisMirror(redisClient, cfg.Cache.CartTTL)
		limiter = middleware.NewRedisRateLimiter(redisClient)
	} else {
		mirror = cart.NewMemoryMirror(cart.WithMirrorTTL(cfg.Cache.CartTTL))
		limiter = middleware.NewLocalRateLimiter()
	}

	cartSvc, err := cart.NewService(mirror, catalogSvc, logg)
	if err != nil {
		return err
	}
	orderSvc, err := order.NewService(cartSvc, store, logg)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		Admins:         auth.NewRepository(dbClient.DB()),
		AdminConfig:    cfg.Admin,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		SetupEnabled:   cfg.FeatureFlags.AllowSetup && !cfg.App.IsProd(),
		Logger:         logg,
	})
	if err != nil {
		return err
	}

	syncSvc, err := cachesync.NewService(records, logg, cachesync.WithSettingsReload(func(ctx context.Context) {
		store.Load(ctx)
	}))
	if err != nil {
		return err
	}

	addr := ":" + env.First(cfg.App.Port, "PORT")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: readHeaderTimeout,
		Handler: routes.NewRouter(routes.Params{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisPinger,
			Metrics:  reg,
			HTTP:     metrics.NewHTTPMetrics(reg),
			Limiter:  limiter,
			Auth:     authSvc,
			Catalog:  catalogSvc,
			Category: categorySvc,
			Settings: store,
			Cart:     cartSvc,
			Order:    orderSvc,
			Sync:     syncSvc,
		}),
	}

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"catalog": cfg.Catalog.Backend,
		"redis":   redisClient != nil,
	})
	logg.Info(runCtx, "starting api server")

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		logg.Info(runCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	if cfg.Cache.RefreshInterval > 0 {
		refresher, err := cron.NewService(cron.ServiceParams{
			Logger:   logg,
			Registry: cron.NewRegistry(cron.NewSettingsRefreshJob(store), cron.NewCatalogWarmJob(catalogSvc, categorySvc)),
			Metrics:  metrics.NewJobMetrics(reg),
			Interval: cfg.Cache.RefreshInterval,
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return refresher.Run(gctx) })
	}

	return g.Wait()
}

func settingsGateway(cfg *config.Config, local settings.Service) settings.Gateway {
	if !cfg.Settings.Remote() {
		return settings.NewLocalGateway(local)
	}
	opts := []settings.HTTPGatewayOption{settings.WithRetries(cfg.Settings.RemoteRetries, cfg.Settings.RemoteBackoff)}
	if cfg.Settings.RemoteToken != "" {
		opts = append(opts, settings.WithBearerToken(cfg.Settings.RemoteToken))
	}
	return settings.NewHTTPGateway(cfg.Settings.RemoteURL, opts...)
}

func settingsCache(records *cache.Cache[any], redisClient *redis.Client) settings.LocalCache {
	if redisClient != nil {
		return redis.NewBlobCache(redisClient)
	}
	return cache.NewBlobCache(records, enums.CacheDomainSettings)
}
