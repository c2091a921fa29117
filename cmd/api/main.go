package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/api/routes"
	"github.com/angelmondragon/filmorate-backend/internal/catalog"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/internal/likes"
	"github.com/angelmondragon/filmorate-backend/internal/memstore"
	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/config"
	"github.com/angelmondragon/filmorate-backend/pkg/db"
	"github.com/angelmondragon/filmorate-backend/pkg/instance"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
	"github.com/angelmondragon/filmorate-backend/pkg/migrate"
	"github.com/angelmondragon/filmorate-backend/pkg/redis"
)

// backend groups the stores behind every service, whichever engine owns them.
type backend struct {
	users   users.Store
	films   films.Store
	likes   likes.Store
	friends friends.Store
	catalog catalog.Store
}

func sqlBackend(conn *gorm.DB) backend {
	return backend{
		users:   users.NewRepository(conn),
		films:   films.NewRepository(conn),
		likes:   likes.NewRepository(conn),
		friends: friends.NewRepository(conn),
		catalog: catalog.NewRepository(conn),
	}
}

func memoryBackend() backend {
	store := memstore.New()
	return backend{
		users:   store.Users(),
		films:   store.Films(),
		likes:   store.Likes(),
		friends: store.Friends(),
		catalog: store.Catalog(),
	}
}

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

	var (
		stores   backend
		dbClient *db.Client
		dbP      db.Pinger
		closers  []func() error
	)
	if cfg.Storage.UsesMemory() {
		logg.Warn(ctx, "using in-memory storage; data is lost on restart")
		stores = memoryBackend()
	} else {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		dbP = dbClient

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
		stores = sqlBackend(dbClient.DB())
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
	} else {
		logg.Info(ctx, "redis not configured; using in-process rate limiting without idempotent replay")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics := metrics.NewDomainMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	userService, err := users.NewService(users.ServiceParams{
		Store:   stores.users,
		Logger:  logg,
		Metrics: domainMetrics,
	})
	requireService(ctx, logg, "users", err)

	filmService, err := films.NewService(films.ServiceParams{
		Store:          stores.films,
		Likes:          stores.likes,
		Users:          stores.users,
		Logger:         logg,
		Metrics:        domainMetrics,
		PopularDefault: cfg.Films.PopularDefault,
		PopularMax:     cfg.Films.PopularMax,
	})
	requireService(ctx, logg, "films", err)

	friendService, err := friends.NewService(friends.ServiceParams{
		Store:               stores.friends,
		Users:               stores.users,
		Logger:              logg,
		Metrics:             domainMetrics,
		CommonConfirmedOnly: cfg.Friends.CommonConfirmedOnly,
	})
	requireService(ctx, logg, "friends", err)

	catalogService, err := catalog.NewService(stores.catalog)
	requireService(ctx, logg, "catalog", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"storage":  cfg.Storage.Backend,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbP,
			redisClient,
			httpMetrics,
			registry,
			filmService,
			userService,
			friendService,
			catalogService,
		),
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			exitCode = 1
		}
		cancel()
	}

	var closeErr error
	for _, closeFn := range closers {
		closeErr = multierr.Append(closeErr, closeFn())
	}
	if closeErr != nil {
		logg.Error(ctx, "error closing resources", closeErr)
		exitCode = 1
	}

	logg.Info(ctx, "api server stopped")
	stop()
	os.Exit(exitCode)
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "service", name), "failed to create service", err)
	os.Exit(1)
}
