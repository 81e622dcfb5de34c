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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"shoplist/internal/audit"
	httpapi "shoplist/internal/http"
	"shoplist/internal/identity"
	"shoplist/internal/platform/config"
	"shoplist/internal/platform/httpserver"
	"shoplist/internal/platform/kafka"
	"shoplist/internal/platform/logger"
	"shoplist/internal/platform/metrics"
	"shoplist/internal/platform/postgres"
	"shoplist/internal/platform/redis"
	ratelimitmetrics "shoplist/internal/ratelimit/metrics"
	ratelimitmw "shoplist/internal/ratelimit/middleware"
	"shoplist/internal/ratelimit/store/bucket"
	listhandler "shoplist/internal/shoppinglist/handler"
	listmetrics "shoplist/internal/shoppinglist/metrics"
	listservice "shoplist/internal/shoppinglist/service"
	liststore "shoplist/internal/shoppinglist/store"
	usershandler "shoplist/internal/users/handler"
	usersmodels "shoplist/internal/users/models"
	usersservice "shoplist/internal/users/service"
	usersstore "shoplist/internal/users/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until ctx is cancelled.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry()
	checks := map[string]httpapi.HealthCheck{}

	lists, users, closeStores, err := buildStores(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeStores()

	seed, err := usersmodels.ParseSeed(cfg.Users.Seed)
	if err != nil {
		return fmt.Errorf("parse USERS_SEED: %w", err)
	}
	if err := users.Upsert(ctx, seed...); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	sink, closeSink, err := buildAuditSink(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeSink()
	publisher := audit.NewPublisher(cfg.Audit.BufferSize, log)
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	limiter, closeLimiter, err := buildRateLimiter(ctx, cfg, log, reg, checks)
	if err != nil {
		return err
	}
	defer closeLimiter()

	listSvc := listservice.New(lists,
		listservice.WithLogger(log),
		listservice.WithMetrics(listmetrics.New(reg)),
		listservice.WithAuditPublisher(publisher),
	)

	deps := httpapi.Deps{
		Logger:   log,
		Resolver: buildResolver(cfg.Auth),
		Routes: []httpapi.Registrar{
			listhandler.New(listSvc, log),
			usershandler.New(usersservice.New(users, log), log),
		},
		RateLimit:      limiter.Handler,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		HealthChecks:   checks,
		RequestTimeout: cfg.Server.RequestTimeout,
	}
	if cfg.Server.HTTPLogEnabled {
		deps.AccessLog = os.Stdout
		deps.AccessLogLevel = logger.ParseLevel(cfg.Logging.Level)
		deps.AccessLogJSON = cfg.Logging.Format != "text"
	}
	srv := httpserver.New(cfg.Server.Addr, httpapi.NewRouter(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting shoplist", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Drains until the publisher closes so events of in-flight requests are delivered.
		return worker.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		publisher.Close()
		if dropped := publisher.Dropped(); dropped > 0 {
			log.Warn("audit events dropped", "count", dropped)
		}
		log.Info("shoplist stopped")
		return err
	})
	return g.Wait()
}

type userDirectory interface {
	usersservice.Store
	Upsert(ctx context.Context, users ...usersmodels.User) error
}

// buildStores picks PostgreSQL when DATABASE_URL is set and memory otherwise.
func buildStores(ctx context.Context, cfg config.Config, log *slog.Logger, checks map[string]httpapi.HealthCheck) (listservice.Store, userDirectory, func(), error) {
	if cfg.Database.URL == "" {
		log.Info("using in-memory stores")
		return liststore.NewInMemory(), usersstore.NewInMemory(), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := usersstore.OpenPostgres(ctx, cfg.Database.URL)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	closeAll := func() {
		_ = db.Close()
		pool.Close()
	}

	users := usersstore.NewPostgres(db)
	if cfg.Database.AutoMigrate {
		if err := liststore.Migrate(ctx, pool); err != nil {
			closeAll()
			return nil, nil, nil, err
		}
		if err := users.Migrate(ctx); err != nil {
			closeAll()
			return nil, nil, nil, err
		}
	}
	checks["database"] = pool.Ping
	log.Info("using postgres stores", "max_conns", cfg.Database.MaxConns)
	return liststore.NewPostgres(pool), users, closeAll, nil
}

// buildAuditSink publishes to Kafka when brokers are configured, otherwise to the log.
func buildAuditSink(ctx context.Context, cfg config.Config, log *slog.Logger, checks map[string]httpapi.HealthCheck) (audit.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewLogSink(log), func() {}, nil
	}
	producer, err := kafka.NewProducer(ctx, kafka.Config{
		Brokers:           cfg.Kafka.Brokers,
		Topic:             cfg.Kafka.Topic,
		Partitions:        cfg.Kafka.Partitions,
		ReplicationFactor: cfg.Kafka.ReplicationFactor,
		ClientID:          cfg.Kafka.ClientID,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	checks["kafka"] = producer.Ping
	return audit.NewKafkaSink(producer), producer.Close, nil
}

// buildRateLimiter counts in Redis when configured; the in-memory window is
// always present as the fallback.
func buildRateLimiter(ctx context.Context, cfg config.Config, log *slog.Logger, reg *prometheus.Registry, checks map[string]httpapi.HealthCheck) (*ratelimitmw.Middleware, func(), error) {
	opts := []ratelimitmw.Option{
		ratelimitmw.WithLogger(log),
		ratelimitmw.WithMetrics(ratelimitmetrics.New(reg)),
		ratelimitmw.WithDisabled(!cfg.RateLimit.Enabled),
		ratelimitmw.WithFallback(bucket.NewInMemory()),
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return ratelimitmw.New(nil, cfg.RateLimit.Requests, cfg.RateLimit.Window, opts...), func() {}, nil
	}
	checks["redis"] = client.Health
	limiter := ratelimitmw.New(bucket.NewRedis(client), cfg.RateLimit.Requests, cfg.RateLimit.Window, opts...)
	return limiter, func() { _ = client.Close() }, nil
}

func buildResolver(cfg config.Auth) *identity.Resolver {
	if cfg.JWTSecret == "" {
		return identity.NewResolver()
	}
	return identity.NewResolver(identity.WithTokenVerifier(identity.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer), cfg.RequireJWT))
}
