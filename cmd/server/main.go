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
	"time"

	"golang.org/x/sync/errgroup"

	"mapportal/internal/catalog/cache"
	"mapportal/internal/catalog/feed"
	catalogmetrics "mapportal/internal/catalog/metrics"
	"mapportal/internal/catalog/store/memory"
	pgstore "mapportal/internal/catalog/store/postgres"
	redisstore "mapportal/internal/catalog/store/redis"
	"mapportal/internal/knownlayer/handler"
	layermetrics "mapportal/internal/knownlayer/metrics"
	"mapportal/internal/knownlayer/registry"
	"mapportal/internal/knownlayer/service"
	"mapportal/internal/platform/config"
	"mapportal/internal/platform/httpserver"
	"mapportal/internal/platform/kafka/admin"
	"mapportal/internal/platform/kafka/consumer"
	"mapportal/internal/platform/logger"
	"mapportal/internal/platform/metrics"
	"mapportal/internal/platform/postgres"
	"mapportal/internal/platform/redis"
	httptransport "mapportal/internal/transport/http"
	"mapportal/pkg/platform/sentinel"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("mapportal stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	layers, err := registry.LoadFile(cfg.Catalog.LayersFile)
	if err != nil {
		return fmt.Errorf("load known layers: %w", err)
	}
	log.InfoContext(ctx, "known layers loaded", "path", cfg.Catalog.LayersFile, "layers", layers.Len())

	catalogMetrics := catalogmetrics.New()
	var (
		sources      []cache.Source
		healthChecks []httptransport.HealthCheck
		feedWriter   feed.RecordWriter
	)

	if cfg.Catalog.RecordsFile != "" {
		local := memory.New("local")
		if err := local.LoadJSONFile(ctx, cfg.Catalog.RecordsFile); err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		sources = append(sources, local)
		log.InfoContext(ctx, "seed records loaded", "path", cfg.Catalog.RecordsFile, "records", local.Len())
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		store := pgstore.New(db, "postgres")
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sources = append(sources, store)
		healthChecks = append(healthChecks, httptransport.HealthCheck{Name: "postgres", Check: db.PingContext})
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store := redisstore.New(redisClient.Client, "redis", redisstore.WithKeyPrefix(cfg.Redis.KeyPrefix))
		sources = append(sources, store)
		feedWriter = store
		healthChecks = append(healthChecks, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	var feedConsumer *consumer.Consumer
	if len(cfg.Kafka.Brokers) > 0 {
		if feedWriter == nil {
			// without a shared store the feed lands in process memory
			local := memory.New("feed")
			sources = append(sources, local)
			feedWriter = local
		}
		feedConsumer, err = newFeedConsumer(ctx, cfg.Kafka, feedWriter, catalogMetrics, log)
		if err != nil {
			return err
		}
		defer feedConsumer.Close()
	}

	recordCache, err := cache.New(sources,
		cache.WithLogger(log),
		cache.WithMetrics(catalogMetrics),
		cache.WithSourceTTL(cfg.Catalog.SourceTTL),
		cache.WithConcurrency(cfg.Catalog.Concurrency),
		cache.WithCircuitBreaker(cfg.Catalog.BreakerFailures, cfg.Catalog.BreakerCooldown),
	)
	if err != nil {
		return err
	}
	healthChecks = append(healthChecks, httptransport.HealthCheck{Name: "catalog", Check: func(context.Context) error {
		if !recordCache.Status().Loaded {
			return sentinel.ErrUnavailable
		}
		return nil
	}})

	groupingService, err := service.New(recordCache, layers,
		service.WithLogger(log),
		service.WithMetrics(layermetrics.New()),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.Server.RequestTimeout,
		Handlers:       []httptransport.RouteRegistrar{handler.New(groupingService, layers, recordCache, log)},
		HealthChecks:   healthChecks,
	})
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreCancel(cache.NewRefresher(recordCache, cfg.Catalog.RefreshInterval, log).Run(gctx))
	})
	if feedConsumer != nil {
		g.Go(func() error {
			return ignoreCancel(feedConsumer.Run(gctx))
		})
	}
	g.Go(func() error {
		log.InfoContext(gctx, "starting mapportal", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down mapportal")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newFeedConsumer(ctx context.Context, cfg config.KafkaConfig, writer feed.RecordWriter, m *catalogmetrics.Metrics, log *slog.Logger) (*consumer.Consumer, error) {
	if cfg.CreateTopic {
		topicCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := admin.EnsureTopic(topicCtx, cfg.Brokers, cfg.RecordsTopic, 1, 1); err != nil {
			return nil, err
		}
	}
	h, err := feed.NewHandler(writer, feed.WithLogger(log), feed.WithMetrics(m))
	if err != nil {
		return nil, err
	}
	return consumer.New(consumer.Config{
		Brokers:  cfg.Brokers,
		Topics:   []string{cfg.RecordsTopic},
		GroupID:  cfg.GroupID,
		ClientID: "mapportal",
	}, h, consumer.WithLogger(log))
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
