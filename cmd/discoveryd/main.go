// Command discoveryd runs the campus discovery search service: it owns the
// in-memory index, applies document events from Kafka, and serves the
// search API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/campuslabs/discovery/internal/analytics"
	"github.com/campuslabs/discovery/internal/catalog"
	"github.com/campuslabs/discovery/internal/index"
	"github.com/campuslabs/discovery/internal/indexloader"
	"github.com/campuslabs/discovery/internal/search"
	searchcache "github.com/campuslabs/discovery/internal/search/cache"
	searchhandler "github.com/campuslabs/discovery/internal/search/handler"
	"github.com/campuslabs/discovery/internal/seed"
	"github.com/campuslabs/discovery/pkg/config"
	"github.com/campuslabs/discovery/pkg/health"
	"github.com/campuslabs/discovery/pkg/kafka"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/metrics"
	"github.com/campuslabs/discovery/pkg/middleware"
	"github.com/campuslabs/discovery/pkg/postgres"
	pkgredis "github.com/campuslabs/discovery/pkg/redis"
	"github.com/campuslabs/discovery/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting discovery service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port)
		defer shutdownMetrics(context.Background())
	}

	engine := search.NewEngine(index.New(), suggestTables(cfg.Suggest))

	var cat *catalog.Catalog
	var pg *postgres.Client
	if cfg.Postgres.Enabled {
		err := resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{MaxAttempts: 5}, func() error {
			pg, err = postgres.New(cfg.Postgres)
			return err
		})
		if err != nil {
			slog.Warn("catalog unavailable, running without persistence", "error", err)
		} else {
			defer pg.Close()
			cat = catalog.New(pg)
			if err := cat.EnsureSchema(ctx); err != nil {
				slog.Error("failed to ensure catalog schema", "error", err)
				os.Exit(1)
			}
		}
	}

	var queryCache *searchcache.QueryCache
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, search caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = searchcache.New(redisClient, cfg.Redis)
		slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	analyticsProducer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
	defer analyticsProducer.Close()
	collector := analytics.NewCollector(analyticsProducer, 10000)
	collector.Start(ctx)
	defer collector.Close()

	aggregator := analytics.NewAggregator()
	analyticsConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents, aggregator.Handler())
	go func() {
		if err := analyticsConsumer.Start(ctx); err != nil {
			slog.Error("analytics consumer error", "error", err)
		}
	}()

	loader := indexloader.New(engine, cat, queryCache, collector, m)
	seeded, err := loader.Seed(ctx)
	if err != nil {
		slog.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	if seeded == 0 {
		seed.Load(engine)
	}
	slog.Info("index ready", "documents", engine.DocCount())

	documentConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.Documents, loader.Handler())
	go func() {
		if err := documentConsumer.Start(ctx); err != nil {
			slog.Error("document consumer error", "error", err)
		}
	}()

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		if engine.DocCount() > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d documents indexed", engine.DocCount()),
			}
		}
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "index empty"}
	})
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("catalog", func(ctx context.Context) health.ComponentHealth {
		if cat == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := cat.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	h := searchhandler.New(engine, queryCache, collector, m, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	analyticsH := analytics.NewHandler(aggregator)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/suggest", h.Suggest)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /api/v1/analytics", analyticsH.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("discovery service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("discovery service stopped")
}

// suggestTables merges configured suggestion vocabulary over the defaults.
func suggestTables(cfg config.SuggestConfig) search.SuggestTables {
	tables := search.DefaultSuggestTables()
	if len(cfg.CommonQueries) > 0 {
		tables.CommonQueries = cfg.CommonQueries
	}
	if len(cfg.Corrections) > 0 {
		tables.Corrections = cfg.Corrections
	}
	if len(cfg.PopularQueries) > 0 {
		tables.PopularQueries = cfg.PopularQueries
	}
	return tables
}
