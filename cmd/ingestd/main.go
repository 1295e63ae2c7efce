// Command ingestd runs the document ingestion service: it validates
// documents over HTTP, persists them to the catalog, and publishes document
// events to Kafka for the search service.
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

	"github.com/campuslabs/discovery/internal/catalog"
	ingesthandler "github.com/campuslabs/discovery/internal/ingest/handler"
	"github.com/campuslabs/discovery/internal/ingest/publisher"
	"github.com/campuslabs/discovery/pkg/config"
	"github.com/campuslabs/discovery/pkg/health"
	"github.com/campuslabs/discovery/pkg/kafka"
	"github.com/campuslabs/discovery/pkg/logger"
	"github.com/campuslabs/discovery/pkg/metrics"
	"github.com/campuslabs/discovery/pkg/middleware"
	"github.com/campuslabs/discovery/pkg/postgres"
	"github.com/campuslabs/discovery/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	port := flag.Int("port", 8081, "HTTP port for the ingestion API")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting ingestion service", "port", *port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port + 1)
		defer shutdownMetrics(context.Background())
	}

	var cat *catalog.Catalog
	var pg *postgres.Client
	if cfg.Postgres.Enabled {
		err := resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{MaxAttempts: 5}, func() error {
			pg, err = postgres.New(cfg.Postgres)
			return err
		})
		if err != nil {
			slog.Warn("catalog unavailable, documents flow through kafka only", "error", err)
		} else {
			defer pg.Close()
			cat = catalog.New(pg)
			if err := cat.EnsureSchema(ctx); err != nil {
				slog.Error("failed to ensure catalog schema", "error", err)
				os.Exit(1)
			}
		}
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.Documents)
	defer producer.Close()

	pub := publisher.New(cat, producer)
	h := ingesthandler.New(pub, m)

	checker := health.NewChecker()
	checker.Register("catalog", func(ctx context.Context) health.ComponentHealth {
		if cat == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := cat.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/documents", h.Ingest)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", h.Delete)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
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

	slog.Info("ingestion service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("ingestion service stopped")
}
