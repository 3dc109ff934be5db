package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/config"
	"github.com/rickgao/polymarket-data/internal/database"
	"github.com/rickgao/polymarket-data/internal/feed"
	"github.com/rickgao/polymarket-data/internal/market"
	"github.com/rickgao/polymarket-data/internal/metrics"
	"github.com/rickgao/polymarket-data/internal/poller"
	"github.com/rickgao/polymarket-data/internal/router"
	"github.com/rickgao/polymarket-data/internal/version"
	"github.com/rickgao/polymarket-data/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/gatherer.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting gatherer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runID := uuid.New()
	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"run_id", runID,
		"assets", cfg.Contracts.Assets,
		"cadences", cfg.Contracts.Cadences,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to the optional Postgres sink
	var pool *pgxpool.Pool
	if cfg.Writers.Postgres.Enabled {
		db := cfg.Writers.Postgres.Database
		logger.Info("connecting to database",
			"host", db.Host, "port", db.Port, "database", db.Name)

		pool, err = database.Connect(ctx, db)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("database connected")
	}

	// API clients
	clientOpts := []api.ClientOption{
		api.WithLogger(logger),
		api.WithTimeout(cfg.Sources.Timeout),
		api.WithRetries(cfg.Sources.MaxRetries, time.Second),
	}
	gamma := api.NewGamma(cfg.Sources.GammaURL, clientOpts...)
	clob := api.NewCLOB(cfg.Sources.CLOBURL, clientOpts...)
	spot := api.NewSpot(cfg.Sources.SpotURL, clientOpts...)

	// Contract registry
	registryCfg := market.DefaultConfig()
	registryCfg.ReconcileInterval = cfg.Registry.ReconcileInterval
	registryCfg.InitialLoadTimeout = cfg.Registry.InitialLoadTimeout
	registry := market.NewRegistry(registryCfg, cfg.Assets(), cfg.Cadences(), gamma, logger)

	// Router and sinks
	rt := router.New(logger)
	writerCfg := writer.WriterConfig{
		BatchSize:     cfg.Writers.BatchSize,
		FlushInterval: cfg.Writers.FlushInterval,
	}

	csvSink := writer.NewCSVWriter(writerCfg, cfg.Writers.CSVDir,
		rt.Register("csv", cfg.Writers.BufferSize), logger)

	var pgSink *writer.PostgresWriter
	if pool != nil {
		pgSink = writer.NewPostgresWriter(writerCfg,
			rt.Register("postgres", cfg.Writers.BufferSize), pool, logger)
	}

	// Optional live spot feed
	var spotFeed *feed.Feed
	var spotSource poller.SpotSource
	if cfg.Sources.SpotStream {
		feedCfg := feed.DefaultConfig()
		feedCfg.URL = cfg.Sources.SpotWSURL
		spotFeed = feed.New(feedCfg, cfg.Assets(), logger)
		spotSource = spotFeed
	}

	// Collector
	collector := poller.New(
		poller.Config{
			Interval:    cfg.Collector.Interval,
			Concurrency: cfg.Collector.Concurrency,
			Timeout:     cfg.Collector.Timeout,
		},
		registry, clob, spot, spotSource, rt, runID, logger,
	)

	// Metrics and health server
	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler(pool, registry, rt))
	metricsServer := metrics.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, mux, logger)
	metricsServer.Start()

	// Start components: registry resolves before anything consumes it.
	if err := registry.Start(ctx); err != nil {
		logger.Error("failed to start contract registry", "error", err)
		os.Exit(1)
	}
	if err := csvSink.Start(ctx); err != nil {
		logger.Error("failed to start csv writer", "error", err)
		os.Exit(1)
	}
	if pgSink != nil {
		if err := pgSink.Start(ctx); err != nil {
			logger.Error("failed to start postgres writer", "error", err)
			os.Exit(1)
		}
	}
	if spotFeed != nil {
		if err := spotFeed.Start(ctx); err != nil {
			logger.Error("failed to start spot feed", "error", err)
			os.Exit(1)
		}
	}
	if err := collector.Start(ctx); err != nil {
		logger.Error("failed to start collector", "error", err)
		os.Exit(1)
	}

	logger.Info("gatherer running",
		"instance_id", cfg.Instance.ID,
		"entries", len(registry.Active()),
	)

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop producers first, then drain the sinks.
	collector.Stop(shutdownCtx)
	if spotFeed != nil {
		spotFeed.Stop(shutdownCtx)
	}
	registry.Stop(shutdownCtx)
	rt.Close()
	csvSink.Stop(shutdownCtx)
	if pgSink != nil {
		pgSink.Stop(shutdownCtx)
	}
	metricsServer.Stop(shutdownCtx)

	logger.Info("gatherer stopped",
		"published", rt.Published(),
	)
}

// healthHandler reports component status as JSON.
func healthHandler(pool *pgxpool.Pool, registry market.Registry, rt *router.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		entries := registry.Active()
		slugs := make(map[string]string, len(entries))
		for _, e := range entries {
			slugs[e.Window.Asset.Short()+"/"+e.Window.Cadence.String()] = e.Market.Slug
		}
		health.Components["registry"] = map[string]any{
			"entries": len(entries),
			"slugs":   slugs,
		}
		if len(entries) == 0 {
			health.Status = "degraded"
		}

		health.Components["router"] = map[string]any{
			"published": rt.Published(),
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})
}
