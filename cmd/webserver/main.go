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

	"github.com/ruseek/ruseek/internal/analytics"
	"github.com/ruseek/ruseek/internal/searcher"
	"github.com/ruseek/ruseek/internal/web"
	"github.com/ruseek/ruseek/internal/web/cache"
	"github.com/ruseek/ruseek/pkg/config"
	"github.com/ruseek/ruseek/pkg/health"
	"github.com/ruseek/ruseek/pkg/kafka"
	"github.com/ruseek/ruseek/pkg/logger"
	"github.com/ruseek/ruseek/pkg/metrics"
	"github.com/ruseek/ruseek/pkg/middleware"
	pkgredis "github.com/ruseek/ruseek/pkg/redis"
	"github.com/ruseek/ruseek/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	indexPath := flag.String("index", "", "index file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *indexPath != "" {
		cfg.Index.Path = *indexPath
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting web server", "port", cfg.Server.Port, "index", cfg.Index.Path)

	s, err := searcher.Open(cfg.Index.Path)
	if err != nil {
		slog.Error("failed to open index", "path", cfg.Index.Path, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	// Load both sections up front: after warmup the searcher only reads
	// immutable caches, which makes concurrent request handling safe.
	if err := s.Warmup(); err != nil {
		slog.Error("failed to warm up index", "error", err)
		os.Exit(1)
	}
	slog.Info("index loaded", "documents", s.NumDocuments(), "terms", s.NumTerms())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var queryCache *cache.QueryCache
	var redisClient *pkgredis.Client
	err = resilience.Retry(ctx, "redis-connect", resilience.RetryConfig{}, func() error {
		var connErr error
		redisClient, connErr = pkgredis.NewClient(cfg.Redis)
		return connErr
	})
	if err != nil {
		slog.Warn("redis unavailable, query caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		queryCache = cache.New(redisClient, cfg.Redis)
		slog.Info("query cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
	defer producer.Close()
	collector := analytics.NewCollector(producer, 10000)
	collector.Start(ctx)
	defer collector.Close()

	aggregator := analytics.NewAggregator()
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents, analytics.HandleEvent(aggregator))
	aggregator.SetConsumer(consumer)
	go func() {
		if err := aggregator.Start(ctx); err != nil {
			slog.Error("analytics aggregator error", "error", err)
		}
	}()
	slog.Info("analytics started", "topic", cfg.Kafka.Topics.SearchEvents)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.IndexDocuments.Set(float64(s.NumDocuments()))
		m.IndexTerms.Set(float64(s.NumTerms()))
	}

	checker := health.NewChecker()
	checker.Register("index", func(ctx context.Context) health.ComponentHealth {
		if s.NumDocuments() > 0 {
			return health.ComponentHealth{
				Status:  health.StatusUp,
				Message: fmt.Sprintf("%d documents", s.NumDocuments()),
			}
		}
		return health.ComponentHealth{Status: health.StatusDegraded, Message: "index is empty"}
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

	h := web.NewHandler(s, queryCache, collector, aggregator, m, cfg.Search)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /search", h.SearchPage)
	mux.HandleFunc("GET /api/search", h.SearchAPI)
	mux.HandleFunc("GET /api/analytics", h.Analytics)
	mux.HandleFunc("GET /api/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/cache/invalidate", h.CacheInvalidate)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())
	if cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	var chain http.Handler = mux
	if m != nil {
		chain = middleware.Metrics(m)(chain)
	}
	chain = middleware.Timeout(cfg.Server.WriteTimeout)(chain)
	chain = middleware.RequestID(chain)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
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

	slog.Info("web server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("web server stopped")
}
