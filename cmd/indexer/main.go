package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruseek/ruseek/internal/indexer"
	"github.com/ruseek/ruseek/internal/store"
	"github.com/ruseek/ruseek/pkg/config"
	"github.com/ruseek/ruseek/pkg/logger"
	"github.com/ruseek/ruseek/pkg/postgres"
	"github.com/ruseek/ruseek/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	outputPath := flag.String("output", "", "index file to write (overrides config)")
	limit := flag.Int("limit", 0, "index at most this many pages (0 = all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outputPath == "" {
		*outputPath = cfg.Index.Path
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("building boolean index", "output", *outputPath, "limit", *limit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *postgres.Client
	err = resilience.Retry(ctx, "postgres-connect", resilience.RetryConfig{}, func() error {
		var connErr error
		db, connErr = postgres.New(cfg.Postgres)
		return connErr
	})
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pages := store.New(db)
	total, err := pages.CountPages(ctx)
	if err != nil {
		slog.Error("failed to count pages", "error", err)
		os.Exit(1)
	}
	if *limit > 0 && int64(*limit) < total {
		total = int64(*limit)
	}
	slog.Info("documents to index", "count", total)

	builder := indexer.New()
	err = pages.ForEachPage(ctx, *limit, func(p store.Page) error {
		builder.Add(p.URL, p.HTML)
		return ctx.Err()
	})
	if err != nil {
		slog.Error("corpus scan failed", "error", err)
		os.Exit(1)
	}

	if err := builder.WriteFile(*outputPath); err != nil {
		slog.Error("failed to write index", "path", *outputPath, "error", err)
		os.Exit(1)
	}

	stats := builder.Stats()
	fmt.Println("========================================")
	fmt.Println("INDEXING STATISTICS")
	fmt.Println("========================================")
	fmt.Printf("Documents:       %d\n", stats.TotalDocuments)
	fmt.Printf("Unique terms:    %d\n", stats.UniqueTerms)
	fmt.Printf("Total tokens:    %d\n", stats.TotalTokens)
	fmt.Printf("Total postings:  %d\n", stats.TotalPostings)
	fmt.Printf("Avg term length: %.2f\n", stats.AvgTermLength)
	fmt.Printf("Speed:           %.1f docs/sec\n", stats.DocsPerSecond())
	fmt.Printf("Speed:           %.1f KB/sec\n", stats.KBPerSecond())
	fmt.Println("========================================")
}
