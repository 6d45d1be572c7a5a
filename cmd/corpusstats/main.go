// corpusstats tokenises the crawled corpus, stems every token, and checks
// the resulting frequency distribution against Zipf's law. It writes a
// rank/frequency TSV and a gnuplot script for the distribution plot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/ruseek/ruseek/internal/stemmer"
	"github.com/ruseek/ruseek/internal/store"
	"github.com/ruseek/ruseek/internal/tokenizer"
	"github.com/ruseek/ruseek/internal/zipf"
	"github.com/ruseek/ruseek/pkg/config"
	"github.com/ruseek/ruseek/pkg/logger"
	"github.com/ruseek/ruseek/pkg/postgres"
	"github.com/ruseek/ruseek/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	limit := flag.Int("limit", 0, "analyse at most this many pages (0 = all)")
	dataPath := flag.String("data", "zipf_data.tsv", "rank/frequency TSV output")
	plotPath := flag.String("plot", "zipf_plot.png", "plot image name used in the gnuplot script")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

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

	// Analysis mode filters stopwords, unlike the index build: function
	// words would otherwise dominate the head of the distribution.
	tok := tokenizer.New(tokenizer.Config{
		MinLength:       2,
		Lowercase:       true,
		RemoveStopwords: true,
	})

	tokenFreq := make(map[string]int64)
	stemFreq := make(map[string]int64)
	var totalTokens, totalBytes int64
	docs := 0
	start := time.Now()

	pages := store.New(db)
	err = pages.ForEachPage(ctx, *limit, func(p store.Page) error {
		if p.HTML == "" {
			return nil
		}
		docs++
		totalBytes += int64(len(p.HTML))

		text := tokenizer.ExtractText(p.HTML)
		tokens := tok.Tokenize(text)
		totalTokens += int64(len(tokens))
		for _, t := range tokens {
			tokenFreq[t]++
			stemFreq[stemmer.Stem(t)]++
		}

		if docs%100 == 0 {
			elapsed := time.Since(start).Seconds()
			slog.Info("analysis progress",
				"documents", docs,
				"tokens", totalTokens,
				"docs_per_sec", fmt.Sprintf("%.1f", float64(docs)/elapsed),
			)
		}
		return ctx.Err()
	})
	if err != nil {
		slog.Error("corpus scan failed", "error", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("========================================")
	fmt.Println("CORPUS STATISTICS")
	fmt.Println("========================================")
	fmt.Printf("Documents:     %d\n", docs)
	fmt.Printf("Size:          %.2f MB\n", float64(totalBytes)/1024.0/1024.0)
	fmt.Printf("Tokens:        %d\n", totalTokens)
	fmt.Printf("Unique tokens: %d\n", len(tokenFreq))
	fmt.Printf("Unique stems:  %d\n", len(stemFreq))
	fmt.Printf("Time:          %.2f sec\n", elapsed.Seconds())

	printTop("Top-20 tokens", tokenFreq, 20)
	printTop("Top-20 stems", stemFreq, 20)

	if len(stemFreq) == 0 {
		return
	}

	if err := zipf.SavePlotData(stemFreq, *dataPath); err != nil {
		slog.Error("failed to save plot data", "error", err)
		os.Exit(1)
	}

	frequencies := make([]int64, 0, len(stemFreq))
	for _, count := range stemFreq {
		frequencies = append(frequencies, count)
	}
	sort.Slice(frequencies, func(i, j int) bool { return frequencies[i] > frequencies[j] })

	params := zipf.FitMandelbrot(frequencies)
	fmt.Println("\nMandelbrot fit:")
	fmt.Printf("  B   = %.3f\n", params.B)
	fmt.Printf("  P   = %.3f\n", params.P)
	fmt.Printf("  rho = %.3f\n", params.Rho)

	if err := zipf.WriteGnuplotScript(*dataPath, *plotPath, "Zipf's law (stems)", totalTokens, params); err != nil {
		slog.Error("failed to write gnuplot script", "error", err)
		os.Exit(1)
	}

	theoretical := zipf.Zipf(len(frequencies), totalTokens, 1.0)
	fmt.Println("\nDeviation from Zipf's law:")
	for _, zone := range zipf.DeviationByZone(frequencies, theoretical) {
		direction := "below"
		if zone.AboveTheory {
			direction = "above"
		}
		fmt.Printf("  %-16s %.1f%%, %s theoretical\n", zone.Name+":", zone.RelErrorPct, direction)
	}
}

func printTop(title string, freq map[string]int64, n int) {
	type termFreq struct {
		term  string
		count int64
	}
	sorted := make([]termFreq, 0, len(freq))
	for term, count := range freq {
		sorted = append(sorted, termFreq{term, count})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].count > sorted[j].count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	fmt.Printf("\n%s:\n", title)
	for i, tf := range sorted {
		fmt.Printf("  %2d. %s: %d\n", i+1, tf.term, tf.count)
	}
}
