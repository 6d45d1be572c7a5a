package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ruseek/ruseek/internal/searcher"
	"github.com/ruseek/ruseek/pkg/logger"
)

func main() {
	query := flag.String("q", "", "single query to run")
	interactive := flag.Bool("i", false, "interactive mode")
	limit := flag.Int("l", 10, "results limit")
	showStats := flag.Bool("stats", false, "print index statistics")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <index file>\n\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	indexPath := flag.Arg(0)

	logger.Setup("warn", "text")

	s, err := searcher.Open(indexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening index: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if *showStats {
		fmt.Printf("Index: %s\n", indexPath)
		fmt.Printf("Documents: %d\n", s.NumDocuments())
		fmt.Printf("Terms:     %d\n", s.NumTerms())
	}

	switch {
	case *query != "":
		runQuery(s, *query, *limit)
	case *interactive:
		runInteractive(s, *limit)
	case !*showStats:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -q, -i, or -stats")
		os.Exit(1)
	}
}

func runQuery(s *searcher.Searcher, query string, limit int) {
	resp, err := s.Search(query, limit, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "search error: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func runInteractive(s *searcher.Searcher, limit int) {
	fmt.Printf("Loaded index: %d documents, %d terms\n", s.NumDocuments(), s.NumTerms())
	fmt.Println("Query syntax: word1 word2 | a || b | !word | (a || b) c")
	fmt.Println("Empty line exits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			break
		}
		resp, err := s.Search(query, limit, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "search error: %v\n", err)
			continue
		}
		printResponse(resp)
	}
}

func printResponse(resp *searcher.Response) {
	fmt.Printf("Found %d documents in %.2f ms\n", resp.TotalCount, resp.QueryTimeMs)
	for i, res := range resp.Results {
		fmt.Printf("%3d. [%d] %s\n     %s\n", i+1, res.DocID, res.Title, res.URL)
	}
}
