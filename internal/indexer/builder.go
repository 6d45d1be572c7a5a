// Package indexer builds the on-disk index from a stream of crawled HTML
// pages. Documents get dense u32 ids in arrival order; each document
// contributes its set of unique terms to the inverted index, so posting
// lists come out sorted without an explicit sort.
package indexer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ruseek/ruseek/internal/index"
	"github.com/ruseek/ruseek/internal/tokenizer"
)

// progressEvery controls how often Add logs build progress.
const progressEvery = 500

// Builder accumulates the forward and inverted indexes in memory and writes
// them out in one pass. A Builder is single-use.
type Builder struct {
	tok      *tokenizer.Tokenizer
	docs     []index.DocumentInfo
	inverted map[string][]uint32
	nextID   uint32
	stats    Stats
	started  time.Time
	logger   *slog.Logger
}

// New creates a Builder. The tokenizer keeps stopwords so the index stays
// complete; query-time normalisation does not filter them either.
func New() *Builder {
	return &Builder{
		tok: tokenizer.New(tokenizer.Config{
			MinLength:       2,
			Lowercase:       true,
			RemoveStopwords: false,
		}),
		inverted: make(map[string][]uint32),
		started:  time.Now(),
		logger:   slog.Default().With("component", "indexer"),
	}
}

// Add indexes one page. Pages with empty HTML are skipped and consume no doc
// id. Returns whether the page was indexed.
func (b *Builder) Add(url, html string) bool {
	if html == "" {
		return false
	}

	docID := b.nextID
	b.nextID++

	title := tokenizer.ExtractTitle(html)
	text := tokenizer.ExtractText(html)
	tokens := b.tok.Tokenize(text)

	b.docs = append(b.docs, index.DocumentInfo{
		DocID: docID,
		Title: title,
		URL:   url,
	})

	seen := make(map[string]struct{}, len(tokens))
	for _, term := range tokens {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		b.inverted[term] = append(b.inverted[term], docID)
	}

	b.stats.TotalDocuments++
	b.stats.TotalTokens += int64(len(tokens))
	b.stats.TotalTextBytes += int64(len(text))

	if b.stats.TotalDocuments%progressEvery == 0 {
		elapsed := time.Since(b.started).Seconds()
		b.logger.Info("indexing progress",
			"documents", b.stats.TotalDocuments,
			"terms", len(b.inverted),
			"docs_per_sec", fmt.Sprintf("%.1f", float64(b.stats.TotalDocuments)/elapsed),
		)
	}
	return true
}

// WriteFile persists the accumulated indexes to path: forward section,
// inverted section, then the finalized header. A partially written file is
// removed on error.
func (b *Builder) WriteFile(path string) error {
	b.finishStats()

	w, err := index.NewWriter(path)
	if err != nil {
		return err
	}
	if err := b.writeTo(w); err != nil {
		w.Close()
		os.Remove(path)
		return err
	}
	b.logger.Info("index written",
		"path", path,
		"documents", b.stats.TotalDocuments,
		"terms", b.stats.UniqueTerms,
	)
	return nil
}

func (b *Builder) writeTo(w *index.Writer) error {
	if err := w.WriteForwardIndex(b.docs); err != nil {
		return err
	}
	if err := w.WriteInvertedIndex(b.inverted); err != nil {
		return err
	}
	return w.Finalize()
}

func (b *Builder) finishStats() {
	b.stats.IndexingTime = time.Since(b.started)
	b.stats.UniqueTerms = len(b.inverted)
	b.stats.TotalPostings = 0
	var termBytes int64
	for term, postings := range b.inverted {
		b.stats.TotalPostings += int64(len(postings))
		termBytes += int64(len(term))
	}
	if len(b.inverted) > 0 {
		b.stats.AvgTermLength = float64(termBytes) / float64(len(b.inverted))
	}
}

// Stats returns the build statistics. Complete after WriteFile.
func (b *Builder) Stats() Stats {
	return b.stats
}
