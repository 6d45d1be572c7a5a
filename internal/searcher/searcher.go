// Package searcher evaluates boolean queries against an open index file. It
// parses the query, walks the expression tree bottom-up composing sorted
// posting lists, and pages through the matching doc ids in ascending order.
package searcher

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ruseek/ruseek/internal/index"
	"github.com/ruseek/ruseek/internal/searcher/parser"
	"github.com/ruseek/ruseek/internal/tokenizer"
)

// Result is one search hit.
type Result struct {
	DocID uint32 `json:"doc_id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Response is the outcome of one Search call. Results holds at most limit
// hits starting at offset; TotalCount is the full match count.
type Response struct {
	Query       string   `json:"query"`
	Results     []Result `json:"results"`
	TotalCount  int      `json:"total_count"`
	QueryTimeMs float64  `json:"query_time_ms"`
}

// Searcher owns an index reader and a query-time tokenizer configured to
// match the indexing pipeline (lowercase, no stopword filtering).
type Searcher struct {
	reader   *index.Reader
	tok      *tokenizer.Tokenizer
	universe []uint32
	logger   *slog.Logger
}

// Open opens the index file at path.
func Open(path string) (*Searcher, error) {
	reader, err := index.Open(path)
	if err != nil {
		return nil, err
	}
	return New(reader), nil
}

// New wraps an already opened reader.
func New(reader *index.Reader) *Searcher {
	return &Searcher{
		reader: reader,
		tok: tokenizer.New(tokenizer.Config{
			MinLength:       2,
			Lowercase:       true,
			RemoveStopwords: false,
		}),
		logger: slog.Default().With("component", "searcher"),
	}
}

// Warmup loads both index sections and the NOT universe. After Warmup the
// searcher only reads immutable caches, so Search becomes safe for
// concurrent callers.
func (s *Searcher) Warmup() error {
	if _, err := s.reader.LoadInvertedIndex(); err != nil {
		return fmt.Errorf("warming up index: %w", err)
	}
	_, err := s.allDocIDs()
	return err
}

// NumDocuments returns the document count from the index header.
func (s *Searcher) NumDocuments() int {
	return int(s.reader.Header().NumDocuments)
}

// NumTerms returns the unique term count from the index header.
func (s *Searcher) NumTerms() int {
	return int(s.reader.Header().NumTerms)
}

// Close closes the underlying index reader.
func (s *Searcher) Close() error {
	return s.reader.Close()
}

// Search evaluates query and returns the matches in [offset, offset+limit),
// ordered by ascending doc id. An empty or unparseable query yields zero
// results, never an error; errors are reserved for index I/O failures.
func (s *Searcher) Search(query string, limit, offset int) (*Response, error) {
	start := time.Now()
	resp := &Response{Query: query, Results: []Result{}}

	ast := parser.Parse(query)
	if ast == nil {
		return resp, nil
	}

	ids, err := s.evaluate(ast)
	if err != nil {
		return nil, err
	}
	resp.TotalCount = len(ids)

	lo := offset
	if lo > len(ids) {
		lo = len(ids)
	}
	hi := offset + limit
	if hi > len(ids) {
		hi = len(ids)
	}
	for _, id := range ids[lo:hi] {
		doc, err := s.reader.Document(id)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, Result{
			DocID: id,
			Title: doc.Title,
			URL:   doc.URL,
		})
	}

	resp.QueryTimeMs = float64(time.Since(start).Nanoseconds()) / 1e6
	s.logger.Debug("query evaluated",
		"query", query,
		"total", resp.TotalCount,
		"returned", len(resp.Results),
	)
	return resp, nil
}

// evaluate computes the sorted doc id set for a query tree node.
func (s *Searcher) evaluate(n *parser.Node) ([]uint32, error) {
	switch n.Type {
	case parser.NodeTerm:
		term := s.tok.Normalize(n.Term)
		if term == "" {
			return nil, nil
		}
		return s.reader.PostingList(term)

	case parser.NodeNot:
		operand, err := s.evaluate(n.Operands[0])
		if err != nil {
			return nil, err
		}
		universe, err := s.allDocIDs()
		if err != nil {
			return nil, err
		}
		return difference(universe, operand), nil

	case parser.NodeAnd:
		if len(n.Operands) == 0 {
			return nil, nil
		}
		result, err := s.evaluate(n.Operands[0])
		if err != nil {
			return nil, err
		}
		for _, op := range n.Operands[1:] {
			if len(result) == 0 {
				break
			}
			right, err := s.evaluate(op)
			if err != nil {
				return nil, err
			}
			result = intersect(result, right)
		}
		return result, nil

	case parser.NodeOr:
		var result []uint32
		for _, op := range n.Operands {
			right, err := s.evaluate(op)
			if err != nil {
				return nil, err
			}
			result = union(result, right)
		}
		return result, nil
	}
	return nil, nil
}

// allDocIDs returns the NOT universe: every doc id present in the forward
// index, cached after the first call.
func (s *Searcher) allDocIDs() ([]uint32, error) {
	if s.universe == nil {
		ids, err := s.reader.AllDocIDs()
		if err != nil {
			return nil, err
		}
		s.universe = ids
	}
	return s.universe, nil
}
