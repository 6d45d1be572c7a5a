// Package web serves the search frontend: HTML pages for humans, a JSON API,
// and the operational endpoints (analytics, cache control).
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ruseek/ruseek/internal/analytics"
	"github.com/ruseek/ruseek/internal/searcher"
	"github.com/ruseek/ruseek/internal/web/cache"
	"github.com/ruseek/ruseek/pkg/config"
	apperrors "github.com/ruseek/ruseek/pkg/errors"
	"github.com/ruseek/ruseek/pkg/logger"
	"github.com/ruseek/ruseek/pkg/metrics"
)

// Handler carries the search dependencies for all HTTP endpoints. The cache,
// collector, aggregator, and metrics may be nil; each endpoint degrades
// accordingly.
type Handler struct {
	searcher   *searcher.Searcher
	cache      *cache.QueryCache
	collector  *analytics.Collector
	aggregator *analytics.Aggregator
	metrics    *metrics.Metrics
	search     config.SearchConfig
	logger     *slog.Logger
}

// NewHandler wires the endpoint dependencies together.
func NewHandler(
	s *searcher.Searcher,
	queryCache *cache.QueryCache,
	collector *analytics.Collector,
	aggregator *analytics.Aggregator,
	m *metrics.Metrics,
	search config.SearchConfig,
) *Handler {
	return &Handler{
		searcher:   s,
		cache:      queryCache,
		collector:  collector,
		aggregator: aggregator,
		metrics:    m,
		search:     search,
		logger:     slog.Default().With("component", "web-handler"),
	}
}

// Index serves the landing page with the query-syntax hints.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, nil); err != nil {
		h.logger.Error("rendering index page", "error", err)
	}
}

// SearchPage serves paginated HTML results. An empty query redirects home.
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	pageSize := h.search.PageSize
	resp, _, err := h.runSearch(r, query, pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("search failed", "query", query, "error", err)
		http.Error(w, "search failed", apperrors.HTTPStatusCode(err))
		return
	}

	totalPages := (resp.TotalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	data := resultsData{
		Query:       query,
		TotalCount:  resp.TotalCount,
		QueryTimeMs: fmt.Sprintf("%.2f", resp.QueryTimeMs),
		Page:        page,
		TotalPages:  totalPages,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
	for _, res := range resp.Results {
		data.Results = append(data.Results, resultRow{Title: res.Title, URL: res.URL})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultsPage.Execute(w, data); err != nil {
		h.logger.Error("rendering results page", "error", err)
	}
}

// SearchAPI serves JSON results for programmatic callers.
func (h *Handler) SearchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := h.search.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > h.search.MaxResults {
			parsed = h.search.MaxResults
		}
		limit = parsed
	}
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	resp, _, err := h.runSearch(r, query, limit, (page-1)*limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("search execution failed", "query", query, "error", err)
		h.writeError(w, apperrors.HTTPStatusCode(err), "search failed")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// runSearch executes a query through the cache when one is configured, and
// records metrics and analytics for the result.
func (h *Handler) runSearch(r *http.Request, query string, limit, offset int) (*searcher.Response, bool, error) {
	start := time.Now()
	ctx := r.Context()

	var resp *searcher.Response
	var err error
	cacheHit := false

	if h.cache != nil {
		resp, cacheHit, err = h.cache.GetOrCompute(ctx, query, limit, offset, func() (*searcher.Response, error) {
			return h.searcher.Search(query, limit, offset)
		})
	} else {
		resp, err = h.searcher.Search(query, limit, offset)
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.SearchQueriesTotal.WithLabelValues("error").Inc()
		}
		return nil, false, err
	}

	latency := time.Since(start)
	if h.metrics != nil {
		resultType := "ok"
		if resp.TotalCount == 0 {
			resultType = "zero_result"
		}
		cacheStatus := "miss"
		if cacheHit {
			cacheStatus = "hit"
			h.metrics.CacheHitsTotal.Inc()
		} else {
			h.metrics.CacheMissesTotal.Inc()
		}
		h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
		h.metrics.SearchResultsCount.Observe(float64(len(resp.Results)))
	}

	logger.FromContext(ctx).Info("search completed",
		"query", query,
		"total", resp.TotalCount,
		"returned", len(resp.Results),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)

	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		h.collector.Track(analytics.SearchEvent{
			Type:       eventType,
			Query:      query,
			TotalCount: resp.TotalCount,
			Returned:   len(resp.Results),
			LatencyMs:  latency.Milliseconds(),
			CacheHit:   cacheHit,
			Timestamp:  time.Now().UTC(),
			RequestID:  logger.RequestID(ctx),
		})
	}
	return resp, cacheHit, nil
}

// Analytics serves the aggregated traffic snapshot.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	if h.aggregator == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.aggregator.Stats())
}

// CacheStats serves the query-cache hit/miss counters.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate drops every cached search response.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
