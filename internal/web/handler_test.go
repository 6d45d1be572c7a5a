package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruseek/ruseek/internal/index"
	"github.com/ruseek/ruseek/internal/searcher"
	"github.com/ruseek/ruseek/pkg/config"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "web.idx")
	w, err := index.NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	docs := []index.DocumentInfo{
		{DocID: 0, Title: "Кошки", URL: "https://example.org/cats"},
		{DocID: 1, Title: "Собаки", URL: "https://example.org/dogs"},
	}
	inverted := map[string][]uint32{
		"кот":    {0},
		"собака": {1},
		"зверь":  {0, 1},
	}
	if err := w.WriteForwardIndex(docs); err != nil {
		t.Fatalf("WriteForwardIndex: %v", err)
	}
	if err := w.WriteInvertedIndex(inverted); err != nil {
		t.Fatalf("WriteInvertedIndex: %v", err)
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	s, err := searcher.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewHandler(s, nil, nil, nil, nil, config.SearchConfig{
		DefaultLimit: 10,
		MaxResults:   100,
		PageSize:     50,
	})
}

func TestSearchAPI(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=зверь", nil)
	rec := httptest.NewRecorder()
	h.SearchAPI(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp searcher.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalCount != 2 || len(resp.Results) != 2 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Results[0].DocID != 0 || resp.Results[1].DocID != 1 {
		t.Errorf("ids not ascending: %+v", resp.Results)
	}
}

func TestSearchAPIMissingQuery(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	h.SearchAPI(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchAPIUnknownTerm(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=вакуум", nil)
	rec := httptest.NewRecorder()
	h.SearchAPI(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp searcher.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalCount != 0 || len(resp.Results) != 0 {
		t.Errorf("response = %+v, want empty", resp)
	}
}

func TestSearchPageRedirectsEmptyQuery(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	h.SearchPage(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("location = %q, want /", loc)
	}
}

func TestSearchPageRendersResults(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/search?q=кот", nil)
	rec := httptest.NewRecorder()
	h.SearchPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, fragment := range []string{"Кошки", "https://example.org/cats", "Page 1 of 1"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("page missing %q", fragment)
		}
	}
}

func TestAnalyticsDisabled(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	rec := httptest.NewRecorder()
	h.Analytics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "disabled") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestCacheEndpointsWithoutCache(t *testing.T) {
	h := testHandler(t)

	rec := httptest.NewRecorder()
	h.CacheStats(rec, httptest.NewRequest(http.MethodGet, "/api/cache/stats", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("stats status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.CacheInvalidate(rec, httptest.NewRequest(http.MethodPost, "/api/cache/invalidate", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("invalidate status = %d, want 503", rec.Code)
	}
}
