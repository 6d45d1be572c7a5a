// Package analytics tracks search traffic: the web server buffers query
// events and publishes them to Kafka, and an aggregator consumes them into
// live counters
// served by the /api/analytics endpoint.
package analytics

import "time"

// EventType tags an analytics event.
type EventType string

const (
	EventSearch     EventType = "search"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventZeroResult EventType = "zero_result"
)

// SearchEvent records one executed search query.
type SearchEvent struct {
	Type       EventType `json:"type"`
	Query      string    `json:"query"`
	TotalCount int       `json:"total_count"`
	Returned   int       `json:"returned"`
	LatencyMs  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
}
