// Package cache is the Redis-backed query result cache for the web server.
// Identical in-flight queries are collapsed with singleflight so a cold
// popular query hits the evaluator once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ruseek/ruseek/internal/searcher"
	"github.com/ruseek/ruseek/pkg/config"
	pkgredis "github.com/ruseek/ruseek/pkg/redis"
)

const keyPrefix = "search:"

// QueryCache caches searcher responses keyed by query, limit, and offset.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a QueryCache on top of a Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached response for the given query parameters, if any.
func (c *QueryCache) Get(ctx context.Context, query string, limit, offset int) (*searcher.Response, bool) {
	key := c.buildKey(query, limit, offset)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var resp searcher.Response
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", query, "key", key)
	return &resp, true
}

// Set stores a response under the query parameters with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, query string, limit, offset int, resp *searcher.Response) {
	key := c.buildKey(query, limit, offset)
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached response or computes, caches, and returns
// a fresh one. The boolean reports whether the response came from the cache.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	limit, offset int,
	computeFn func() (*searcher.Response, error),
) (*searcher.Response, bool, error) {
	if resp, ok := c.Get(ctx, query, limit, offset); ok {
		return resp, true, nil
	}
	key := c.buildKey(query, limit, offset)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if resp, ok := c.Get(ctx, query, limit, offset); ok {
			return resp, nil
		}
		resp, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, query, limit, offset, resp)
		return resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*searcher.Response), false, nil
}

// Invalidate deletes every cached search response.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the query as given, with only surrounding whitespace
// trimmed: boolean operators are not commutative across NOT, so no
// reordering normalisation is attempted.
func (c *QueryCache) buildKey(query string, limit, offset int) string {
	raw := fmt.Sprintf("%s:limit=%d:offset=%d", strings.TrimSpace(query), limit, offset)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
