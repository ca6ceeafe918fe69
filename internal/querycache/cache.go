// Package querycache memoizes remote catalog responses per query identity
// and collapses identical in-flight requests.
package querycache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/metrics"
)

// Backend is an optional second tier shared across processes.
type Backend interface {
	GetCached(ctx context.Context, key string) ([]byte, bool, error)
	SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error
	FlushCache(ctx context.Context) error
}

type entry struct {
	value   any
	expires time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	backend Backend
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates an empty cache. backend and m may be nil.
func New(backend Backend, log logger.Logger, m *metrics.Metrics) *Cache {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cache{
		entries: make(map[string]entry),
		backend: backend,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Do returns the fresh cached value for key or runs fetch once for every
// concurrent caller asking the same key. The shared fetch is detached
// from the callers' cancellation; each caller stops waiting when its own
// ctx ends. Errors are never cached.
func Do[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	k := key.String()

	if v, ok := c.lookup(k); ok {
		if typed, ok := v.(T); ok {
			c.metrics.CacheLookup(string(key.Kind), "hit")
			return typed, nil
		}
	}

	ch := c.group.DoChan(k, func() (any, error) {
		fctx := context.WithoutCancel(ctx)

		if v, ok := fromBackend[T](fctx, c, k); ok {
			c.metrics.CacheLookup(string(key.Kind), "backend_hit")
			c.store(k, v, key.Kind.TTL())
			return v, nil
		}

		c.metrics.CacheLookup(string(key.Kind), "miss")
		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		c.store(k, v, key.Kind.TTL())
		c.toBackend(fctx, k, v, key.Kind.TTL())
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.metrics.SharedFetch()
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek returns a fresh cached value without fetching.
func Peek[T any](c *Cache, key Key) (T, bool) {
	v, ok := c.lookup(key.String())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

func (c *Cache) lookup(k string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(k string, v any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[k] = entry{value: v, expires: c.now().Add(ttl)}
	n := len(c.entries)
	c.mu.Unlock()
	c.metrics.SetCacheEntries(n)
}

func fromBackend[T any](ctx context.Context, c *Cache, k string) (T, bool) {
	var v T
	if c.backend == nil {
		return v, false
	}
	data, ok, err := c.backend.GetCached(ctx, k)
	if err != nil {
		c.log.Warn("Response cache read failed", logger.String("key", k), logger.Error(err))
		return v, false
	}
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Warn("Dropping undecodable cached response", logger.String("key", k), logger.Error(err))
		return v, false
	}
	return v, true
}

func (c *Cache) toBackend(ctx context.Context, k string, v any, ttl time.Duration) {
	if c.backend == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("Failed to encode response for cache", logger.String("key", k), logger.Error(err))
		return
	}
	if err := c.backend.SetCached(ctx, k, data, ttl); err != nil {
		c.log.Warn("Response cache write failed", logger.String("key", k), logger.Error(err))
	}
}

// Sweep drops expired in-memory entries and returns how many were removed.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.metrics.SetCacheEntries(n)
	return removed
}

// Flush empties both tiers.
func (c *Cache) Flush(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.metrics.SetCacheEntries(0)

	if c.backend == nil {
		return nil
	}
	return c.backend.FlushCache(ctx)
}

// Len reports the number of in-memory entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
