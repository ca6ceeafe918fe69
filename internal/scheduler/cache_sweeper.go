package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
)

// CacheSweeper evicts expired responses from the in-memory cache tier.
type CacheSweeper struct {
	cache    *querycache.Cache
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewCacheSweeper(cache *querycache.Cache, log logger.Logger, interval time.Duration) *CacheSweeper {
	return &CacheSweeper{
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins periodic sweeping
func (cs *CacheSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				cs.Sweep(now)
			case <-cs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (cs *CacheSweeper) Stop() {
	close(cs.stopCh)
}

// Sweep runs one eviction pass.
func (cs *CacheSweeper) Sweep(now time.Time) int {
	removed := cs.cache.Sweep(now)
	if removed > 0 {
		cs.logger.Debug("Evicted expired cached responses",
			logger.Int("removed", removed),
			logger.Int("remaining", cs.cache.Len()))
	}
	return removed
}
