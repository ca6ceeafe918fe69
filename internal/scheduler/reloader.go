package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
	seed "github.com/MrSnakeDoc/pokedex/internal/sources/favorites"
)

// Reloader periodically imports the favorites seed file and, on manual
// trigger, also drops every cached catalog response.
type Reloader struct {
	loader        *seed.Loader // nil when no seed file is configured
	favorites     *favorites.Store
	cache         *querycache.Cache
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewReloader creates a reloader. seedFile may be empty.
func NewReloader(
	seedFile string,
	favs *favorites.Store,
	cache *querycache.Cache,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Reloader {
	var loader *seed.Loader
	if seedFile != "" {
		loader = seed.NewLoader(seedFile)
	}
	return &Reloader{
		loader:        loader,
		favorites:     favs,
		cache:         cache,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports the seed once, then keeps running until Stop or ctx ends.
// A seed file that cannot be read at startup is an error.
func (r *Reloader) Start(ctx context.Context) error {
	if _, err := r.Import(ctx); err != nil {
		return fmt.Errorf("initial favorites import failed: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := r.Import(ctx); err != nil {
					r.logger.Error("Failed to import favorites", logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("Manual reload triggered")
				if err := r.Reload(ctx); err != nil {
					r.logger.Error("Manual reload failed", logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (r *Reloader) Stop() {
	close(r.stopCh)
}

// Reload flushes the response cache and re-imports the seed file.
func (r *Reloader) Reload(ctx context.Context) error {
	if err := r.cache.Flush(ctx); err != nil {
		// the in-memory tier is already empty; only the shared tier failed
		r.logger.Warn("Failed to flush shared response cache", logger.Error(err))
	}
	_, err := r.Import(ctx)
	return err
}

// Import adds every seed entry that is not a favorite yet. Existing
// favorites are never removed or modified.
func (r *Reloader) Import(ctx context.Context) (int, error) {
	if r.loader == nil {
		return 0, nil
	}

	file, err := r.loader.Load()
	if err != nil {
		return 0, err
	}

	records, skipped := seed.Map(file)
	for _, s := range skipped {
		r.logger.Warn("Skipping favorites seed entry", logger.String("reason", s))
	}

	added := r.favorites.Import(ctx, records)
	r.logger.Info("Imported favorites seed",
		logger.String("file", r.loader.Path()),
		logger.Int("entries", len(records)),
		logger.Int("added", added))

	return added, nil
}
