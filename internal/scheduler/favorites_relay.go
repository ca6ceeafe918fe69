package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	redisstore "github.com/MrSnakeDoc/pokedex/internal/store/redis"
)

// FavoritesRelay bridges favorites change events between instances sharing
// one Redis: local writes are published, remote ones are fed back into the
// local store's subscribers.
type FavoritesRelay struct {
	redis     *redisstore.Store
	favorites *favorites.Store
	logger    logger.Logger
}

func NewFavoritesRelay(rs *redisstore.Store, favs *favorites.Store, log logger.Logger) *FavoritesRelay {
	return &FavoritesRelay{redis: rs, favorites: favs, logger: log}
}

// Start runs both directions until ctx ends.
func (fr *FavoritesRelay) Start(ctx context.Context) {
	events, unsubscribe := fr.favorites.Subscribe()

	go func() {
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Remote {
					continue
				}
				if err := fr.redis.Publish(ctx, ev.Op, ev.ID, ev.Count); err != nil {
					fr.logger.Warn("Failed to publish favorites change", logger.Error(err))
				}
			}
		}
	}()

	go func() {
		err := fr.redis.Listen(ctx, func(c redisstore.Change) {
			fr.favorites.Notify(favorites.Event{Op: c.Op, ID: c.ID, Count: c.Count, Remote: true})
		})
		if err != nil {
			fr.logger.Warn("Favorites change listener stopped", logger.Error(err))
		}
	}()
}
