package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds optimistic-lock retries when writers collide.
const maxTxRetries = 10

// Change is the payload published on ChannelFavorites.
type Change struct {
	Instance string `json:"instance"`
	Op       string `json:"op"`
	ID       int    `json:"id"`
	Count    int    `json:"count"`
}

// Favorites returns the favorites backend view of the store.
func (s *Store) Favorites() *Favorites {
	return &Favorites{store: s}
}

// Favorites implements favorites.Backend on KeyFavorites.
type Favorites struct {
	store *Store
}

// Load returns the stored array, nil when unset.
func (f *Favorites) Load(ctx context.Context) ([]byte, error) {
	data, err := f.store.client.Get(ctx, KeyFavorites).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return data, nil
}

// Update applies fn under WATCH/MULTI and retries when another writer
// changed the key in between.
func (f *Favorites) Update(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	c := f.store.client

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, KeyFavorites).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read favorites: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, KeyFavorites, next, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := c.Watch(ctx, txf, KeyFavorites)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("failed to update favorites: %w", redis.TxFailedErr)
}

// Publish announces a change to other instances.
func (s *Store) Publish(ctx context.Context, op string, id, count int) error {
	payload, err := json.Marshal(Change{Instance: s.instance, Op: op, ID: id, Count: count})
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	if err := s.client.Publish(ctx, ChannelFavorites, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

// Listen relays changes published by other instances to notify until ctx
// is done.
func (s *Store) Listen(ctx context.Context, notify func(Change)) error {
	sub := s.client.Subscribe(ctx, ChannelFavorites)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelFavorites, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var c Change
			if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
				continue
			}
			if c.Instance == s.instance {
				continue
			}
			notify(c)
		}
	}
}
