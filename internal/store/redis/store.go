package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for favorites and the response cache
type Store struct {
	client   *redis.Client
	instance string
}

// NewStore creates a new Redis store. instance tags published change
// notifications so a process can ignore its own.
func NewStore(client *redis.Client, instance string) *Store {
	return &Store{
		client:   client,
		instance: instance,
	}
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// CachedResponses counts keys of the response cache tier.
func (s *Store) CachedResponses(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to count cache keys: %w", err)
	}
	return n, nil
}
