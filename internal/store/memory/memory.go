// Package memory is an in-process key/value backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
)

// Store keeps values in a map guarded by a mutex.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return slices.Clone(v), ok
}

func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
}

// Favorites exposes the store as a favorites backend under the fixed key.
func (s *Store) Favorites() *Favorites {
	return &Favorites{store: s}
}

// Favorites implements favorites.Backend.
type Favorites struct {
	store *Store
}

func (f *Favorites) Load(context.Context) ([]byte, error) {
	v, _ := f.store.Get(domain.FavoritesKey)
	return v, nil
}

func (f *Favorites) Update(_ context.Context, fn func([]byte) ([]byte, error)) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	next, err := fn(slices.Clone(f.store.data[domain.FavoritesKey]))
	if err != nil {
		return err
	}
	f.store.data[domain.FavoritesKey] = slices.Clone(next)
	return nil
}
