// Package favorites owns the durable favorites list. Every consumer shares
// one Store; storage failures are logged and swallowed.
package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/metrics"
)

// Backend persists the encoded favorites array under domain.FavoritesKey.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	// Update runs fn atomically against the stored bytes and writes its result.
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// Opener lazily produces the backend on first access.
type Opener func(ctx context.Context) (Backend, error)

// Event is published after every successful write, or when another
// writer reports a change.
type Event struct {
	Op     string
	ID     int
	Count  int
	Remote bool // reported by another writer
}

// Membership is the state of one id right after a write.
type Membership struct {
	Favorite bool
	Count    int
}

type Store struct {
	open     Opener
	once     sync.Once
	backend  Backend
	degraded bool

	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// New wraps an opener. log and m may be nil.
func New(open Opener, log logger.Logger, m *metrics.Metrics) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		open:    open,
		log:     log,
		metrics: m,
		now:     time.Now,
		subs:    make(map[int]chan Event),
	}
}

// FromBackend wraps an already opened backend.
func FromBackend(b Backend, log logger.Logger, m *metrics.Metrics) *Store {
	return New(func(context.Context) (Backend, error) { return b, nil }, log, m)
}

func (s *Store) init(ctx context.Context) Backend {
	s.once.Do(func() {
		b, err := s.open(ctx)
		if err != nil || b == nil {
			s.degraded = true
			s.metrics.FavoritesError()
			s.log.Warn("Favorites storage unavailable, running without persistence", logger.Error(err))
			return
		}
		s.backend = b
	})
	return s.backend
}

// Degraded reports whether the backend could not be opened.
func (s *Store) Degraded(ctx context.Context) bool {
	s.init(ctx)
	return s.degraded
}

// List returns every favorite in insertion order; empty on failure.
func (s *Store) List(ctx context.Context) []domain.FavoriteRecord {
	b := s.init(ctx)
	if b == nil {
		return []domain.FavoriteRecord{}
	}
	data, err := b.Load(ctx)
	if err != nil {
		s.fail("load", err)
		return []domain.FavoriteRecord{}
	}
	favs, err := domain.DecodeFavorites(data)
	if err != nil {
		s.fail("decode", err)
		return []domain.FavoriteRecord{}
	}
	return favs
}

// Raw returns the stored array as-is for export.
func (s *Store) Raw(ctx context.Context) []byte {
	data, err := domain.EncodeFavorites(s.List(ctx))
	if err != nil {
		return []byte("[]")
	}
	return data
}

func (s *Store) Has(ctx context.Context, id int) bool {
	return slices.ContainsFunc(s.List(ctx), func(f domain.FavoriteRecord) bool { return f.ID == id })
}

func (s *Store) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

// Add inserts id unless present. An existing record keeps its AddedAt.
func (s *Store) Add(ctx context.Context, id int, name string) Membership {
	count, ok := s.mutate(ctx, "add", id, func(favs []domain.FavoriteRecord) ([]domain.FavoriteRecord, bool) {
		if containsID(favs, id) {
			return favs, false
		}
		return append(favs, domain.FavoriteRecord{ID: id, Name: name, AddedAt: s.now()}), true
	})
	if !ok {
		return s.membership(ctx, id)
	}
	return Membership{Favorite: true, Count: count}
}

// Remove deletes id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int) Membership {
	count, ok := s.mutate(ctx, "remove", id, func(favs []domain.FavoriteRecord) ([]domain.FavoriteRecord, bool) {
		if !containsID(favs, id) {
			return favs, false
		}
		return slices.DeleteFunc(favs, func(f domain.FavoriteRecord) bool { return f.ID == id }), true
	})
	if !ok {
		return s.membership(ctx, id)
	}
	return Membership{Favorite: false, Count: count}
}

// Toggle flips membership in one atomic backend update and returns the
// resulting membership. On storage failure it reports the prior state.
func (s *Store) Toggle(ctx context.Context, id int, name string) bool {
	return s.Flip(ctx, id, name).Favorite
}

// Flip is Toggle reporting the favorites count of the same update.
func (s *Store) Flip(ctx context.Context, id int, name string) Membership {
	var member bool
	count, ok := s.mutate(ctx, "toggle", id, func(favs []domain.FavoriteRecord) ([]domain.FavoriteRecord, bool) {
		if containsID(favs, id) {
			member = false
			return slices.DeleteFunc(favs, func(f domain.FavoriteRecord) bool { return f.ID == id }), true
		}
		member = true
		return append(favs, domain.FavoriteRecord{ID: id, Name: name, AddedAt: s.now()}), true
	})
	if !ok {
		return s.membership(ctx, id)
	}
	return Membership{Favorite: member, Count: count}
}

func (s *Store) membership(ctx context.Context, id int) Membership {
	return Membership{Favorite: s.Has(ctx, id), Count: s.Count(ctx)}
}

// Import adds every record not already present, keeping existing ones.
func (s *Store) Import(ctx context.Context, records []domain.FavoriteRecord) int {
	added := 0
	_, ok := s.mutate(ctx, "import", 0, func(favs []domain.FavoriteRecord) ([]domain.FavoriteRecord, bool) {
		added = 0
		for _, r := range records {
			if r.ID < 1 || containsID(favs, r.ID) {
				continue
			}
			if r.AddedAt.IsZero() {
				r.AddedAt = s.now()
			}
			favs = append(favs, r)
			added++
		}
		return favs, added > 0
	})
	if !ok {
		return 0
	}
	return added
}

// mutate applies fn inside one backend update and returns the resulting
// count. ok is false when the write failed or the store is degraded.
func (s *Store) mutate(ctx context.Context, op string, id int, fn func([]domain.FavoriteRecord) ([]domain.FavoriteRecord, bool)) (count int, ok bool) {
	b := s.init(ctx)
	if b == nil {
		return 0, false
	}

	changed := false
	err := b.Update(ctx, func(current []byte) ([]byte, error) {
		favs, err := domain.DecodeFavorites(current)
		if err != nil {
			return nil, fmt.Errorf("decode favorites: %w", err)
		}
		next, dirty := fn(favs)
		changed, count = dirty, len(next)
		if !dirty {
			return current, nil
		}
		return domain.EncodeFavorites(next)
	})
	if err != nil {
		s.fail(op, err)
		return 0, false
	}

	s.metrics.FavoritesOp(op)
	if changed {
		s.metrics.SetFavoritesCount(count)
		s.Notify(Event{Op: op, ID: id, Count: count})
	}
	return count, true
}

func (s *Store) fail(op string, err error) {
	s.metrics.FavoritesError()
	s.log.Warn("Favorites storage error", logger.String("op", op), logger.Error(err))
}

func containsID(favs []domain.FavoriteRecord, id int) bool {
	return slices.ContainsFunc(favs, func(f domain.FavoriteRecord) bool { return f.ID == id })
}
