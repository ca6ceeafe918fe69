package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, instance string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, instance), mr
}

func TestFavoritesLoadMissing(t *testing.T) {
	s, _ := newTestStore(t, "a")
	data, err := s.Favorites().Load(context.Background())
	if err != nil || data != nil {
		t.Errorf("Load() = %q, %v, want nil, nil", data, err)
	}
}

func TestFavoritesUpdate(t *testing.T) {
	s, mr := newTestStore(t, "a")
	fav := s.Favorites()
	ctx := context.Background()

	if err := fav.Update(ctx, func(cur []byte) ([]byte, error) {
		return []byte(`[{"id":25,"name":"pikachu"}]`), nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := mr.Get(KeyFavorites)
	if err != nil || got != `[{"id":25,"name":"pikachu"}]` {
		t.Errorf("stored = %q, %v", got, err)
	}

	// nil result leaves the key untouched
	if err := fav.Update(ctx, func([]byte) ([]byte, error) { return nil, nil }); err != nil {
		t.Fatal(err)
	}
	if again, _ := mr.Get(KeyFavorites); again != got {
		t.Errorf("stored = %q after no-op update", again)
	}
}

func TestFavoritesConcurrentUpdates(t *testing.T) {
	s, _ := newTestStore(t, "a")
	fav := s.Favorites()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fav.Update(ctx, func(cur []byte) ([]byte, error) {
				return append(cur, 'x'), nil
			}); err != nil {
				t.Errorf("Update() error = %v", err)
			}
		}()
	}
	wg.Wait()

	data, _ := fav.Load(ctx)
	if len(data) != 5 {
		t.Errorf("len = %d, want 5", len(data))
	}
}

func TestResponseCache(t *testing.T) {
	s, mr := newTestStore(t, "a")
	ctx := context.Background()

	if _, ok, err := s.GetCached(ctx, "types"); ok || err != nil {
		t.Fatalf("GetCached() on empty = %v, %v", ok, err)
	}

	if err := s.SetCached(ctx, "types", []byte(`{"results":[]}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCached(ctx, "list:0:20", []byte(`{}`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(CacheKey("types")); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	data, ok, err := s.GetCached(ctx, "types")
	if err != nil || !ok || string(data) != `{"results":[]}` {
		t.Errorf("GetCached() = %s, %v, %v", data, ok, err)
	}

	n, err := s.CachedResponses(ctx)
	if err != nil || n != 2 {
		t.Errorf("CachedResponses() = %d, %v", n, err)
	}

	_ = mr.Set(KeyFavorites, "[]")
	if err := s.FlushCache(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.CachedResponses(ctx); n != 0 {
		t.Errorf("after flush = %d keys", n)
	}
	if !mr.Exists(KeyFavorites) {
		t.Error("FlushCache() must not touch favorites")
	}
}

func TestListenSkipsOwnChanges(t *testing.T) {
	a, mr := newTestStore(t, "a")
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	b := NewStore(client, "b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Change, 4)
	done := make(chan error, 1)
	go func() { done <- a.Listen(ctx, func(c Change) { got <- c }) }()

	// wait for the subscription to register
	deadline := time.Now().Add(time.Second)
	for len(mr.PubSubChannels("")) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := a.Publish(ctx, "toggle", 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Publish(ctx, "toggle", 25, 2); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.Instance != "b" || c.ID != 25 || c.Count != 2 {
			t.Errorf("relayed change = %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("no change relayed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Listen() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("own change relayed: %+v", <-got)
	}
}
