package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openMemory(t)
	v, err := s.Get(context.Background(), "nope")
	if err != nil || v != nil {
		t.Errorf("Get() = %q, %v, want nil, nil", v, err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	for _, want := range []string{"[1]", "[1,2]"} {
		if err := s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte(want), nil }); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil || string(got) != want {
			t.Errorf("Get() = %q, %v, want %q", got, err, want)
		}
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()
	_ = s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("keep"), nil })

	boom := errors.New("boom")
	if err := s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want boom", err)
	}

	got, _ := s.Get(ctx, "k")
	if string(got) != "keep" {
		t.Errorf("Get() = %q after rollback", got)
	}

	// the connection must be usable again after the rollback
	if err := s.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("next"), nil }); err != nil {
		t.Errorf("Update() after rollback error = %v", err)
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()
	fav := s.Favorites()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = fav.Update(ctx, func(cur []byte) ([]byte, error) {
				return append(cur, 'x'), nil
			})
		}()
	}
	wg.Wait()

	got, _ := fav.Load(ctx)
	if len(got) != 20 {
		t.Errorf("len = %d, want 20 (lost update)", len(got))
	}
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dex.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if err := s.Update(context.Background(), "k", func([]byte) ([]byte, error) { return []byte("v"), nil }); err != nil {
		t.Fatal(err)
	}
}
