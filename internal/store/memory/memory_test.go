package memory

import (
	"context"
	"errors"
	"testing"
)

func TestFavoritesUpdate(t *testing.T) {
	b := New().Favorites()
	ctx := context.Background()

	if err := b.Update(ctx, func(cur []byte) ([]byte, error) {
		if len(cur) != 0 {
			t.Errorf("initial value = %q, want empty", cur)
		}
		return []byte(`[{"id":1,"name":"bulbasaur"}]`), nil
	}); err != nil {
		t.Fatal(err)
	}

	got, _ := b.Load(ctx)
	if string(got) != `[{"id":1,"name":"bulbasaur"}]` {
		t.Errorf("Load() = %s", got)
	}

	boom := errors.New("boom")
	if err := b.Update(ctx, func([]byte) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Update() error = %v", err)
	}
	if after, _ := b.Load(ctx); string(after) != string(got) {
		t.Error("failed update must leave the value untouched")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	s.Set("k", []byte("abc"))
	v, _ := s.Get("k")
	v[0] = 'x'
	if again, _ := s.Get("k"); string(again) != "abc" {
		t.Errorf("Get() leaked internal buffer: %s", again)
	}
}
