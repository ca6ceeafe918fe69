package urlstate

import (
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
)

type recorder struct {
	mu       sync.Mutex
	pushes   []string
	replaces []string
}

func (r *recorder) Push(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, q)
}

func (r *recorder) Replace(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces = append(r.replaces, q)
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pushes...), append([]string(nil), r.replaces...)
}

func TestApply(t *testing.T) {
	base := domain.URLState{Page: 3, Search: "char", Type: "fire", Sort: domain.SortName}

	tests := []struct {
		name string
		p    Partial
		want domain.URLState
	}{
		{
			name: "page alone keeps other fields",
			p:    Page(5),
			want: domain.URLState{Page: 5, Search: "char", Type: "fire", Sort: domain.SortName},
		},
		{
			name: "type change resets page",
			p:    Type("water"),
			want: domain.URLState{Page: 1, Search: "char", Type: "water", Sort: domain.SortName},
		},
		{
			name: "favorites change resets page",
			p:    FavoritesOnly(true),
			want: domain.URLState{Page: 1, Search: "char", Type: "fire", Sort: domain.SortName, Favorites: true},
		},
		{
			name: "filter with explicit page keeps it",
			p:    Partial{Search: ptr("pika"), Page: ptr(2)},
			want: domain.URLState{Page: 2, Search: "pika", Type: "fire", Sort: domain.SortName},
		},
		{
			name: "sort does not reset page",
			p:    SortBy(domain.SortID),
			want: domain.URLState{Page: 3, Search: "char", Type: "fire", Sort: domain.SortID},
		},
		{
			name: "clearing search",
			p:    Search(""),
			want: domain.URLState{Page: 1, Type: "fire", Sort: domain.SortName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(base, tt.p); got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestWriteModes(t *testing.T) {
	nav := &recorder{}
	m := New(nav, "?page=2&sort=name")

	if q := m.Write(Type("fire"), Immediate); q != "sort=name&type=fire" {
		t.Errorf("Write() = %q", q)
	}
	if q := m.Write(Page(4), Deferred); q != "page=4&sort=name&type=fire" {
		t.Errorf("Write() = %q", q)
	}

	pushes, replaces := nav.snapshot()
	if len(pushes) != 1 || pushes[0] != "sort=name&type=fire" {
		t.Errorf("pushes = %v", pushes)
	}
	if len(replaces) != 1 || replaces[0] != "page=4&sort=name&type=fire" {
		t.Errorf("replaces = %v", replaces)
	}
}

func TestDefaultsAreOmitted(t *testing.T) {
	m := New(nil, "type=fire&favorites=true&page=3")
	m.SetType("")
	m.SetFavorites(false)
	m.SetSort(domain.SortID)

	if q := m.Query(); q != "" {
		t.Errorf("Query() = %q, want empty", q)
	}
	if s := m.Read(); s != domain.DefaultURLState() {
		t.Errorf("Read() = %+v", s)
	}
}

func TestWriteSearchDebounce(t *testing.T) {
	nav := &recorder{}
	m := New(nav, "page=3", WithDebounce(40*time.Millisecond))
	defer m.Close()

	for _, s := range []string{"pi", "pik", "pika"} {
		m.WriteSearch(s)
		time.Sleep(10 * time.Millisecond)
	}

	if got, ok := m.PendingSearch(); !ok || got != "pika" {
		t.Errorf("PendingSearch() = %q, %v", got, ok)
	}

	select {
	case s := <-m.Changes():
		if s.Search != "pika" || s.Page != 1 {
			t.Errorf("committed state = %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced search never committed")
	}

	pushes, _ := nav.snapshot()
	if len(pushes) != 1 || pushes[0] != "search=pika" {
		t.Errorf("pushes = %v, want exactly one commit", pushes)
	}
}

func TestFlushAndClose(t *testing.T) {
	nav := &recorder{}
	m := New(nav, "", WithDebounce(time.Hour))

	if m.Flush() {
		t.Error("Flush() with nothing pending should report false")
	}

	m.WriteSearch("eevee")
	if !m.Flush() {
		t.Fatal("Flush() should commit the pending search")
	}
	if m.Read().Search != "eevee" {
		t.Errorf("Read().Search = %q", m.Read().Search)
	}

	m.WriteSearch("mew")
	m.Close()
	m.WriteSearch("ditto")
	if _, ok := m.PendingSearch(); ok {
		t.Error("Close() should cancel and refuse pending searches")
	}
	pushes, _ := nav.snapshot()
	if len(pushes) != 1 {
		t.Errorf("pushes = %v", pushes)
	}
}

func TestChangesCoalesceToLatest(t *testing.T) {
	m := New(NewHistory(""), "")

	for page := 2; page <= 20; page++ {
		m.SetPage(page)
	}
	m.Sync("page=7&sort=name")
	m.SetType("fire")

	var last domain.URLState
	received := 0
	for done := false; !done; {
		select {
		case s := <-m.Changes():
			last = s
			received++
		default:
			done = true
		}
	}

	if received != 1 {
		t.Errorf("received %d states, want only the latest", received)
	}
	if last.Encode() != m.Query() || m.Query() != "sort=name&type=fire" {
		t.Errorf("last delivered = %q, model holds %q", last.Encode(), m.Query())
	}
}

func TestSyncDropsPendingSearch(t *testing.T) {
	nav := &recorder{}
	m := New(nav, "", WithDebounce(30*time.Millisecond))

	m.WriteSearch("bulba")
	m.Sync("page=2")
	time.Sleep(80 * time.Millisecond)

	if s := m.Read(); s.Page != 2 || s.Search != "" {
		t.Errorf("Read() = %+v", s)
	}
	if pushes, replaces := nav.snapshot(); len(pushes)+len(replaces) != 0 {
		t.Errorf("Sync() must not navigate: %v %v", pushes, replaces)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory("")
	h.Push("page=2")
	h.Push("page=3")

	if q, ok := h.Back(); !ok || q != "page=2" {
		t.Errorf("Back() = %q, %v", q, ok)
	}
	h.Replace("page=2&sort=name")
	if q, ok := h.Forward(); !ok || q != "page=3" {
		t.Errorf("Forward() = %q, %v", q, ok)
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward() at the newest entry should fail")
	}

	h.Back()
	h.Back()
	h.Push("type=fire")
	if h.Len() != 2 || h.Current() != "type=fire" {
		t.Errorf("Push() should drop forward entries: len=%d current=%q", h.Len(), h.Current())
	}
	if q, _ := h.Back(); q != "" {
		t.Errorf("Back() = %q, want initial entry", q)
	}
}
