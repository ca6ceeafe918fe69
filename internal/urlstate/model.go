// Package urlstate keeps the browsing state in a query string and commits
// updates to a Navigator.
package urlstate

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
)

// SearchDebounce is the quiet period before a typed search is committed.
const SearchDebounce = 500 * time.Millisecond

// Mode selects how a write reaches the navigator.
type Mode int

const (
	// Immediate pushes a new history entry.
	Immediate Mode = iota
	// Deferred replaces the current entry.
	Deferred
)

// Model owns the current query string and the search debounce timer.
type Model struct {
	mu       sync.Mutex
	query    string
	nav      Navigator
	debounce time.Duration

	timer   *time.Timer
	pending *string
	gen     uint64
	closed  bool

	changes chan domain.URLState
}

type Option func(*Model)

// WithDebounce overrides SearchDebounce.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) { m.debounce = d }
}

// New starts from the canonical form of initial.
func New(nav Navigator, initial string, opts ...Option) *Model {
	m := &Model{
		query:    domain.ParseQuery(initial).Encode(),
		nav:      nav,
		debounce: SearchDebounce,
		changes:  make(chan domain.URLState, 1),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Read derives the state from the current query.
func (m *Model) Read() domain.URLState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.ParseQuery(m.query)
}

// Query returns the current canonical query string.
func (m *Model) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Changes delivers committed states. Sends never block: an undelivered
// state is replaced by the newer one, so a slow consumer always ends on
// the latest commit.
func (m *Model) Changes() <-chan domain.URLState {
	return m.changes
}

// Write commits p and returns the new query.
func (m *Model) Write(p Partial, mode Mode) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commit(p, mode)
}

func (m *Model) commit(p Partial, mode Mode) string {
	next := Apply(domain.ParseQuery(m.query), p)
	m.query = next.Encode()

	if m.nav != nil {
		if mode == Deferred {
			m.nav.Replace(m.query)
		} else {
			m.nav.Push(m.query)
		}
	}

	m.publish(next)
	return m.query
}

// publish keeps only the latest state in the channel. Callers hold mu,
// so no other sender can refill it in between.
func (m *Model) publish(s domain.URLState) {
	select {
	case <-m.changes:
	default:
	}
	select {
	case m.changes <- s:
	default:
	}
}

// Sync adopts a query produced by the navigator itself (back/forward)
// without committing it again. A pending search is dropped.
func (m *Model) Sync(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPending()
	m.query = domain.ParseQuery(query).Encode()
	m.publish(domain.ParseQuery(m.query))
}

// WriteSearch schedules a search write after the debounce window. A newer
// call within the window replaces the pending value; only the last one
// is committed.
func (m *Model) WriteSearch(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	m.cancelPending()
	m.pending = &s
	m.gen++
	gen := m.gen
	m.timer = time.AfterFunc(m.debounce, func() { m.fire(gen) })
}

// PendingSearch returns the value waiting for the debounce window.
func (m *Model) PendingSearch() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return "", false
	}
	return *m.pending, true
}

func (m *Model) fire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// a newer WriteSearch, Flush or Close won the race against this timer
	if gen != m.gen || m.pending == nil {
		return
	}
	s := *m.pending
	m.pending = nil
	m.timer = nil
	m.commit(Search(s), Immediate)
}

// Flush commits a pending search now. It reports whether one was pending.
func (m *Model) Flush() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return false
	}
	s := *m.pending
	m.cancelPending()
	m.commit(Search(s), Immediate)
	return true
}

// Close cancels any pending search and ignores later WriteSearch calls.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPending()
	m.closed = true
}

func (m *Model) cancelPending() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.pending = nil
	m.gen++
}

// SetPage, SetType, SetSort and SetFavorites push a new entry.
func (m *Model) SetPage(n int) string         { return m.Write(Page(n), Immediate) }
func (m *Model) SetType(t string) string      { return m.Write(Type(t), Immediate) }
func (m *Model) SetSort(s domain.Sort) string { return m.Write(SortBy(s), Immediate) }
func (m *Model) SetFavorites(on bool) string  { return m.Write(FavoritesOnly(on), Immediate) }
