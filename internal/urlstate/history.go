package urlstate

import "sync"

// Navigator receives committed query strings.
type Navigator interface {
	// Push adds a history entry.
	Push(query string)
	// Replace overwrites the current entry.
	Replace(query string)
}

// History is an in-memory address bar with back/forward stacks.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Push drops any forward entries and appends query.
func (h *History) Push(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], query)
	h.index++
}

func (h *History) Replace(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = query
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Back moves one entry back. ok is false at the oldest entry.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return h.entries[0], false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward. ok is false at the newest entry.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == len(h.entries)-1 {
		return h.entries[h.index], false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
