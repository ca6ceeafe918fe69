package querycache

import "sync"

// Ticket identifies one request issued for a slot.
type Ticket struct {
	Slot string
	Seq  uint64
}

// Latest tracks the newest request per slot so responses that arrive
// after a newer request was issued can be dropped.
type Latest struct {
	mu   sync.Mutex
	seq  uint64
	last map[string]uint64
}

func NewLatest() *Latest {
	return &Latest{last: make(map[string]uint64)}
}

// Begin issues a ticket that supersedes every earlier ticket of slot.
func (l *Latest) Begin(slot string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.last[slot] = l.seq
	return Ticket{Slot: slot, Seq: l.seq}
}

// Current reports whether t is still the newest ticket of its slot.
func (l *Latest) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last[t.Slot] == t.Seq
}
