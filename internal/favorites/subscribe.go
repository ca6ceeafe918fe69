package favorites

// Subscribe returns a channel receiving every change event and a func
// that unsubscribes and closes it. Slow subscribers miss events rather
// than blocking writers.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var closed bool
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if closed {
			return
		}
		closed = true
		delete(s.subs, id)
		close(ch)
	}
}

// Notify fans ev out to every subscriber. Backends call it for changes
// made by other writers.
func (s *Store) Notify(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
