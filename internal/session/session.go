// Package session keeps transient per-navigation records, such as where the
// list was scrolled before a detail view was opened.
package session

import (
	"encoding/json"
	"sync"
)

// ListScrollKey is the fixed key of the list restore point.
const ListScrollKey = "pokemon-list-scroll"

// RestorePoint captures the list position. ScrollY is the first visible
// row offset; FocusID the focused entry.
type RestorePoint struct {
	ScrollY int `json:"scrollY"`
	FocusID int `json:"focusId"`
	Page    int `json:"page"`
}

// Store holds encoded records for the lifetime of the process.
type Store struct {
	mu      sync.Mutex
	records map[string][]byte
}

func New() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Save overwrites the record under key.
func (s *Store) Save(key string, p RestorePoint) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = data
	return nil
}

// Take returns the record under key and deletes it. A record that does not
// decode is dropped and reported as absent.
func (s *Store) Take(key string) (RestorePoint, bool) {
	s.mu.Lock()
	data, ok := s.records[key]
	delete(s.records, key)
	s.mu.Unlock()

	var p RestorePoint
	if !ok || json.Unmarshal(data, &p) != nil {
		return RestorePoint{}, false
	}
	return p, true
}
