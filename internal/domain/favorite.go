package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FavoritesKey is the fixed key the durable favorites record lives under.
const FavoritesKey = "pokemon-favorites"

// addedAtLayout matches the ISO-8601 form browsers produce (millisecond
// precision, UTC, trailing Z).
const addedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// FavoriteRecord is one entry of the persisted favorites list.
// The list is keyed by ID; insertion order is kept but carries no meaning.
type FavoriteRecord struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

type favoriteRecordJSON struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	AddedAt string `json:"addedAt"`
}

// MarshalJSON writes AddedAt as an ISO-8601 UTC string.
func (f FavoriteRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(favoriteRecordJSON{
		ID:      f.ID,
		Name:    f.Name,
		AddedAt: f.AddedAt.UTC().Format(addedAtLayout),
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp.
func (f *FavoriteRecord) UnmarshalJSON(data []byte) error {
	var raw favoriteRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.ID = raw.ID
	f.Name = raw.Name
	f.AddedAt = time.Time{}
	if raw.AddedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, raw.AddedAt)
		if err != nil {
			return fmt.Errorf("invalid addedAt %q: %w", raw.AddedAt, err)
		}
		f.AddedAt = t
	}
	return nil
}

// Ref maps the record to an entry reference with a canonical URL.
func (f FavoriteRecord) Ref() EntryRef {
	return EntryRef{Name: f.Name, URL: CanonicalURL(f.ID)}
}

// FavoriteIDs returns the id set of a favorites list.
func FavoriteIDs(favs []FavoriteRecord) map[int]struct{} {
	ids := make(map[int]struct{}, len(favs))
	for _, f := range favs {
		ids[f.ID] = struct{}{}
	}
	return ids
}

// DecodeFavorites parses the durable JSON array. Empty input is an empty list.
func DecodeFavorites(data []byte) ([]FavoriteRecord, error) {
	if len(data) == 0 {
		return []FavoriteRecord{}, nil
	}
	var favs []FavoriteRecord
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	if favs == nil {
		favs = []FavoriteRecord{}
	}
	return favs, nil
}

// EncodeFavorites serializes the list to the durable JSON array form.
func EncodeFavorites(favs []FavoriteRecord) ([]byte, error) {
	if favs == nil {
		favs = []FavoriteRecord{}
	}
	data, err := json.Marshal(favs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	return data, nil
}
