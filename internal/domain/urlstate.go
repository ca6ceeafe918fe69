package domain

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sort is the ordering applied to a derived list.
type Sort string

const (
	SortID   Sort = "id"
	SortName Sort = "name"
)

// Query parameter names of the navigable address.
const (
	ParamPage      = "page"
	ParamSearch    = "search"
	ParamType      = "type"
	ParamSort      = "sort"
	ParamFavorites = "favorites"
)

// MinSearchLength is the shortest search term that selects the search source.
const MinSearchLength = 2

// URLState is the browsing state carried by the query string.
//
// It is always fully derivable from the query string (ParseURLState) and
// serializable back to it (Values / Encode). Default-valued fields are
// omitted from the serialized form.
type URLState struct {
	Page      int    `json:"page"`
	Search    string `json:"search"`
	Type      string `json:"type"`
	Sort      Sort   `json:"sort"`
	Favorites bool   `json:"favorites"`
}

// DefaultURLState returns the state of an empty query string.
func DefaultURLState() URLState {
	return URLState{Page: 1, Sort: SortID}
}

// ParseURLState reads a URLState from query values.
// Absent or invalid values fall back to their defaults.
func ParseURLState(v url.Values) URLState {
	s := DefaultURLState()

	if p, ok := leadingInt(v.Get(ParamPage)); ok && p >= 1 {
		s.Page = p
	}
	s.Search = v.Get(ParamSearch)
	s.Type = v.Get(ParamType)
	if Sort(v.Get(ParamSort)) == SortName {
		s.Sort = SortName
	}
	s.Favorites = v.Get(ParamFavorites) == "true"

	return s
}

// leadingInt reads the decimal digits at the start of raw, so "2abc" is 2
// and "abc" is not a number.
func leadingInt(raw string) (int, bool) {
	raw = strings.TrimLeft(raw, " \t")
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(raw[:end])
	return n, err == nil
}

// ParseQuery parses a raw query string ("page=2&sort=name", with or
// without a leading "?").
func ParseQuery(raw string) URLState {
	if len(raw) > 0 && raw[0] == '?' {
		raw = raw[1:]
	}
	// url.ParseQuery keeps every pair it could parse, so a malformed
	// fragment only drops that pair.
	v, _ := url.ParseQuery(raw)
	return ParseURLState(v)
}

// Normalize maps out-of-range fields to their defaults.
func (s URLState) Normalize() URLState {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Sort != SortName {
		s.Sort = SortID
	}
	return s
}

// Values serializes the state, omitting default-valued fields.
func (s URLState) Values() url.Values {
	s = s.Normalize()
	v := url.Values{}
	if s.Page != 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.Type != "" {
		v.Set(ParamType, s.Type)
	}
	if s.Sort != SortID {
		v.Set(ParamSort, string(s.Sort))
	}
	if s.Favorites {
		v.Set(ParamFavorites, "true")
	}
	return v
}

// Encode returns the serialized query string without a leading "?".
func (s URLState) Encode() string {
	return s.Values().Encode()
}

// SearchActive reports whether the search term is long enough to select
// the search source.
func (s URLState) SearchActive() bool {
	return utf8.RuneCountInString(s.Search) >= MinSearchLength
}

// FiltersActive reports whether any of search, type or favorites is set.
// When true, pagination is applied client-side.
func (s URLState) FiltersActive() bool {
	return s.Search != "" || s.Type != "" || s.Favorites
}

// FavoritesOnly reports whether the favorites list replaces the remote source.
func (s URLState) FavoritesOnly() bool {
	return s.Favorites && s.Search == "" && s.Type == ""
}
