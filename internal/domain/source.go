package domain

import "strings"

// SourceKind tells which remote call produced a ResultSource.
type SourceKind string

const (
	SourceList      SourceKind = "list"
	SourceSearch    SourceKind = "search"
	SourceType      SourceKind = "type"
	SourceFavorites SourceKind = "favorites"
)

// ResultSource is the common shape every listing is normalized to.
type ResultSource struct {
	Kind    SourceKind `json:"kind"`
	Count   int        `json:"count"`
	Results []EntryRef `json:"results"`
}

// TypeMember is one element of a type-membership response.
type TypeMember struct {
	Pokemon EntryRef `json:"pokemon"`
	Slot    int      `json:"slot"`
}

// FromList wraps a raw paginated list response.
func FromList(count int, results []EntryRef) *ResultSource {
	return &ResultSource{Kind: SourceList, Count: count, Results: results}
}

// FromSearch filters the full catalog by case-insensitive substring on the
// trimmed query. Count is the number of matches.
func FromSearch(catalog []EntryRef, query string) *ResultSource {
	needle := strings.ToLower(strings.TrimSpace(query))

	matches := make([]EntryRef, 0)
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matches = append(matches, e)
		}
	}
	return &ResultSource{Kind: SourceSearch, Count: len(matches), Results: matches}
}

// FromType flattens nested type-membership references.
func FromType(members []TypeMember) *ResultSource {
	results := make([]EntryRef, 0, len(members))
	for _, m := range members {
		results = append(results, m.Pokemon)
	}
	return &ResultSource{Kind: SourceType, Count: len(results), Results: results}
}

// ActiveSourceKind returns the source a state selects.
// Precedence: search (2+ chars) > type > favorites-only > list.
func ActiveSourceKind(s URLState) SourceKind {
	switch {
	case s.SearchActive():
		return SourceSearch
	case s.Type != "":
		return SourceType
	case s.FavoritesOnly():
		return SourceFavorites
	default:
		return SourceList
	}
}
