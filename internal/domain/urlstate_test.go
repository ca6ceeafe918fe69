package domain

import (
	"net/url"
	"testing"
)

func TestParseURLStateDefaults(t *testing.T) {
	got := ParseURLState(url.Values{})
	want := URLState{Page: 1, Sort: SortID}
	if got != want {
		t.Errorf("ParseURLState(empty) = %+v, want %+v", got, want)
	}
}

func TestParseURLStateLenient(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  URLState
	}{
		{
			name:  "all fields",
			query: "page=3&search=pika&type=fire&sort=name&favorites=true",
			want:  URLState{Page: 3, Search: "pika", Type: "fire", Sort: SortName, Favorites: true},
		},
		{
			name:  "non numeric page",
			query: "page=abc",
			want:  URLState{Page: 1, Sort: SortID},
		},
		{
			name:  "page with trailing garbage",
			query: "page=2abc",
			want:  URLState{Page: 2, Sort: SortID},
		},
		{
			name:  "page overflow",
			query: "page=99999999999999999999",
			want:  URLState{Page: 1, Sort: SortID},
		},
		{
			name:  "zero page",
			query: "page=0",
			want:  URLState{Page: 1, Sort: SortID},
		},
		{
			name:  "unknown sort",
			query: "sort=weight",
			want:  URLState{Page: 1, Sort: SortID},
		},
		{
			name:  "favorites not literal true",
			query: "favorites=1",
			want:  URLState{Page: 1, Sort: SortID},
		},
		{
			name:  "leading question mark",
			query: "?page=2",
			want:  URLState{Page: 2, Sort: SortID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.query); got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestURLStateEncodeOmitsDefaults(t *testing.T) {
	tests := []struct {
		name  string
		state URLState
		want  string
	}{
		{name: "defaults", state: DefaultURLState(), want: ""},
		{name: "zero value", state: URLState{}, want: ""},
		{name: "page only", state: URLState{Page: 2, Sort: SortID}, want: "page=2"},
		{name: "sort name", state: URLState{Page: 1, Sort: SortName}, want: "sort=name"},
		{name: "favorites", state: URLState{Page: 1, Favorites: true}, want: "favorites=true"},
		{
			name:  "everything",
			state: URLState{Page: 4, Search: "char", Type: "fire", Sort: SortName, Favorites: true},
			want:  "favorites=true&page=4&search=char&sort=name&type=fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURLStateRoundTrip(t *testing.T) {
	states := []URLState{
		{},
		DefaultURLState(),
		{Page: 7},
		{Page: 1, Search: "mr mime & co", Sort: SortName},
		{Page: 2, Type: "water", Favorites: true},
		{Page: 3, Search: "p", Type: "ghost", Sort: SortName, Favorites: true},
		{Page: -5, Sort: "bogus"},
	}

	for _, s := range states {
		if got, want := ParseQuery(s.Encode()), s.Normalize(); got != want {
			t.Errorf("round trip of %+v = %+v, want %+v", s, got, want)
		}
	}
}

func TestURLStatePredicates(t *testing.T) {
	tests := []struct {
		state         URLState
		searchActive  bool
		filters       bool
		favoritesOnly bool
		kind          SourceKind
	}{
		{state: URLState{Page: 1}, kind: SourceList},
		{state: URLState{Search: "p"}, filters: true, kind: SourceList},
		{state: URLState{Search: "é"}, filters: true, kind: SourceList},
		{state: URLState{Search: "pi"}, searchActive: true, filters: true, kind: SourceSearch},
		{state: URLState{Search: "pi", Type: "fire"}, searchActive: true, filters: true, kind: SourceSearch},
		{state: URLState{Type: "fire"}, filters: true, kind: SourceType},
		{state: URLState{Favorites: true}, filters: true, favoritesOnly: true, kind: SourceFavorites},
		{state: URLState{Favorites: true, Type: "fire"}, filters: true, kind: SourceType},
	}

	for _, tt := range tests {
		if got := tt.state.SearchActive(); got != tt.searchActive {
			t.Errorf("%+v SearchActive() = %v", tt.state, got)
		}
		if got := tt.state.FiltersActive(); got != tt.filters {
			t.Errorf("%+v FiltersActive() = %v", tt.state, got)
		}
		if got := tt.state.FavoritesOnly(); got != tt.favoritesOnly {
			t.Errorf("%+v FavoritesOnly() = %v", tt.state, got)
		}
		if got := ActiveSourceKind(tt.state); got != tt.kind {
			t.Errorf("%+v ActiveSourceKind() = %v, want %v", tt.state, got, tt.kind)
		}
	}
}
