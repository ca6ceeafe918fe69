package domain

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the number of entries shown per page.
const PageSize = 20

// Derived is the exact, ordered page of entries to render.
type Derived struct {
	Items      []EntryRef `json:"items"`
	TotalCount int        `json:"totalCount"`
}

// Derive turns a result source, the favorites list and the URL state into
// the page to render.
//
//  1. favorites-only (no search, no type) uses the favorites list as the
//     working set; otherwise the source results (empty when source is nil).
//  2. favorites with a search or type keeps only favorited entries.
//  3. stable sort by id or by locale name comparison.
//  4. with any filter active the page is sliced here; otherwise the source
//     already is the upstream page and is returned unsliced.
//  5. TotalCount is the sorted working set length with filters active,
//     the upstream count otherwise.
func Derive(source *ResultSource, favorites []FavoriteRecord, state URLState) Derived {
	state = state.Normalize()

	var working []EntryRef
	if state.FavoritesOnly() {
		working = make([]EntryRef, 0, len(favorites))
		for _, f := range favorites {
			working = append(working, f.Ref())
		}
	} else {
		if source != nil {
			working = slices.Clone(source.Results)
		}
		if state.Favorites {
			ids := FavoriteIDs(favorites)
			working = slices.DeleteFunc(working, func(e EntryRef) bool {
				_, ok := ids[e.ID()]
				return !ok
			})
		}
	}

	SortEntries(working, state.Sort)

	if !state.FiltersActive() {
		total := 0
		if source != nil {
			total = source.Count
		}
		if working == nil {
			working = []EntryRef{}
		}
		return Derived{Items: working, TotalCount: total}
	}

	return Derived{
		Items:      Paginate(working, state.Page),
		TotalCount: len(working),
	}
}

// SortEntries sorts in place. Equal keys keep their relative order.
func SortEntries(entries []EntryRef, by Sort) {
	if by == SortName {
		c := collate.New(language.English)
		slices.SortStableFunc(entries, func(a, b EntryRef) int {
			return c.CompareString(a.Name, b.Name)
		})
		return
	}
	slices.SortStableFunc(entries, func(a, b EntryRef) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

// Paginate returns the page-th window of PageSize entries. A page past the
// end yields an empty slice.
func Paginate(entries []EntryRef, page int) []EntryRef {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(entries) {
		return []EntryRef{}
	}
	end := min(start+PageSize, len(entries))
	return entries[start:end]
}

// PageCount is ceil(total/PageSize), never less than 1.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// UpstreamWindow returns the offset/limit the unfiltered list must be
// queried with for state.
func UpstreamWindow(state URLState) (offset, limit int) {
	state = state.Normalize()
	return (state.Page - 1) * PageSize, PageSize
}
