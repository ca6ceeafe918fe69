package urlstate

import "github.com/MrSnakeDoc/pokedex/internal/domain"

// Partial is a set of field updates. Nil fields are left unchanged.
type Partial struct {
	Page      *int         `json:"page,omitempty"`
	Search    *string      `json:"search,omitempty"`
	Type      *string      `json:"type,omitempty"`
	Sort      *domain.Sort `json:"sort,omitempty"`
	Favorites *bool        `json:"favorites,omitempty"`
}

func Page(n int) Partial            { return Partial{Page: &n} }
func Search(s string) Partial       { return Partial{Search: &s} }
func Type(t string) Partial         { return Partial{Type: &t} }
func SortBy(s domain.Sort) Partial  { return Partial{Sort: &s} }
func FavoritesOnly(on bool) Partial { return Partial{Favorites: &on} }

// resetsPage reports whether the update changes a filter without also
// choosing a page.
func (p Partial) resetsPage() bool {
	filter := p.Search != nil || p.Type != nil || p.Favorites != nil
	return filter && (p.Page == nil || *p.Page == 0)
}

// Apply returns s with p written over it. Changing search, type or
// favorites returns to page 1 unless p also sets a page.
func Apply(s domain.URLState, p Partial) domain.URLState {
	if p.Page != nil {
		s.Page = *p.Page
	}
	if p.Search != nil {
		s.Search = *p.Search
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Sort != nil {
		s.Sort = *p.Sort
	}
	if p.Favorites != nil {
		s.Favorites = *p.Favorites
	}
	if p.resetsPage() {
		s.Page = 1
	}
	return s.Normalize()
}
