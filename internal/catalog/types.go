package catalog

import "github.com/MrSnakeDoc/pokedex/internal/domain"

// ListResponse is a paginated /pokemon listing.
type ListResponse struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []domain.EntryRef `json:"results"`
}

// TypeList is the /type index.
type TypeList struct {
	Results []domain.EntryRef `json:"results"`
}

// Names returns type names in catalog order.
func (t TypeList) Names() []string {
	names := make([]string, 0, len(t.Results))
	for _, r := range t.Results {
		names = append(names, r.Name)
	}
	return names
}

// TypeResponse is a /type/<name> membership listing.
type TypeResponse struct {
	ID      int                 `json:"id"`
	Name    string              `json:"name"`
	Pokemon []domain.TypeMember `json:"pokemon"`
}
