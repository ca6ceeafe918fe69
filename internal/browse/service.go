// Package browse turns a URL state into the list or detail view to render.
// It selects the active remote source, goes through the query cache and
// runs the derived list pipeline.
package browse

import (
	"context"
	"slices"
	"strconv"

	"github.com/MrSnakeDoc/pokedex/internal/catalog"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
)

// Catalog is the subset of the remote client the service needs.
type Catalog interface {
	ListPage(ctx context.Context, offset, limit int) (catalog.ListResponse, error)
	GetOne(ctx context.Context, idOrName string) (domain.Pokemon, error)
	ListTypes(ctx context.Context) (catalog.TypeList, error)
	ListByType(ctx context.Context, typ string) (catalog.TypeResponse, error)
	Search(ctx context.Context, query string) (catalog.ListResponse, error)
}

type Service struct {
	catalog   Catalog
	cache     *querycache.Cache
	favorites *favorites.Store
}

func New(c Catalog, cache *querycache.Cache, favs *favorites.Store) *Service {
	return &Service{catalog: c, cache: cache, favorites: favs}
}

// ListView is everything the list screen renders.
type ListView struct {
	State          domain.URLState   `json:"state"`
	Query          string            `json:"query"`
	Source         domain.SourceKind `json:"source"`
	Items          []domain.EntryRef `json:"items"`
	TotalCount     int               `json:"totalCount"`
	PageCount      int               `json:"pageCount"`
	HasPrev        bool              `json:"hasPrev"`
	HasNext        bool              `json:"hasNext"`
	FavoriteIDs    []int             `json:"favoriteIds"`
	FavoritesCount int               `json:"favoritesCount"`
}

// IsFavorite reports whether id is in the favorites snapshot of the view.
func (v ListView) IsFavorite(id int) bool {
	_, found := slices.BinarySearch(v.FavoriteIDs, id)
	return found
}

// List fetches the active source for state and derives the page. A
// transport error aborts the whole view.
func (s *Service) List(ctx context.Context, state domain.URLState) (ListView, error) {
	state = state.Normalize()
	kind := domain.ActiveSourceKind(state)

	src, err := s.source(ctx, kind, state)
	if err != nil {
		return ListView{}, err
	}

	favs := s.favorites.List(ctx)
	derived := domain.Derive(src, favs, state)
	pages := domain.PageCount(derived.TotalCount)

	ids := make([]int, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ID)
	}
	slices.Sort(ids)

	return ListView{
		State:          state,
		Query:          state.Encode(),
		Source:         kind,
		Items:          derived.Items,
		TotalCount:     derived.TotalCount,
		PageCount:      pages,
		HasPrev:        state.Page > 1,
		HasNext:        state.Page < pages,
		FavoriteIDs:    ids,
		FavoritesCount: len(favs),
	}, nil
}

func (s *Service) source(ctx context.Context, kind domain.SourceKind, state domain.URLState) (*domain.ResultSource, error) {
	switch kind {
	case domain.SourceSearch:
		resp, err := querycache.Do(ctx, s.cache, querycache.SearchKey(state.Search), func(ctx context.Context) (catalog.ListResponse, error) {
			return s.catalog.Search(ctx, state.Search)
		})
		if err != nil {
			return nil, err
		}
		return &domain.ResultSource{Kind: domain.SourceSearch, Count: resp.Count, Results: resp.Results}, nil

	case domain.SourceType:
		resp, err := querycache.Do(ctx, s.cache, querycache.TypeKey(state.Type), func(ctx context.Context) (catalog.TypeResponse, error) {
			return s.catalog.ListByType(ctx, state.Type)
		})
		if err != nil {
			return nil, err
		}
		return domain.FromType(resp.Pokemon), nil

	case domain.SourceFavorites:
		return nil, nil

	default:
		offset, limit := domain.UpstreamWindow(state)
		resp, err := querycache.Do(ctx, s.cache, querycache.ListKey(offset, limit), func(ctx context.Context) (catalog.ListResponse, error) {
			return s.catalog.ListPage(ctx, offset, limit)
		})
		if err != nil {
			return nil, err
		}
		return domain.FromList(resp.Count, resp.Results), nil
	}
}

// DetailView is the detail screen.
type DetailView struct {
	Pokemon  domain.Pokemon `json:"pokemon"`
	Favorite bool           `json:"favorite"`
}

// Detail resolves a route parameter. Anything but a positive integer is
// domain.ErrMalformedID and never reaches the catalog.
func (s *Service) Detail(ctx context.Context, rawID string) (DetailView, error) {
	id, err := domain.ParseEntryID(rawID)
	if err != nil {
		return DetailView{}, err
	}

	p, err := querycache.Do(ctx, s.cache, querycache.DetailKey(id), func(ctx context.Context) (domain.Pokemon, error) {
		return s.catalog.GetOne(ctx, strconv.Itoa(id))
	})
	if err != nil {
		return DetailView{}, err
	}
	return DetailView{Pokemon: p, Favorite: s.favorites.Has(ctx, id)}, nil
}

// Types returns type names for the filter control.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	list, err := querycache.Do(ctx, s.cache, querycache.TypesKey(), s.catalog.ListTypes)
	if err != nil {
		return nil, err
	}
	return list.Names(), nil
}

// ToggleFavorite flips membership and returns it. An empty name is taken
// from a cached detail when one is available.
func (s *Service) ToggleFavorite(ctx context.Context, id int, name string) bool {
	return s.FlipFavorite(ctx, id, name).Favorite
}

// FlipFavorite toggles id and reports the membership and count written.
func (s *Service) FlipFavorite(ctx context.Context, id int, name string) favorites.Membership {
	return s.favorites.Flip(ctx, id, s.nameFor(id, name))
}

// AddFavorite adds id unless it is already a favorite.
func (s *Service) AddFavorite(ctx context.Context, id int, name string) favorites.Membership {
	return s.favorites.Add(ctx, id, s.nameFor(id, name))
}

func (s *Service) RemoveFavorite(ctx context.Context, id int) favorites.Membership {
	return s.favorites.Remove(ctx, id)
}

// Favorites exposes the shared store.
func (s *Service) Favorites() *favorites.Store {
	return s.favorites
}

func (s *Service) nameFor(id int, name string) string {
	if name != "" {
		return name
	}
	if p, ok := querycache.Peek[domain.Pokemon](s.cache, querycache.DetailKey(id)); ok {
		return p.Name
	}
	return ""
}
