package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
)

type favoriteResponse struct {
	ID       int  `json:"id"`
	Favorite bool `json:"favorite"`
	Count    int  `json:"count"`
}

// ExportFavorites returns the durable favorites array as stored.
func ExportFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(d.Browse.Favorites().Raw(r.Context()))
	}
}

// ToggleFavorite flips {id}; ?name= names a new favorite.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return favoriteAction(d, func(r *http.Request, id int) favorites.Membership {
		return d.Browse.FlipFavorite(r.Context(), id, r.URL.Query().Get("name"))
	})
}

// AddFavorite is idempotent: an existing favorite keeps its addedAt.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return favoriteAction(d, func(r *http.Request, id int) favorites.Membership {
		return d.Browse.AddFavorite(r.Context(), id, r.URL.Query().Get("name"))
	})
}

func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return favoriteAction(d, func(r *http.Request, id int) favorites.Membership {
		return d.Browse.RemoveFavorite(r.Context(), id)
	})
}

// favoriteAction parses {id}, runs fn and answers with the membership
// that write produced.
func favoriteAction(d deps.Deps, fn func(r *http.Request, id int) favorites.Membership) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := domain.ParseEntryID(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d.Logger, err)
			return
		}

		m := fn(r, id)
		writeJSON(w, http.StatusOK, favoriteResponse{
			ID:       id,
			Favorite: m.Favorite,
			Count:    m.Count,
		})
	}
}
