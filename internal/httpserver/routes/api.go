package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMinute,
			IdleTTL:           10 * time.Minute,
			TrustProxy:        d.TrustProxy,
		}))

		api.Get("/pokemon", handlers.ListPokemon(d))
		api.Get("/pokemon/{id}", handlers.GetPokemon(d))
		api.Get("/types", handlers.ListTypes(d))

		api.Get("/favorites", handlers.ExportFavorites(d))
		api.Get("/favorites/events", handlers.FavoriteEvents(d))
		api.Post("/favorites/{id}/toggle", handlers.ToggleFavorite(d))
		api.Put("/favorites/{id}", handlers.AddFavorite(d))
		api.Delete("/favorites/{id}", handlers.RemoveFavorite(d))

		api.Get("/state", handlers.GetState(d))
		api.Post("/state", handlers.NextState(d))
	})
}
