package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/mw"
)

func init() { Register("ops", registerOps) }

// Ops endpoints are reachable from the allowed CIDRs only.
func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	ops := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	ops.Get("/readyz", handlers.Readyz(d))
	ops.Get("/infra", handlers.Infra(d))
	ops.Get("/metrics", handlers.Metrics(d))
	ops.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
