package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Mode    string `json:"mode,omitempty"`
	Entries *int   `json:"entries,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Target  string `json:"target,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		cached := d.Cache.Len()
		favs := d.Browse.Favorites()
		favCount := favs.Count(r.Context())

		favStatus := componentStatus{OK: true, Mode: "durable", Count: &favCount}
		if favs.Degraded(r.Context()) {
			favStatus = componentStatus{OK: false, Mode: "in-memory", Impact: "favorites-not-persisted"}
		}
		if d.SeedFile != "" {
			favStatus.Target = d.SeedFile
		}

		components := map[string]componentStatus{
			"cache":     {OK: true, Entries: &cached},
			"favorites": favStatus,
			"catalog":   {OK: true, Target: d.CatalogURL},
			"redis":     checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if favs, ok := components["favorites"]; ok && !favs.OK {
		return "degraded"
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded"
	}
	return "optimal"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Redis == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Redis.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "shared-favorites-unavailable",
			Error:  "timeout",
		}
	}

	n, err := d.Redis.CachedResponses(ctx)
	if err != nil {
		return componentStatus{OK: true, Mode: "optimal"}
	}
	return componentStatus{OK: true, Mode: "optimal", Entries: &n}
}
