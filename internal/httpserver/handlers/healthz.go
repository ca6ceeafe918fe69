package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status           string    `json:"status"`
	UptimeSeconds    float64   `json:"uptime_seconds"`
	Catalog          string    `json:"catalog"`
	CacheEntries     int       `json:"cache_entries"`
	FavoritesStorage string    `json:"favorites_storage"`
	Build            buildInfo `json:"build"`
}

// Healthz is the liveness probe. It always answers 200; a favorites store
// running without its backend turns the status to "degraded".
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:           "ok",
			UptimeSeconds:    time.Since(start).Seconds(),
			Catalog:          d.CatalogURL,
			FavoritesStorage: "durable",
			Build:            build,
		}
		if d.Cache != nil {
			resp.CacheEntries = d.Cache.Len()
		}
		if d.Browse.Favorites().Degraded(r.Context()) {
			resp.Status = "degraded"
			resp.FavoritesStorage = "degraded"
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, resp)
	}
}
