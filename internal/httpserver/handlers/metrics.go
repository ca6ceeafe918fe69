package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
)

func Metrics(d deps.Deps) http.HandlerFunc {
	h := d.Metrics.Handler()
	return func(w http.ResponseWriter, r *http.Request) {
		d.Metrics.SetCacheEntries(d.Cache.Len())
		h.ServeHTTP(w, r)
	}
}
