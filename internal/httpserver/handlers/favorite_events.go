package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
)

const eventsKeepAlive = 15 * time.Second

type favoriteEvent struct {
	Op     string `json:"op"`
	ID     int    `json:"id"`
	Count  int    `json:"count"`
	Remote bool   `json:"remote"`
}

// FavoriteEvents streams favorites changes as server-sent events, both
// local writes and those relayed from other instances. A stream ends with
// the request timeout; EventSource clients reconnect on their own.
func FavoriteEvents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)

		events, unsubscribe := d.Browse.Favorites().Subscribe()
		defer unsubscribe()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-store")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		_, _ = fmt.Fprint(w, "retry: 2000\n\n")
		if err := rc.Flush(); err != nil {
			d.Logger.Warn("Event stream unsupported", logger.Error(err))
			return
		}

		keepAlive := time.NewTicker(eventsKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				data, _ := json.Marshal(favoriteEvent{Op: ev.Op, ID: ev.ID, Count: ev.Count, Remote: ev.Remote})
				_, _ = fmt.Fprintf(w, "event: favorites\ndata: %s\n\n", data)
			case <-keepAlive.C:
				_, _ = fmt.Fprint(w, ": keepalive\n\n")
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
