package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/pokedex/internal/catalog"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
)

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
	Retry  bool   `json:"retry,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a browse failure to a response. Malformed ids render as
// not found; upstream failures as 502 with the upstream status and a
// retry hint.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var te *catalog.TransportError
	switch {
	case errors.Is(err, domain.ErrMalformedID):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	case errors.As(err, &te):
		log.Warn("Catalog request failed",
			logger.String("path", r.URL.Path),
			logger.Int("upstream_status", te.Status),
			logger.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream", Status: te.Status, Retry: true})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "timeout", Retry: true})
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the answer
		w.WriteHeader(499)
	default:
		log.Error("Request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal"})
	}
}
