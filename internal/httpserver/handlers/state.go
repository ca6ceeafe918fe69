package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/urlstate"
)

type stateResponse struct {
	State domain.URLState `json:"state"`
	Query string          `json:"query"`
}

type stateRequest struct {
	Query  string           `json:"query"`
	Update urlstate.Partial `json:"update"`
}

// GetState returns the canonical form of the request's URL state.
func GetState(deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := domain.ParseURLState(r.URL.Query())
		writeJSON(w, http.StatusOK, stateResponse{State: s, Query: s.Encode()})
	}
}

// NextState applies a partial update to a query with the same rules as the
// interactive browser and returns the resulting query.
func NextState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<14)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
			return
		}

		s := urlstate.Apply(domain.ParseQuery(req.Query), req.Update)
		writeJSON(w, http.StatusOK, stateResponse{State: s, Query: s.Encode()})
	}
}
