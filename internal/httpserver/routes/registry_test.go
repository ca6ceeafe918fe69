package routes

import (
	"net/http"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
)

func TestGroupsRegistered(t *testing.T) {
	got := Groups()
	for _, want := range []string{"api", "ops"} {
		if !slices.Contains(got, want) {
			t.Errorf("Groups() = %v, missing %q", got, want)
		}
	}
}

func TestRegisterAllMountsRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{Logger: logger.NewNop(), RateLimitBurst: 10, RateLimitPerMinute: 60})

	var mounted []string
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		mounted = append(mounted, method+" "+route)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"GET /healthz",
		"POST /reload",
		"GET /api/pokemon/{id}",
		"GET /api/favorites/events",
		"POST /api/favorites/{id}/toggle",
	} {
		if !slices.Contains(mounted, want) {
			t.Errorf("route %q not mounted; have %v", want, mounted)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a group name twice should panic")
		}
	}()
	Register("ops", func(chi.Router, deps.Deps) {})
}
