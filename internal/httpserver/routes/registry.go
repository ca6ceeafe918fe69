package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pokedex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
)

type (
	// Mount adds a group's routes to r.
	Mount      func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type group struct {
	name  string
	mount Mount
	mws   []Middleware
}

var groups []group

// Register adds a named route group from an init func. Middlewares apply
// to every route of the group only. Names are unique.
func Register(name string, mount Mount, mws ...Middleware) {
	for _, g := range groups {
		if g.name == name {
			panic(fmt.Sprintf("routes: group %q registered twice", name))
		}
	}
	groups = append(groups, group{name: name, mount: mount, mws: mws})
}

// Groups lists registered group names in registration order.
func Groups() []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.name)
	}
	return names
}

// RegisterAll mounts every group on r. Called once from NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		target := r
		if len(g.mws) > 0 {
			target = r.With(g.mws...)
		}
		g.mount(target, d)
		d.Logger.Debug("Route group mounted", logger.String("group", g.name))
	}
}
