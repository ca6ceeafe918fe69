// Package ui provides the Bubble Tea terminal browser.
package ui

import (
	"github.com/MrSnakeDoc/pokedex/internal/browse"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/favorites"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
)

// stateChanged is sent when the URL state model commits a query.
type stateChanged struct {
	State domain.URLState
}

// listLoaded carries the list view for the request identified by Ticket.
type listLoaded struct {
	Ticket querycache.Ticket
	View   browse.ListView
	Err    error
}

type detailLoaded struct {
	Ticket querycache.Ticket
	View   browse.DetailView
	Err    error
}

type typesLoaded struct {
	Types []string
	Err   error
}

// favoriteToggled reports the membership after a toggle.
type favoriteToggled struct {
	ID int
	On bool
}

// favoritesChanged is sent for every change published by the favorites store.
type favoritesChanged struct {
	Event favorites.Event
}
