package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MrSnakeDoc/pokedex/internal/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.CatalogConfig{BaseURL: srv.URL}, nil), srv
}

func TestListPage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon" {
			t.Errorf("path = %s, want /pokemon", r.URL.Path)
		}
		if got := r.URL.Query().Get("offset"); got != "20" {
			t.Errorf("offset = %s, want 20", got)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %s, want 20", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count":1302,"next":"n","previous":null,"results":[{"name":"spearow","url":"https://pokeapi.co/api/v2/pokemon/21/"}]}`)
	})

	resp, err := c.ListPage(context.Background(), 20, 20)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if resp.Count != 1302 || len(resp.Results) != 1 || resp.Results[0].ID() != 21 {
		t.Errorf("ListPage() = %+v", resp)
	}
	if resp.Previous != nil || resp.Next == nil {
		t.Errorf("next/previous not decoded: %+v", resp)
	}
}

func TestGetOne(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/25" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":25,"name":"pikachu","height":4,"weight":60,
			"types":[{"slot":1,"type":{"name":"electric","url":"u"}}],
			"stats":[{"base_stat":35,"effort":0,"stat":{"name":"hp","url":"u"}}]}`)
	})

	p, err := c.GetOne(context.Background(), "25")
	if err != nil {
		t.Fatalf("GetOne() error = %v", err)
	}
	if p.Name != "pikachu" || p.HeightMeters() != 0.4 || p.TypeNames()[0] != "electric" {
		t.Errorf("GetOne() = %+v", p)
	}
}

func TestTypes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/type":
			fmt.Fprint(w, `{"results":[{"name":"normal","url":"u"},{"name":"fire","url":"u"}]}`)
		case "/type/fire":
			fmt.Fprint(w, `{"id":10,"name":"fire","pokemon":[{"pokemon":{"name":"charmander","url":"https://pokeapi.co/api/v2/pokemon/4/"},"slot":1}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	list, err := c.ListTypes(context.Background())
	if err != nil {
		t.Fatalf("ListTypes() error = %v", err)
	}
	if names := list.Names(); len(names) != 2 || names[1] != "fire" {
		t.Errorf("Names() = %v", names)
	}

	fire, err := c.ListByType(context.Background(), "fire")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}
	if len(fire.Pokemon) != 1 || fire.Pokemon[0].Pokemon.ID() != 4 {
		t.Errorf("ListByType() = %+v", fire)
	}
}

func TestSearch(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("limit") {
		case "1":
			fmt.Fprint(w, `{"count":3,"results":[{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"}]}`)
		case "3":
			fmt.Fprint(w, `{"count":3,"results":[
				{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
				{"name":"pikachu","url":"https://pokeapi.co/api/v2/pokemon/25/"},
				{"name":"pikipek","url":"https://pokeapi.co/api/v2/pokemon/731/"}]}`)
		default:
			t.Errorf("unexpected limit %q", r.URL.Query().Get("limit"))
		}
	})

	t.Run("short query makes no request", func(t *testing.T) {
		resp, err := c.Search(context.Background(), "p")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if resp.Count != 0 || resp.Results == nil || len(resp.Results) != 0 {
			t.Errorf("Search(p) = %+v", resp)
		}
		if calls.Load() != 0 {
			t.Errorf("requests = %d, want 0", calls.Load())
		}
	})

	t.Run("count then full fetch", func(t *testing.T) {
		resp, err := c.Search(context.Background(), " PIK ")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if resp.Count != 2 || resp.Results[0].Name != "pikachu" || resp.Results[1].Name != "pikipek" {
			t.Errorf("Search(PIK) = %+v", resp)
		}
		if calls.Load() != 2 {
			t.Errorf("requests = %d, want 2", calls.Load())
		}
	})
}

func TestTransportErrors(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.ListPage(context.Background(), 0, 20)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if te.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", te.Status)
	}
	if status, ok := StatusOf(err); !ok || status != 503 {
		t.Errorf("StatusOf() = %d, %v", status, ok)
	}

	srv.Close()
	_, err = c.ListTypes(context.Background())
	if !errors.As(err, &te) || te.Status != 0 || te.Err == nil {
		t.Errorf("network failure = %v, want TransportError with status 0", err)
	}
}

func TestCancellationIsNotTransportError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetOne(ctx, "1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if _, ok := StatusOf(err); ok {
		t.Error("cancellation must not be reported as a transport error")
	}
}
