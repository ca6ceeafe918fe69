// Package catalog is the HTTP client for the remote Pokémon catalog.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/pokedex/internal/config"
	"github.com/MrSnakeDoc/pokedex/internal/domain"
	"github.com/MrSnakeDoc/pokedex/internal/metrics"
)

// maxBody caps a single response. The full catalog listing is ~150 KiB.
const maxBody = 16 << 20

// Client talks to the catalog API. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

// New builds a client from cfg. m may be nil.
func New(cfg config.CatalogConfig, m *metrics.Metrics) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = domain.CatalogBaseURL
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		metrics: m,
	}
}

// ListPage fetches one window of the unfiltered listing.
func (c *Client) ListPage(ctx context.Context, offset, limit int) (ListResponse, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var out ListResponse
	err := c.get(ctx, "list", "/pokemon?"+q.Encode(), &out)
	return out, err
}

// GetOne fetches a detail entry by numeric id or name.
func (c *Client) GetOne(ctx context.Context, idOrName string) (domain.Pokemon, error) {
	var out domain.Pokemon
	err := c.get(ctx, "detail", "/pokemon/"+url.PathEscape(idOrName), &out)
	return out, err
}

// ListTypes fetches the type index.
func (c *Client) ListTypes(ctx context.Context) (TypeList, error) {
	var out TypeList
	err := c.get(ctx, "types", "/type", &out)
	return out, err
}

// ListByType fetches every entry of one type.
func (c *Client) ListByType(ctx context.Context, typ string) (TypeResponse, error) {
	var out TypeResponse
	err := c.get(ctx, "type", "/type/"+url.PathEscape(typ), &out)
	return out, err
}

// Search filters the whole catalog by name. Queries shorter than
// domain.MinSearchLength return an empty result without any request.
// Otherwise the total is read with limit=1, then everything is fetched.
func (c *Client) Search(ctx context.Context, query string) (ListResponse, error) {
	if len([]rune(query)) < domain.MinSearchLength {
		return ListResponse{Results: []domain.EntryRef{}}, nil
	}

	var head ListResponse
	if err := c.get(ctx, "search", "/pokemon?limit=1", &head); err != nil {
		return ListResponse{}, err
	}

	var all ListResponse
	if err := c.get(ctx, "search", "/pokemon?limit="+strconv.Itoa(head.Count), &all); err != nil {
		return ListResponse{}, err
	}

	src := domain.FromSearch(all.Results, query)
	return ListResponse{Count: src.Count, Results: src.Results}, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	endpoint := c.baseURL + path

	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("catalog: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveCatalog(op, 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{URL: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.metrics.ObserveCatalog(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &TransportError{Status: resp.StatusCode, URL: endpoint}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("catalog: decode %s: %w", endpoint, err)
	}
	return nil
}
