// Package client is the hydration layer a dashboard front-end runs
// against the HTTP API: a stale-while-revalidate content cache seeded
// with empty defaults, plus a focus-driven stale-build watcher.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/swr"
	"github.com/gridpage/gridpage/internal/utils"
)

// Resource keys served by the dashboard API.
const (
	KeyServices  = "services"
	KeyBookmarks = "bookmarks"
	KeyWidgets   = "widgets"
	KeyValidate  = "validate"
)

// Dashboard hydrates page content over the HTTP API. Reads never
// block on the network once a value (or seed) exists; a background
// refresh keeps values current.
type Dashboard struct {
	baseURL string
	client  *http.Client
	cache   *swr.Cache
}

// NewDashboard builds a hydration client for the API at baseURL.
// refreshInterval > 0 enables periodic revalidation once Start is
// called.
func NewDashboard(baseURL string, refreshInterval time.Duration, log logger.Logger) *Dashboard {
	d := &Dashboard{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	d.cache = swr.New(d.fetchResource, refreshInterval, log)

	// Empty defaults so first paint never waits on the network.
	d.cache.Seed(KeyServices, []domain.ServiceGroup{})
	d.cache.Seed(KeyBookmarks, []domain.BookmarkGroup{})
	d.cache.Seed(KeyWidgets, []domain.Widget{})
	d.cache.Seed(KeyValidate, []domain.ValidationError{})

	return d
}

// Start launches periodic background revalidation.
func (d *Dashboard) Start(ctx context.Context) { d.cache.Start(ctx) }

// Stop halts periodic revalidation.
func (d *Dashboard) Stop() { d.cache.Stop() }

// OnFocus revalidates every content resource, mirroring the
// refresh-on-window-focus behavior of the page.
func (d *Dashboard) OnFocus(ctx context.Context) {
	for _, key := range []string{KeyServices, KeyBookmarks, KeyWidgets, KeyValidate} {
		d.cache.Revalidate(ctx, key)
	}
}

// Services returns the current service groups.
func (d *Dashboard) Services(ctx context.Context) ([]domain.ServiceGroup, error) {
	v, err := d.cache.Get(ctx, KeyServices)
	if err != nil {
		return nil, err
	}
	return v.([]domain.ServiceGroup), nil
}

// Bookmarks returns the current bookmark groups.
func (d *Dashboard) Bookmarks(ctx context.Context) ([]domain.BookmarkGroup, error) {
	v, err := d.cache.Get(ctx, KeyBookmarks)
	if err != nil {
		return nil, err
	}
	return v.([]domain.BookmarkGroup), nil
}

// Widgets returns the current widget list.
func (d *Dashboard) Widgets(ctx context.Context) ([]domain.Widget, error) {
	v, err := d.cache.Get(ctx, KeyWidgets)
	if err != nil {
		return nil, err
	}
	return v.([]domain.Widget), nil
}

// ValidationErrors returns the current configuration diagnostics.
func (d *Dashboard) ValidationErrors(ctx context.Context) ([]domain.ValidationError, error) {
	v, err := d.cache.Get(ctx, KeyValidate)
	if err != nil {
		return nil, err
	}
	return v.([]domain.ValidationError), nil
}

// SubscribeServices notifies on every refreshed service list.
func (d *Dashboard) SubscribeServices() <-chan any { return d.cache.Subscribe(KeyServices) }

// fetchResource is the swr.Fetcher for all content keys.
func (d *Dashboard) fetchResource(ctx context.Context, key string) (any, error) {
	body, err := d.get(ctx, "/api/"+key)
	if err != nil {
		return nil, err
	}

	switch key {
	case KeyServices:
		return decode[[]domain.ServiceGroup](body)
	case KeyBookmarks:
		return decode[[]domain.BookmarkGroup](body)
	case KeyWidgets:
		return decode[[]domain.Widget](body)
	case KeyValidate:
		return decode[[]domain.ValidationError](body)
	default:
		return nil, fmt.Errorf("unknown resource %q", key)
	}
}

func (d *Dashboard) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

func decode[T any](body []byte) (any, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}
