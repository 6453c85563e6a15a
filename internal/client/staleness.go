package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridpage/gridpage/internal/logger"
)

// DefaultRevalidateTimeout bounds the revalidation request so a hung
// server cannot block the reload path indefinitely.
const DefaultRevalidateTimeout = 5 * time.Second

// StalenessWatcher detects that the content a client rendered no
// longer matches the server's, and drives exactly one reload.
//
// On every focus event it fetches the server's current hash, compares
// it against the last-known one, and persists the new value. A
// mismatch marks the client stale. Staleness is terminal: the flag
// never clears, even if a later poll returns the original hash, since
// the client may have missed intermediate content.
type StalenessWatcher struct {
	baseURL string
	store   *HashStore
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger

	stale    bool
	reloaded bool
	onReload func()
}

// NewStalenessWatcher watches baseURL for content changes.
// renderedHash is the hash the client rendered with; when non-empty it
// seeds the comparison baseline, otherwise the first observed hash is
// persisted without a staleness check. onReload fires at most once,
// after a successful revalidation of a stale client.
func NewStalenessWatcher(baseURL, renderedHash string, store *HashStore, log logger.Logger, onReload func()) *StalenessWatcher {
	if renderedHash != "" {
		// Best effort; a failed seed degrades to first-observation mode.
		_ = store.Save(renderedHash)
	}
	return &StalenessWatcher{
		baseURL:  baseURL,
		store:    store,
		client:   &http.Client{Timeout: 10 * time.Second},
		timeout:  DefaultRevalidateTimeout,
		logger:   log,
		onReload: onReload,
	}
}

// Stale reports whether a content mismatch has been observed.
func (w *StalenessWatcher) Stale() bool {
	return w.stale
}

// OnFocus runs one staleness check. Safe to call repeatedly; a client
// that already reloaded does nothing. A stale client whose
// revalidation failed stays stale and retries on the next focus.
func (w *StalenessWatcher) OnFocus(ctx context.Context) error {
	if w.reloaded {
		return nil
	}

	current, err := w.fetchHash(ctx)
	if err != nil {
		return fmt.Errorf("fetch hash: %w", err)
	}
	if current == "" {
		return nil
	}

	prev, known, err := w.store.Load()
	if err != nil {
		return fmt.Errorf("load persisted hash: %w", err)
	}
	if err := w.store.Save(current); err != nil {
		return fmt.Errorf("persist hash: %w", err)
	}

	if known && current != prev {
		w.stale = true
	}
	if !w.stale {
		return nil
	}

	w.logger.Info("stale content detected, requesting revalidation",
		logger.String("hash", current))

	if err := w.revalidate(ctx); err != nil {
		return fmt.Errorf("revalidate: %w", err)
	}

	w.reloaded = true
	if w.onReload != nil {
		w.onReload()
	}
	return nil
}

func (w *StalenessWatcher) fetchHash(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/api/hash", nil)
	if err != nil {
		return "", err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Hash, nil
}

// revalidate asks the server for a fresh content reload before this
// client re-renders, bounded so a slow reload cannot stall the client.
func (w *StalenessWatcher) revalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/api/revalidate", nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
