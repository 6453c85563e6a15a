// Package swr implements a keyed stale-while-revalidate cache: reads
// return the last-known value immediately while a refresh runs in the
// background. It replaces implicit fetch-hook behavior with an explicit
// cache holding last-known values, in-flight request deduplication and
// a subscriber notification list.
package swr

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gridpage/gridpage/internal/logger"
)

// Fetcher retrieves the current value for a resource key.
type Fetcher func(ctx context.Context, key string) (any, error)

type entry struct {
	value     any
	hasValue  bool
	fetchedAt time.Time
	subs      []chan any
}

// Cache is a keyed request cache where each key maps to the latest
// known response.
type Cache struct {
	fetch    Fetcher
	interval time.Duration
	logger   logger.Logger

	mu      sync.RWMutex
	entries map[string]*entry

	group  singleflight.Group
	stopCh chan struct{}
	stop   sync.Once
}

// New creates a cache backed by fetch. interval > 0 enables periodic
// background revalidation of every known key once Start is called.
func New(fetch Fetcher, interval time.Duration, log logger.Logger) *Cache {
	return &Cache{
		fetch:    fetch,
		interval: interval,
		logger:   log,
		entries:  make(map[string]*entry),
		stopCh:   make(chan struct{}),
	}
}

// Seed stores an initial value for key so the first Get has data
// before any fetch completes.
func (c *Cache) Seed(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.value = value
	e.hasValue = true
}

// Get returns the latest known value for key.
//
// A cached (possibly seeded) value is returned immediately and a
// refresh is kicked off in the background. With no cached value the
// call blocks on the fetch; concurrent first reads of the same key
// share one request.
func (c *Cache) Get(ctx context.Context, key string) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	if ok && e.hasValue {
		value := e.value
		c.mu.RUnlock()
		go c.refresh(context.WithoutCancel(ctx), key)
		return value, nil
	}
	c.mu.RUnlock()

	value, err, _ := c.group.Do(key, func() (any, error) {
		v, err := c.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Revalidate forces a background refresh of key, e.g. on a focus
// trigger. It never blocks the caller.
func (c *Cache) Revalidate(ctx context.Context, key string) {
	go c.refresh(context.WithoutCancel(ctx), key)
}

// Subscribe returns a channel receiving every new value stored for
// key. Slow subscribers miss intermediate values instead of blocking
// the cache.
func (c *Cache) Subscribe(key string) <-chan any {
	ch := make(chan any, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.subs = append(e.subs, ch)
	return ch
}

// Start launches periodic revalidation of all known keys. No-op when
// the cache was built without an interval.
func (c *Cache) Start(ctx context.Context) {
	if c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, key := range c.keys() {
					c.refresh(ctx, key)
				}
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts periodic revalidation.
func (c *Cache) Stop() {
	c.stop.Do(func() { close(c.stopCh) })
}

func (c *Cache) keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// refresh fetches key and stores the result. A failed refresh keeps
// the last-known value.
func (c *Cache) refresh(ctx context.Context, key string) {
	_, err, _ := c.group.Do(key, func() (any, error) {
		v, err := c.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		c.logger.Debug("background revalidation failed, keeping cached value",
			logger.String("key", key),
			logger.Error(err))
	}
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryLocked(key)
	e.value = value
	e.hasValue = true
	e.fetchedAt = time.Now()

	for _, ch := range e.subs {
		// Drop the undelivered older value so subscribers always
		// observe the most recent one.
		select {
		case ch <- value:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- value:
			default:
			}
		}
	}
}

// entryLocked returns the entry for key, creating it if needed.
// Caller must hold c.mu.
func (c *Cache) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}
