// Package cache memoizes ranked results per event with a fixed expiry and
// explicit delete-on-write invalidation.
//
// The cache is purely a performance optimization: callers must produce
// identical output with it disabled. Invalidation is direct key removal, not
// versioning, so a mutation only has to delete the event's key before it
// returns.
package cache

import (
	"context"
	"sync"
	"time"

	"juryd/internal/domain/model"
)

// DefaultTTL bounds how long a ranked result list may be served without a
// recompute, even in the absence of writes.
const DefaultTTL = 5 * time.Minute

// ResultsCache stores ranked result lists keyed by event id.
type ResultsCache interface {
	// Get returns the cached results for an event, reporting a miss when the
	// key is absent or past its expiry.
	Get(ctx context.Context, eventID string) ([]model.AggregateResult, bool)

	// Set stores results for an event with the configured expiry.
	Set(ctx context.Context, eventID string, results []model.AggregateResult)

	// Delete removes an event's entry. Safe when the key is absent.
	Delete(ctx context.Context, eventID string)
}

// MemCache is an in-memory ResultsCache with an injectable clock.
type MemCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	results   []model.AggregateResult
	expiresAt time.Time
}

// NewMemCache creates an in-memory results cache with configuration options.
func NewMemCache(opts ...Option) *MemCache {
	c := &MemCache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached results for an event.
func (c *MemCache) Get(_ context.Context, eventID string) ([]model.AggregateResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[eventID]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.results, true
}

// Set stores results for an event, stamping the expiry from the clock.
func (c *MemCache) Set(_ context.Context, eventID string, results []model.AggregateResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[eventID] = entry{
		results:   results,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Delete removes an event's entry.
func (c *MemCache) Delete(_ context.Context, eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, eventID)
}

// Len returns the number of cached entries, expired ones included.
func (c *MemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
