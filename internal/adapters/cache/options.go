// Package cache memoizes ranked results per event.
package cache

import "time"

// Option applies a configuration option to the MemCache.
type Option func(*MemCache)

// WithTTL sets the expiry applied on Set.
func WithTTL(ttl time.Duration) Option {
	return func(c *MemCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets the time source, letting tests advance a fake clock past
// the expiry without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *MemCache) {
		if now != nil {
			c.now = now
		}
	}
}
