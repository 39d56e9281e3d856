// Package service provides the scoring engine behind the HTTP API.
package service

import (
	"time"

	"juryd/internal/adapters/audit"
	"juryd/internal/adapters/cache"
	"juryd/internal/adapters/directory"
	"juryd/internal/adapters/repository"
	"juryd/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDirectory sets the event/team/judge/criterion directory.
func WithDirectory(d directory.Directory) Option {
	return func(s *Service) {
		if d != nil {
			s.dir = d
		}
	}
}

// WithStore sets a custom score record store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithResultsCache sets a custom results cache.
func WithResultsCache(c cache.ResultsCache) Option {
	return func(s *Service) {
		if c != nil {
			s.results = c
		}
	}
}

// WithResultsCacheTTL sets the expiry for cached results.
func WithResultsCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithResultsCacheDisabled turns result memoization off. Reads must behave
// identically either way; tests use this to prove it.
func WithResultsCacheDisabled() Option {
	return func(s *Service) {
		s.cacheDisabled = true
	}
}

// WithAuditSink sets the destination for change notifications.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithAuditQueueSize bounds the audit entry buffer.
func WithAuditQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.auditQueueSize = size
		}
	}
}

// WithAuditWorkerCount sets the number of audit delivery workers.
func WithAuditWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.auditWorkerCount = count
		}
	}
}

// WithShardCount configures the store's shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithFallbackWeight sets the weight applied to orphaned criterion ids.
func WithFallbackWeight(w float64) Option {
	return func(s *Service) {
		if w >= 0 {
			s.fallbackWeight = w
		}
	}
}

// WithClock sets the time source for the service and its default components.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
