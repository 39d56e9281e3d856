// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"juryd/internal/adapters/directory"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ShardCount configures the number of shards in the score record store.
	ShardCount int `koanf:"shard_count"`

	// ResultsCacheEnabled toggles result memoization. Output is identical
	// either way; disabling only trades latency for memory.
	ResultsCacheEnabled bool `koanf:"results_cache_enabled"`

	// ResultsCacheTTLMS bounds how long cached results may be served.
	ResultsCacheTTLMS int `koanf:"results_cache_ttl_ms"`

	// AuditQueueSize bounds the in-memory audit entry buffer.
	AuditQueueSize int `koanf:"audit_queue_size"`

	// AuditWorkerCount sets the number of audit delivery workers.
	AuditWorkerCount int `koanf:"audit_worker_count"`

	// DefaultWeight is applied to scores whose criterion no longer exists.
	DefaultWeight float64 `koanf:"default_weight"`

	// Seed describes the events, teams, judges, and criteria loaded at boot.
	Seed directory.Seed `koanf:"seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		ShardCount:          8,
		ResultsCacheEnabled: true,
		ResultsCacheTTLMS:   300_000,
		AuditQueueSize:      10_000,
		AuditWorkerCount:    2,
		DefaultWeight:       1.0,
	}
}
