package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if JURYD_CONFIG is set
//  3. env (prefix JURYD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("JURYD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: JURYD_ADDR, JURYD_SHARD_COUNT, ...
	// Map env keys like JURYD_SHARD_COUNT -> shard_count (flat keys).
	envProvider := env.Provider("JURYD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "juryd_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ShardCount < 1:
		return fmt.Errorf("%w: shard_count must be >= 1", ErrInvalidConfig)
	case c.ResultsCacheTTLMS < 1:
		return fmt.Errorf("%w: results_cache_ttl_ms must be >= 1", ErrInvalidConfig)
	case c.AuditQueueSize < 1:
		return fmt.Errorf("%w: audit_queue_size must be >= 1", ErrInvalidConfig)
	case c.AuditWorkerCount < 1:
		return fmt.Errorf("%w: audit_worker_count must be >= 1", ErrInvalidConfig)
	case c.DefaultWeight < 0:
		return fmt.Errorf("%w: default_weight must be non-negative", ErrInvalidConfig)
	}
	return nil
}
