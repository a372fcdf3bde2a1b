// Package cache holds the optional read-through stores for raw SGS
// response bodies.
package cache

import (
	"fmt"
	"time"

	drepo "BCBSeries/internal/domain/repository"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Backend string
	TTL     time.Duration
	Size    int
	Redis   RedisConfig
}

var (
	_ drepo.BytesCache = (*TTLCache)(nil)
	_ drepo.BytesCache = (*RedisCache)(nil)
)

// New builds the configured backend.
func New(cfg Config) (drepo.BytesCache, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewTTLCache(cfg.Size)
	case BackendRedis:
		return NewRedisCache(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
