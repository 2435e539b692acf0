// internal/geocoding/cache.go
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores provider hits keyed by normalized address.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachingProvider serves repeated lookups from a Cache. Misses and negative
// answers go to the wrapped provider; only hits are stored. Cache failures
// are logged and bypassed.
type CachingProvider struct {
	next   Provider
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingProvider wraps next with cache.
func NewCachingProvider(next Provider, cache Cache, ttl time.Duration, logger *slog.Logger) *CachingProvider {
	return &CachingProvider{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Lookup implements Provider.
func (p *CachingProvider) Lookup(ctx context.Context, address string) (*Location, error) {
	key := cacheKey(address)

	raw, ok, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		cacheHits.WithLabelValues("error").Inc()
		p.logger.Warn("Geocode cache read failed", "key", key, "error", err)
	case ok:
		var loc Location
		if err := json.Unmarshal([]byte(raw), &loc); err == nil {
			cacheHits.WithLabelValues("hit").Inc()
			return &loc, nil
		}
		p.logger.Warn("Discarding malformed geocode cache entry", "key", key)
	default:
		cacheHits.WithLabelValues("miss").Inc()
	}

	loc, err := p.next.Lookup(ctx, address)
	if err != nil || loc == nil {
		return loc, err
	}

	if payload, err := json.Marshal(loc); err == nil {
		if err := p.cache.Set(ctx, key, string(payload), p.ttl); err != nil {
			p.logger.Warn("Geocode cache write failed", "key", key, "error", err)
		}
	}
	return loc, nil
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// RedisCache is a Cache backed by Redis string keys.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached value, ok=false when the key is absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value with the given expiry.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}
