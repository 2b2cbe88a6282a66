// Package redis holds the redis-backed catalog cache. The core engine
// never touches this; only the catalog service reads and invalidates
// it, so cache staleness can never leak into cost computation.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/wargrove/armybook-backend/internal/logger"
)

type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
	Close() error
}

type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCatalogCache connects using REDIS_ADDR. A missing address is not
// an error for the caller to handle specially — callers treat a nil
// cache as "caching disabled".
func NewCatalogCache(log *logger.Logger) (CatalogCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 15 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("CATALOG_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &catalogCache{
		log: log.With("client", "CatalogCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *catalogCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A stale or malformed payload behaves like a miss.
		c.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *catalogCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *catalogCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *catalogCache) Close() error {
	return c.rdb.Close()
}
