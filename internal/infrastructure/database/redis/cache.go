// Package redis provides the catalog snapshot cache backed by Redis.
// The cache is strictly an accelerator: every caller must degrade to its
// underlying source when the cache is unavailable.
package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/CodingBot000/miracle3day-sub008/internal/config"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	apperrors "github.com/CodingBot000/miracle3day-sub008/pkg/errors"
)

var (
	// ErrCacheMiss is returned by Get when the key does not exist.
	ErrCacheMiss = apperrors.New(apperrors.ErrCodeNotFound, "cache miss")
)

// Cache is the caching contract used by the application layer.
type Cache interface {
	// Get unmarshals the cached value at key into dest.
	// Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value at key with the given TTL.  A zero ttl falls back
	// to the configured default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.  Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// GetOrSet returns the cached value, or runs loader once (deduplicated
	// across concurrent callers) and caches its result.
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
		loader func(ctx context.Context) (interface{}, error)) error

	// Ping verifies connectivity, used by the readiness probe.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}

type redisCache struct {
	rdb        *redis.Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

// NewCache connects to Redis per cfg and returns a Cache.  Connectivity is
// verified with a ping so that misconfiguration surfaces at startup, not on
// the first request.
func NewCache(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to connect to redis")
	}

	logger.Info("redis cache connected", logging.String("addr", cfg.Addr))

	return &redisCache{
		rdb:        rdb,
		logger:     logger,
		prefix:     cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

func (c *redisCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by up to 10% to avoid synchronized
// stampedes when many keys are written together.
func (c *redisCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if ttl < 10*time.Nanosecond {
		return ttl
	}
	jitter := time.Duration(rand.Int63n(int64(ttl) / 10))
	return ttl + jitter
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "cache get failed")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "cache value unmarshal failed")
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "cache value marshal failed")
	}
	if err := c.rdb.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "cache set failed")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.fullKey(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeCacheError, "cache delete failed")
	}
	return nil
}

func (c *redisCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) error {

	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if !apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
		c.logger.Warn("cache read failed, falling through to loader", logging.Err(err))
	}

	// singleflight collapses concurrent loads of the same key so the
	// backing store sees one query per expiry, not one per caller.
	data, err, _ := c.group.Do(c.fullKey(key), func() (interface{}, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "loader value marshal failed")
		}
		if err := c.rdb.Set(ctx, c.fullKey(key), raw, c.jitterTTL(ttl)).Err(); err != nil {
			c.logger.Warn("failed to populate cache", logging.Err(err))
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data.([]byte), dest)
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}
