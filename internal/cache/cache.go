// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
)

const (
	KeyCategories = "bazarco:facets:categories"
	KeyTags       = "bazarco:facets:tags"
)

// FacetCache holds the category and tag lists served next to every listing.
// Failures are logged and read as misses.
type FacetCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, keys ...string)
}

// NewRedisClient connects and pings. A nil client means caching is disabled.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", cfg.Addr()).Warn("Failed to connect to Redis, facet caching disabled")
		client.Close()
		return nil
	}

	logrus.WithField("addr", cfg.Addr()).Info("Redis connected")
	return client
}

// New picks the Redis cache when a client is available.
func New(client *redis.Client, ttl time.Duration) FacetCache {
	if client == nil {
		return NoopCache{}
	}
	return NewRedisCache(client, ttl)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache entry unreadable")
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).WithField("keys", fmt.Sprint(keys)).Warn("Cache invalidation failed")
	}
}

// NoopCache never holds anything.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) bool { return false }

func (NoopCache) Set(ctx context.Context, key string, value interface{}) {}

func (NoopCache) Delete(ctx context.Context, keys ...string) {}
