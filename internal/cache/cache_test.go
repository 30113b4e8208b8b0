// internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/bazarco/backend/internal/config"
)

func TestNewFallsBackToNoop(t *testing.T) {
	c := New(nil, time.Minute)
	assert.IsType(t, NoopCache{}, c)

	var out []string
	c.Set(context.Background(), KeyTags, []string{"a"})
	assert.False(t, c.Get(context.Background(), KeyTags, &out))
}

func TestDisabledRedisReturnsNilClient(t *testing.T) {
	assert.Nil(t, NewRedisClient(config.RedisConfig{Enabled: false}))
}

func TestUnreachableRedisReadsAsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	// none of these may panic or block
	c.Set(ctx, KeyCategories, []string{"books"})
	c.Delete(ctx, KeyCategories, KeyTags)

	var out []string
	assert.False(t, c.Get(ctx, KeyCategories, &out))
	assert.Empty(t, out)
}
