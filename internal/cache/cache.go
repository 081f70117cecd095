package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache layers an in-process LRU over Redis. A nil Redis client leaves the
// LRU as the only tier.
type Cache struct {
	l1Cache *LRUCache[string]
	l2Cache *redis.Client
	l2TTL   time.Duration
}

func NewMultiTierCache(l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *Cache {
	return &Cache{
		l1Cache: NewLRUCache[string](l1Capacity),
		l2Cache: redisClient,
		l2TTL:   l2TTL,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if val, found := c.l1Cache.Get(key); found {
		return val, true
	}

	if c.l2Cache == nil {
		return "", false
	}

	val, err := c.l2Cache.Get(ctx, key).Result()
	if err == nil {
		c.l1Cache.SetWithTTL(key, val, c.l2TTL)
		return val, true
	}

	return "", false
}

func (c *Cache) Set(ctx context.Context, key string, value string) error {
	c.l1Cache.SetWithTTL(key, value, c.l2TTL)
	if c.l2Cache == nil {
		return nil
	}
	return c.l2Cache.Set(ctx, key, value, c.l2TTL).Err()
}

// Delete drops every key from both tiers.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.l1Cache.Delete(key)
	}
	if c.l2Cache == nil || len(keys) == 0 {
		return nil
	}
	return c.l2Cache.Del(ctx, keys...).Err()
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.Get(ctx, key)
	if !found {
		return false, nil
	}

	err := json.Unmarshal([]byte(val), dest)
	if err != nil {
		// a corrupt entry is dropped rather than served
		_ = c.Delete(ctx, key)
		return false, err
	}

	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(data))
}
