package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// ListingCache caches flat search results. Invalidate bumps a generation
// counter that is part of every key, so stale pages simply stop being read
// and expire on their own.
type ListingCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewListingCache returns nil when addr is empty; a nil cache is a no-op.
func NewListingCache(addr, password, prefix string, ttl time.Duration) *ListingCache {
	if addr == "" {
		return nil
	}
	return NewListingCacheWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	}), prefix, ttl)
}

func NewListingCacheWithClient(client *redis.Client, prefix string, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *ListingCache) generationKey() string {
	return c.prefix + ":gen"
}

func (c *ListingCache) key(ctx context.Context, params map[string]string) (string, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return utils.QueryCacheKey(fmt.Sprintf("%s:%d", c.prefix, gen), params), nil
}

// Get decodes a cached value into dest and reports whether it was found.
func (c *ListingCache) Get(ctx context.Context, params map[string]string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	key, err := c.key(ctx, params)
	if err != nil {
		return false, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ListingCache) Set(ctx context.Context, params map[string]string, value any) error {
	if c == nil {
		return nil
	}
	key, err := c.key(ctx, params)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops every cached page at once.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Incr(ctx, c.generationKey()).Err()
}

// Ping checks the Redis connection. A nil cache is always healthy.
func (c *ListingCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *ListingCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
