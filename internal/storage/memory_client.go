package storage

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// InMemoryRedisClient implements RedisClient on maps for tests. Absent
// keys and fields return redis.Nil exactly as the real client does.
type InMemoryRedisClient struct {
	mu     sync.Mutex
	values map[string]string
	hashes map[string]map[string]string
}

func NewInMemoryRedisClient() *InMemoryRedisClient {
	return &InMemoryRedisClient{
		values: make(map[string]string),
		hashes: make(map[string]map[string]string),
	}
}

func (c *InMemoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *InMemoryRedisClient) Set(ctx context.Context, key, value string) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *InMemoryRedisClient) RandomKey(ctx context.Context) (string, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.values {
		return k, nil
	}
	return "", redis.Nil
}

func (c *InMemoryRedisClient) HGet(ctx context.Context, key, field string) (string, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	if !ok {
		return "", redis.Nil
	}
	v, ok := h[field]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *InMemoryRedisClient) HSet(ctx context.Context, key, field, value string) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	if !ok {
		h = make(map[string]string)
		c.hashes[key] = h
	}
	h[field] = value
	return nil
}

func (c *InMemoryRedisClient) HDel(ctx context.Context, key string, fields ...string) error {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	if !ok {
		return nil
	}
	for _, f := range fields {
		delete(h, f)
	}
	return nil
}

func (c *InMemoryRedisClient) HIncrBy(ctx context.Context, key, field string, incr int64) (int64, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hashes[key]
	if !ok {
		h = make(map[string]string)
		c.hashes[key] = h
	}
	current := int64(0)
	if v, ok := h[field]; ok {
		parsed, err := parseInt(v)
		if err != nil {
			return 0, err
		}
		current = parsed
	}
	current += incr
	h[field] = formatInt(current)
	return current, nil
}

func (c *InMemoryRedisClient) Close() error { return nil }
