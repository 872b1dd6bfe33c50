package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of Redis commands the quiz stores need.
// Keeping it narrow allows swapping the real client for an in-memory one
// in tests.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	RandomKey(ctx context.Context) (string, error)
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field, value string) error
	HDel(ctx context.Context, key string, fields ...string) error
	HIncrBy(ctx context.Context, key, field string, incr int64) (int64, error)
	Close() error
}

// GoRedisClient wraps a go-redis client behind RedisClient.
type GoRedisClient struct {
	client *redis.Client
}

// NewGoRedisClient connects to the redis URL (redis://[:pass@]host:port),
// overriding the logical database. The questions corpus and the sessions
// live in separate databases of the same instance.
func NewGoRedisClient(url string, db int) (*GoRedisClient, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opt.DB = db
	return &GoRedisClient{client: redis.NewClient(opt)}, nil
}

func (c *GoRedisClient) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *GoRedisClient) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *GoRedisClient) RandomKey(ctx context.Context) (string, error) {
	return c.client.RandomKey(ctx).Result()
}

func (c *GoRedisClient) HGet(ctx context.Context, key, field string) (string, error) {
	return c.client.HGet(ctx, key, field).Result()
}

func (c *GoRedisClient) HSet(ctx context.Context, key, field, value string) error {
	return c.client.HSet(ctx, key, field, value).Err()
}

func (c *GoRedisClient) HDel(ctx context.Context, key string, fields ...string) error {
	return c.client.HDel(ctx, key, fields...).Err()
}

func (c *GoRedisClient) HIncrBy(ctx context.Context, key, field string, incr int64) (int64, error) {
	return c.client.HIncrBy(ctx, key, field, incr).Result()
}

func (c *GoRedisClient) Close() error {
	return c.client.Close()
}
