package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces issuance entries in a shared Redis.
const DefaultRedisKeyPrefix = "license:issuance-token:"

// ConnectRedis creates a client from a redis:// URL or a host:port address.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisCache stores entries in Redis with server-side expiry. Each operation is a
// single atomic command, so concurrent replicas share one consistent view.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a RedisCache using DefaultRedisKeyPrefix.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: DefaultRedisKeyPrefix}
}

// SetNX stores value under key for ttl unless the key exists (SET NX PX).
func (r *RedisCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Get returns the value stored under key.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return raw, nil
}

// GetDel returns the value stored under key and deletes it (GETDEL).
func (r *RedisCache) GetDel(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.GetDel(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis getdel: %w", err)
	}
	return raw, nil
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
