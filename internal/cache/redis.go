// Package cache keeps resolved short codes in Redis so redirects skip the primary storage.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the code is not cached.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "link:"

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(ctx context.Context, addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get returns the original URL cached for code.
func (r *RedisCache) Get(ctx context.Context, code string) (string, error) {
	url, err := r.client.Get(ctx, keyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", err
	}
	return url, nil
}

// Set caches url for code until ttl elapses. Non-positive ttl is ignored.
func (r *RedisCache) Set(ctx context.Context, code, url string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, keyPrefix+code, url, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, keyPrefix+code).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
