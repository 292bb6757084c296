package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for RedisStore.
type RedisConfig struct {
	Host     string
	Port     int
	DB       int
	Password string
}

// RedisStore is a Store backed by Redis. Sets use Redis's native
// SADD/SMEMBERS rather than a key-scan-and-filter approach, since
// go-redis exposes real set primitives.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore dials a Redis server per cfg. Defaults: host
// "localhost", port 6379, db 0.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client}
}

func (r *RedisStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	return r.client.IncrBy(ctx, key, delta).Result()
}

func (r *RedisStore) Get(ctx context.Context, key string) (int64, bool, error) {
	v, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (r *RedisStore) SetAdd(ctx context.Context, key, member string) (bool, error) {
	added, err := r.client.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}

func (r *RedisStore) SetMembers(ctx context.Context, key string) ([]string, error) {
	return r.client.SMembers(ctx, key).Result()
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
