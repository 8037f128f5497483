package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "edureach:session"

// RedisOptions configures the connection used by RedisStorage.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStorage stores items as plain Redis strings without expiry; tokens are never
// expired client-side.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to Redis and verifies the connection with a PING.
func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", ErrStorageUnavailable, err)
	}

	return &RedisStorage{client: client}, nil
}

// NewRedisStorageWithClient wraps an existing client.
func NewRedisStorageWithClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func redisKey(namespace, key string) string {
	return redisKeyPrefix + ":" + namespace + ":" + key
}

func (r *RedisStorage) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, redisKey(namespace, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, namespace, key, value string) error {
	if err := r.client.Set(ctx, redisKey(namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStorage) RemoveItem(ctx context.Context, namespace, key string) error {
	if err := r.client.Del(ctx, redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
