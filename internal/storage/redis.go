package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisConfig contains connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Namespace prepended to every key, e.g. "atelier:"
}

// RedisStorage implements Storage on Redis. Sharing one Redis between
// several client processes gives them a common persisted cart.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage connects to Redis and verifies the connection with PING.
func NewRedisStorage(ctx context.Context, cfg RedisConfig) (*RedisStorage, error) {
	if cfg.Addr == "" {
		return nil, newStorageError(codeInvalid, "redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, wrapBackend(err, "failed to connect to redis at %s", cfg.Addr)
	}

	return NewRedisStorageFromClient(client, cfg.Prefix), nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(key string) string {
	return s.prefix + key
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound(key)
	}
	if err != nil {
		return nil, wrapBackend(err, "failed to get %s from redis", key)
	}
	return data, nil
}

func (s *RedisStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return wrapBackend(err, "failed to set %s in redis", key)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return wrapBackend(err, "failed to delete %s from redis", key)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
