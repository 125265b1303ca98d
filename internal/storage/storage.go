package storage

import (
	"context"
	"errors"

	"github.com/dukerupert/atelier/internal"
)

// Storage persists client-side state snapshots as opaque blobs under string keys.
// Implementations can use the local filesystem, Redis, Postgres, R2 or memory.
type Storage interface {
	// Get returns the value stored at key.
	// Returns an error satisfying IsNotFound when the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value at key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a key.
	// Returns nil if the key doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(ctx context.Context, cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return asStorage(NewLocalStorage(cfg.LocalPath))
	case "memory":
		return NewMemoryStorage(), nil
	case "redis":
		return asStorage(NewRedisStorage(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}))
	case "postgres":
		return asStorage(NewPostgresStorage(ctx, cfg.DatabaseUrl))
	case "r2":
		return asStorage(NewR2Storage(ctx, R2Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
			Prefix:      cfg.R2Prefix,
		}))
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}

// asStorage keeps a typed nil pointer from leaking out as a non-nil interface.
func asStorage[T Storage](s T, err error) (Storage, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// IsNotFound reports whether err means the key has never been written.
func IsNotFound(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Code == codeNotFound
}
