package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStorage implements Storage on a single client_state table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage runs the goose migrations over database/sql, then opens
// a pgx pool for regular traffic.
func NewPostgresStorage(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	if databaseURL == "" {
		return nil, newStorageError(codeInvalid, "database URL is required")
	}

	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, wrapBackend(err, "database connection failed")
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, wrapBackend(err, "database ping failed")
	}
	if err := RunMigrations(sqlDB); err != nil {
		return nil, wrapBackend(err, "migration failed")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, wrapBackend(err, "failed to create connection pool")
	}

	return &PostgresStorage{pool: pool}, nil
}

func (s *PostgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM client_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound(key)
	}
	if err != nil {
		return nil, wrapBackend(err, "failed to get %s", key)
	}
	return value, nil
}

func (s *PostgresStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	if err != nil {
		return wrapBackend(err, "failed to put %s", key)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1`, key); err != nil {
		return wrapBackend(err, "failed to delete %s", key)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}
