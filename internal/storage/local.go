package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage using the local filesystem. Each key is a
// JSON file under basePath. This is the default for a single-user CLI.
type LocalStorage struct {
	basePath string // Root directory for state files (e.g., "~/.atelier")
}

// NewLocalStorage creates a new local filesystem storage implementation.
//
// basePath is the directory where state files will be stored (created if it doesn't exist).
// A leading "~/" is expanded to the user's home directory.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if strings.HasPrefix(basePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		basePath = filepath.Join(home, basePath[2:])
	}

	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", ErrInvalidKey(key)
	}
	return filepath.Join(s.basePath, key+".json"), nil
}

// Put writes the value to a temp file and renames it over the old one so a
// crash never leaves a half-written snapshot behind.
func (s *LocalStorage) Put(ctx context.Context, key string, value []byte) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// Get reads a state file from the local filesystem.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return data, nil
}

// Delete removes a state file from the local filesystem.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Close() error { return nil }
