package storage

import (
	"fmt"
	"strings"
)

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError represents a storage-specific error with a code and message.
type StorageError struct {
	Code    string
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

func newStorageError(code, message string) *StorageError {
	return &StorageError{Code: code, Message: message}
}

// ============================================================================
// STORAGE DOMAIN ERRORS
// ============================================================================

var (
	// ErrR2AccountIDRequired is returned when R2 account ID is missing.
	ErrR2AccountIDRequired = newStorageError(codeInvalid, "R2 account ID is required")

	// ErrR2CredentialsRequired is returned when R2 credentials are missing.
	ErrR2CredentialsRequired = newStorageError(codeInvalid, "R2 credentials are required")

	// ErrR2BucketRequired is returned when R2 bucket name is missing.
	ErrR2BucketRequired = newStorageError(codeInvalid, "R2 bucket name is required")

	// ErrEmptyKey is returned for a blank key.
	ErrEmptyKey = newStorageError(codeInvalid, "storage key is required")
)

// ErrKeyNotFound creates an error for a key that has never been written.
func ErrKeyNotFound(key string) error {
	return newStorageError(codeNotFound, fmt.Sprintf("key not found: %s", key))
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return newStorageError(codeInvalid, fmt.Sprintf("unknown storage provider: %s", provider))
}

// ErrInvalidKey creates an error for keys that cannot be mapped to the backend.
func ErrInvalidKey(key string) error {
	return newStorageError(codeInvalid, fmt.Sprintf("invalid storage key: %q", key))
}

// wrapBackend wraps a driver error.
func wrapBackend(err error, format string, args ...interface{}) error {
	return &StorageError{Code: codeInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
