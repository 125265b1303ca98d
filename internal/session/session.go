// Package session holds the signed-in identity of the client. The record is
// persisted so a restart keeps the user signed in; issuing tokens is the
// backend's job.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/dukerupert/atelier/internal/crypto"
	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/storage"
	"github.com/dukerupert/atelier/internal/telemetry"
)

// StorageKey is the durable storage key of the session record.
const StorageKey = "session"

// Roles understood by the client for UI gating.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Record is the persisted session: a bearer credential plus who it belongs to.
type Record struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Manager is the session/identity accessor shared by the stores and the
// API client. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	current *Record

	storage storage.Storage
	enc     crypto.Encryptor
	logger  *slog.Logger
}

// NewManager loads any persisted record. enc may be nil, in which case the
// record is stored in plain JSON. An unreadable record is discarded and the
// client starts signed out.
func NewManager(ctx context.Context, store storage.Storage, enc crypto.Encryptor, logger *slog.Logger) *Manager {
	m := &Manager{
		storage: store,
		enc:     enc,
		logger:  logger.With("component", "session"),
	}

	rec, err := m.load(ctx)
	switch {
	case storage.IsNotFound(err):
	case err != nil:
		m.logger.Warn("discarding unreadable session record", "error", err)
	default:
		m.current = rec
		telemetry.SetUser(rec.User.ID, rec.User.Email)
	}

	return m
}

func (m *Manager) load(ctx context.Context) (*Record, error) {
	data, err := m.storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}

	if m.enc != nil {
		data, err = m.enc.Decrypt(data)
		if err != nil {
			return nil, err
		}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Token == "" {
		return nil, domain.Invalid("session.load", "session record has no token")
	}
	return &rec, nil
}

// Token returns the bearer credential, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Active reports whether a session record exists.
func (m *Manager) Active() bool {
	return m.Token() != ""
}

func (m *Manager) Current() (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return Record{}, false
	}
	return *m.current, true
}

func (m *Manager) IsAdmin() bool {
	rec, ok := m.Current()
	return ok && rec.User.Role == RoleAdmin
}

// Login stores rec as the active session, replacing any previous one.
func (m *Manager) Login(ctx context.Context, rec Record) error {
	const op = "session.login"

	rec.Token = strings.TrimSpace(rec.Token)
	if rec.Token == "" {
		return domain.Invalid(op, "token is required")
	}
	if rec.User.Role == "" {
		rec.User.Role = RoleUser
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return domain.Internal(err, op, "failed to encode session")
	}
	if m.enc != nil {
		data, err = m.enc.Encrypt(data)
		if err != nil {
			return domain.Internal(err, op, "failed to encrypt session")
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Put(ctx, StorageKey, data); err != nil {
		return domain.Internal(err, op, "failed to persist session")
	}
	m.current = &rec

	telemetry.SetUser(rec.User.ID, rec.User.Email)
	m.logger.Info("signed in", "user_id", rec.User.ID, "role", rec.User.Role)
	return nil
}

// Logout forgets the active session. Signing out twice is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Delete(ctx, StorageKey); err != nil {
		return domain.Internal(err, "session.logout", "failed to remove session")
	}
	m.current = nil

	telemetry.SetUser("", "")
	m.logger.Info("signed out")
	return nil
}
