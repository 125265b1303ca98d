package mockapi

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/atelier/internal/middleware"
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens resolves the development backend's self-describing bearer tokens,
// "user:<id>" or "admin:<id>". There is no issuance: any well-formed token
// is accepted.
type Tokens struct{}

// ResolveToken implements middleware.TokenResolver.
func (Tokens) ResolveToken(_ context.Context, token string) (*middleware.User, error) {
	role, id, ok := strings.Cut(token, ":")
	if !ok || id == "" {
		return nil, ErrInvalidToken
	}
	if role != "user" && role != "admin" {
		return nil, ErrInvalidToken
	}
	return &middleware.User{ID: id, Role: role}, nil
}

// Token builds a token the backend accepts.
func Token(role, id string) string {
	return role + ":" + id
}
