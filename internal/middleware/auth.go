package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	// UserContextKey is the context key for storing the authenticated user
	UserContextKey contextKey = "user"

	bearerPrefix = "Bearer "
)

// User is the principal behind a bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may call admin endpoints.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// TokenResolver maps a bearer token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*User, error)
}

// WithUser extracts the user from the Authorization header and adds it to the request context.
// This middleware is optional - it adds the user if present but doesn't require authentication
func WithUser(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil || user == nil {
				// Invalid token, continue without user
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}

// RequireAuth answers 401 when no user is authenticated.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin ensures the user is an admin, returning 403 if not
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}

		if !user.IsAdmin() {
			respondForbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the user from the request context
// Returns nil if no user is authenticated
func GetUserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(UserContextKey).(*User)
	if !ok {
		return nil
	}
	return user
}
