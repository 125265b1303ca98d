package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// LoggerContextKey holds the request-scoped logger.
const LoggerContextKey contextKey = "logger"

// WithRequestLogger stores a logger tagged with the request id and, when a
// bearer token resolved, the caller. It belongs after RequestID and WithUser.
func WithRequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			}
			if id := GetRequestID(r.Context()); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}
			if user := GetUserFromContext(r.Context()); user != nil {
				attrs = append(attrs, slog.String("user_id", user.ID), slog.String("role", user.Role))
			} else {
				attrs = append(attrs, slog.String("client_ip", GetClientIP(r)))
			}

			ctx := context.WithValue(r.Context(), LoggerContextKey, base.With(attrs...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLogger returns the request-scoped logger, else fallback, else
// slog.Default().
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*slog.Logger); ok {
		return logger
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
