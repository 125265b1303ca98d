package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
)

// Middleware answers with the same {"message": "..."} body as the API
// handlers so clients surface one error shape. The helpers live here rather
// than in the handler package to avoid an import cycle.

// respondWithError logs err and writes its JSON error body.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	respondStatus(w, r, domain.HTTPStatus(code), code, domain.ErrorMessage(err), err)
}

// respondStatus writes an error body with an explicit status, for statuses
// no domain code maps to.
func respondStatus(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	logger := GetLogger(r.Context())

	attrs := []any{
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	if reqID := GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}

	if status >= 500 {
		logger.Error("middleware error", attrs...)
	} else {
		logger.Info("middleware error", attrs...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// respondUnauthorized is a convenience wrapper for 401 errors.
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EUNAUTHORIZED, "", "Authentication required")
	respondWithError(w, r, err)
}

// respondForbidden is a convenience wrapper for 403 errors.
func respondForbidden(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EFORBIDDEN, "", "Admin access required")
	respondWithError(w, r, err)
}

// respondTooManyRequests is a convenience wrapper for 429 errors.
func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.ERATELIMIT, "", "Too many requests")
	respondWithError(w, r, err)
}
