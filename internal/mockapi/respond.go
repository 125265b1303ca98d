package mockapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dukerupert/atelier/internal/domain"
	"github.com/dukerupert/atelier/internal/middleware"
	"github.com/dukerupert/atelier/internal/telemetry"
)

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse maps err to its status and writes {"message": "..."}.
// Internal errors are reported to Sentry and their details hidden.
func errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := domain.HTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{"error", err.Error(), "code", code, "status", status}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		})
	} else {
		logger.Info("request rejected", attrs...)
	}

	writeJSON(w, status, map[string]string{"message": domain.ErrorMessage(err)})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, op string, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return domain.Errorf(domain.EINVALID, op, "request body too large")
	}
	return domain.WrapError(err, domain.EINVALID, op, "malformed JSON body")
}
