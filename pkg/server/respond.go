package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ctxKey int

const requestIDKey ctxKey = iota

// Error codes of the envelope.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeInvalidField     = "INVALID_FIELD"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInProgress       = "SUBMISSION_IN_PROGRESS"
	CodeUpstreamFailed   = "UPSTREAM_FAILED"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeNotConfigured    = "NOT_CONFIGURED"
	CodeInternal         = "INTERNAL"
)

// NewRequestID returns a fresh request identifier.
func NewRequestID() string { return "req_" + uuid.NewString() }

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return NewRequestID()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	resp := map[string]any{
		"request_id": requestID(r),
		"error": map[string]any{
			"code": code, "message": message, "details": details,
		},
	}
	writeJSON(w, status, resp)
}

func readJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) bool {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if isTooLarge(err) {
			writeError(w, r, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body too large", nil)
			return false
		}
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "invalid JSON", nil)
		return false
	}
	return true
}

func isTooLarge(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "request body too large")
}
