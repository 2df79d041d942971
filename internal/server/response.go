package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Error codes
const (
	ErrCodeEmptyInput       = "empty_input"
	ErrCodeParseError       = "parse_error"
	ErrCodeInvalidParameter = "invalid_parameter"
	ErrCodeUpstream         = "upstream_error"
	ErrCodeInternal         = "internal_error"
)

// SuccessResponse represents a successful API response.
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// Meta represents metadata in response.
type Meta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count,omitempty"`
}

// ErrorResponse represents an error API response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

func success(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Data: data,
		Meta: Meta{RequestID: RequestIDFrom(r.Context()), Timestamp: time.Now().UTC()},
	})
}

func successList(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Data: data,
		Meta: Meta{RequestID: RequestIDFrom(r.Context()), Timestamp: time.Now().UTC(), Count: count},
	})
}

func fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := ErrorResponse{Error: ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
		Timestamp: time.Now().UTC(),
	}}

	event := log.Warn()
	if status >= 500 {
		event = log.Error()
	}
	event.
		Str("request_id", resp.Error.RequestID).
		Str("error_code", code).
		Str("message", message).
		Int("status", status).
		Msg("api error response")

	writeJSON(w, status, resp)
}
