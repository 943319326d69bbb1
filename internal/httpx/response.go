// Package httpx holds the JSON response helpers shared by every
// handler. A response is either a payload or an ErrorResponse; handlers
// never write to the ResponseWriter directly.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body. Error carries a stable
// machine-readable code such as "validation_failed"; Details holds
// field-level messages when there are any.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON marshals payload and writes it with the given status. The body
// is marshaled before the status line goes out, so a failed encode
// becomes a clean 500 instead of a truncated response.
func JSON(w http.ResponseWriter, status int, payload any) {
	body := []byte("null")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
		body = b
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with the given status.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
