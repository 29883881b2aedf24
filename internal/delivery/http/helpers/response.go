package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body for every failure this service produces
// itself. Details carries database error detail; Message carries the wrapped
// message on unexpected 500s. Both are omitted when empty.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the body for the health check and the ignored no-op path.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// ForwardSuccessResponse is the success envelope wrapping the push provider's
// response. The caller always receives this one shape on success.
// swagger:model ForwardSuccessResponse
type ForwardSuccessResponse struct {
	Success     bool            `json:"success"`
	FCMResponse json.RawMessage `json:"fcm_response"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRaw relays a downstream response verbatim: same status, body untouched.
func WriteRaw(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
