// Package response writes the JSON envelopes shared by handlers and middleware.
package response

import (
	"encoding/json"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every auth endpoint response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	User    any    `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// ValidationErrors is the body of a 422 response.
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error envelope. An empty detail is omitted.
func Error(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, Envelope{
		Status:  StatusError,
		Message: message,
		Error:   detail,
	})
}
