package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

var (
	// ErrCircuitOpen indicates the circuit breaker rejected the call without sending it
	ErrCircuitOpen = errors.New("task service unavailable (circuit open)")
	// ErrInvalidTask indicates a task failed client-side validation and was not sent
	ErrInvalidTask = errors.New("invalid task")
	// ErrMissingID indicates an operation that needs a task id was called without one
	ErrMissingID = errors.New("task id is required")
)

// APIError represents a non-2xx response from the task service
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Payload is the raw response body, kept verbatim for error surfaces that show it
	Payload []byte
}

func (e *APIError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, truncate(string(e.Payload), 200))
}

// truncate cuts s to at most n bytes on a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// IsNotFound reports whether err is a 404 from the task service
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError reports whether err is a 5xx from the task service
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// ErrorDetails renders an error the way the AI parse alert shows it: the raw
// server payload as compact JSON when there is one, otherwise the error
// message as a JSON string.
func ErrorDetails(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && len(bytes.TrimSpace(apiErr.Payload)) > 0 {
		if json.Valid(apiErr.Payload) {
			var buf bytes.Buffer
			if compactErr := json.Compact(&buf, apiErr.Payload); compactErr == nil {
				return buf.String()
			}
		}
		return quote(string(apiErr.Payload))
	}
	return quote(err.Error())
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return s
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
