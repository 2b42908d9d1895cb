package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
)

// genericErrorMessage is the fallback shown when the server gives us
// nothing usable.
const genericErrorMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response from the accreditation API. The body is
// parsed leniently: servers variously populate "message", "error", or a
// per-field "errors" map, and any of them may be absent.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// RawMessage is the top-level "message" field, if any.
	RawMessage string
	// RawError is the top-level "error" field, if any.
	RawError string
	// Fields is the per-field validation map, if any.
	Fields map[string][]string
}

// errorBody mirrors the wire shape of an error response.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// newAPIError builds an APIError from a response status and body. A body
// that is not valid JSON yields an error carrying only the status.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.RawMessage = parsed.Message
		apiErr.RawError = parsed.Error
		apiErr.Fields = parsed.Errors
	}
	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message()
}

// Message resolves the human-readable message by checking, in priority
// order: the structured message field, the structured error field, the
// first message of the first validation field (fields in sorted order so
// the choice is deterministic), then a generic fallback.
func (e *APIError) Message() string {
	if e.RawMessage != "" {
		return e.RawMessage
	}
	if e.RawError != "" {
		return e.RawError
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if msgs := e.Fields[k]; len(msgs) > 0 {
				return msgs[0]
			}
		}
	}
	return genericErrorMessage
}

// StatusCode returns the HTTP status of the response.
func (e *APIError) StatusCode() int { return e.Status }

// FieldErrors returns the per-field validation map, which may be nil.
func (e *APIError) FieldErrors() map[string][]string { return e.Fields }

// IsUnauthorized reports whether err is an APIError with HTTP 401, i.e.
// the credential is definitely invalid rather than unverifiable.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// FieldErrors returns the per-field validation map from err, if err is an
// APIError carrying one.
func FieldErrors(err error) map[string][]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
