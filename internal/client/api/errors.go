package api

import (
	"errors"
	"fmt"
)

// APIError is a failed backend call: a non-2xx transport status,
// optionally carrying the business envelope the server put in the body.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Code and Message are filled when the error body was an envelope.
	Code    string
	Message string
	// Body holds the raw response body when it was not an envelope.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// AsAPIError unwraps err into an *APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Normalize converts any failure into a single user-facing message,
// checking in order: a nested business message, a string-valued error
// body, the generic transport message, else the fallback.
func Normalize(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Body != "" {
			return apiErr.Body
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
