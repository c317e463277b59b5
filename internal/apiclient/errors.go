// ABOUTME: Error types for upstream API failures
// ABOUTME: Classifies not-found, auth rejection, and generic non-2xx responses

package apiclient

import (
	"errors"
	"fmt"
)

// ErrPostNotFound is returned by GetPost when the server has no post
// with the requested identifier. Callers treat it as a terminal render
// state, not a failure.
var ErrPostNotFound = errors.New("post not found")

// AuthError is returned by Token when the server rejects the supplied
// credentials.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authentication failed (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("authentication failed (HTTP %d)", e.StatusCode)
}

// APIError is any non-2xx response from the content API. JSON reports
// whether the body decoded as JSON; Detail carries the decoded message
// when it did, Body always carries the raw text.
type APIError struct {
	StatusCode int
	Detail     string
	Body       string
	JSON       bool
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.StatusCode)
}
