package domain

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned by the session manager when the backend
// rejects the stored token with 401. By the time a caller sees it the token
// has already been cleared and the re-authentication hook fired, so callers
// abort the current action without rendering another error.
var ErrSessionExpired = errors.New("session expired")

// ErrNotAuthenticated is returned when an operation requires a principal
// and none is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthError means the backend refused the supplied credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// RequestError is any non-2xx response that is not a 401 on an
// authenticated call. Message carries the server-provided detail when the
// body included one.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// DecodeError means the response body was not the JSON the contract
// promises: wrong content type, or a body that failed to parse.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response body: %v", e.Err)
	}
	return fmt.Sprintf("server returned non-JSON response (%s)", e.ContentType)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConnectivityError means the request never produced an HTTP response:
// host unreachable, DNS failure, connection refused.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach server: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ValidationError means client-side input violated its contract before any
// request was made; prior state is untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
