package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrDeviceUnavailable = errors.New("no video input device available")
	ErrDecodeNoMatch     = errors.New("no code found in frame")
	ErrDecodeOther       = errors.New("decoder fault")
	ErrNetworkFailure    = errors.New("network request failed")
	ErrAuthMissing       = errors.New("auth token missing")
)

// StatusError is a non-2xx answer from the backend. It unwraps to ErrNetworkFailure.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Code)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrNetworkFailure
}

func NewStatusError(code int, message string) error {
	return &StatusError{Code: code, Message: message}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
