package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkFailure matches every *Error: a transport error or a non-2xx response.
	ErrNetworkFailure = errors.New("network failure")
	// ErrShapeMismatch is reported when a response body has an unexpected shape.
	ErrShapeMismatch = errors.New("unexpected response shape")
)

// Error describes a failed remote call. Message is the user facing text naming
// the failed operation.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%s: status %d)", e.Message, e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s: %v)", e.Message, e.Op, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrNetworkFailure
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the user facing message carried by err, or err.Error().
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
