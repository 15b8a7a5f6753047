package errors

import (
	"errors"
	"fmt"
)

// StatusCheckError indicates the warehouse status endpoint was unreachable
// or answered with a non-success code.
type StatusCheckError struct {
	cause error
}

func NewStatusCheckError(cause error) error {
	return &StatusCheckError{cause: cause}
}

func (e *StatusCheckError) Error() string {
	return fmt.Sprintf("warehouse status check failed: %v", e.cause)
}

func (e *StatusCheckError) Unwrap() error { return e.cause }

func IsStatusCheckError(err error) bool {
	var target *StatusCheckError
	return errors.As(err, &target)
}

// LifecycleRequestError indicates a start or stop request against the
// warehouse control API was rejected. It carries the HTTP status and body
// so callers can log the rejection verbatim.
type LifecycleRequestError struct {
	Action     string
	StatusCode int
	Body       string
	cause      error
}

func NewLifecycleRequestError(action string, statusCode int, body string) error {
	return &LifecycleRequestError{Action: action, StatusCode: statusCode, Body: body}
}

func NewLifecycleTransportError(action string, cause error) error {
	return &LifecycleRequestError{Action: action, cause: cause}
}

func (e *LifecycleRequestError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("warehouse %s request failed: %v", e.Action, e.cause)
	}
	return fmt.Sprintf("warehouse %s request rejected: %d - %s", e.Action, e.StatusCode, e.Body)
}

func (e *LifecycleRequestError) Unwrap() error { return e.cause }

func IsLifecycleRequestError(err error) bool {
	var target *LifecycleRequestError
	return errors.As(err, &target)
}

// ConnectionUnavailableError indicates the connection manager exhausted its
// retry budget without obtaining a usable session.
type ConnectionUnavailableError struct {
	cause error
}

func NewConnectionUnavailableError(cause error) error {
	return &ConnectionUnavailableError{cause: cause}
}

func (e *ConnectionUnavailableError) Error() string {
	return fmt.Sprintf("warehouse connection unavailable: %v", e.cause)
}

func (e *ConnectionUnavailableError) Unwrap() error { return e.cause }

func IsConnectionUnavailableError(err error) bool {
	var target *ConnectionUnavailableError
	return errors.As(err, &target)
}

// TransientQueryError indicates a transport-level failure mid-query. The
// session is marked stale before this is returned, so a single retry against
// a freshly acquired session is the expected caller response.
type TransientQueryError struct {
	cause error
}

func NewTransientQueryError(cause error) error {
	return &TransientQueryError{cause: cause}
}

func (e *TransientQueryError) Error() string {
	return fmt.Sprintf("transient query failure: %v", e.cause)
}

func (e *TransientQueryError) Unwrap() error { return e.cause }

func IsTransientQueryError(err error) bool {
	var target *TransientQueryError
	return errors.As(err, &target)
}

// MalformedResultError indicates a decoded result did not match the expected
// column arity. It is never silently treated as an empty result.
type MalformedResultError struct {
	Expected int
	Got      int
	Detail   string
}

func NewMalformedResultError(expected, got int, detail string) error {
	return &MalformedResultError{Expected: expected, Got: got, Detail: detail}
}

func (e *MalformedResultError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed query result: expected %d columns, got %d (%s)", e.Expected, e.Got, e.Detail)
	}
	return fmt.Sprintf("malformed query result: expected %d columns, got %d", e.Expected, e.Got)
}

func IsMalformedResultError(err error) bool {
	var target *MalformedResultError
	return errors.As(err, &target)
}
