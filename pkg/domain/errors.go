package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the data service.
type ErrorKind string

// Error kinds. Codes are strings so they serialize naturally.
const (
	// KindTransient is a simulated "try again" failure raised by the failure gate.
	KindTransient ErrorKind = "TRANSIENT"
	// KindNotFound means the operation was scoped to an id that does not exist.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindValidation means the input itself was rejected (e.g. duplicate email).
	KindValidation ErrorKind = "INVALID_INPUT"
	// KindUnknown is anything else, including context cancellation.
	KindUnknown ErrorKind = "UNKNOWN"
)

// ErrSimulatedFailure is returned when the failure gate aborts an operation.
// Message is the user-facing text for the failed operation.
type ErrSimulatedFailure struct {
	Operation string
	Message   string
}

func (e ErrSimulatedFailure) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("an error occurred during %s", e.Operation)
}

// ErrNotFound is returned when a scoped lookup does not resolve.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	if e.Entity == EntityCompany {
		return "회사를 찾을 수 없습니다."
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrDuplicateEmail is returned when a user email is already taken.
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "이미 존재하는 이메일입니다."
}

// ErrInvalidInput is returned for malformed input.
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var (
		sim   ErrSimulatedFailure
		nf    ErrNotFound
		dup   ErrDuplicateEmail
		inval ErrInvalidInput
	)
	switch {
	case errors.As(err, &sim):
		return KindTransient
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &dup), errors.As(err, &inval):
		return KindValidation
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether retrying the same call may succeed. Only
// simulated failures qualify; not-found and validation errors depend on input.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}
