package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotFound             = errors.New("not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrConsistencyViolation = errors.New("consistency violation")
	// ErrStateUndefined means a relationship state row is missing: a setup
	// defect, not a caller error.
	ErrStateUndefined = errors.New("relationship state undefined")
)

// AppError carries one of the sentinels above plus a caller-facing message.
type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // human-readable message
	Cause   error  // optional underlying error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func Invalid(message string) *AppError {
	return &AppError{Err: ErrInvalidArgument, Message: message}
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrPermissionDenied, Message: message}
}

func Unavailable(upstream string, cause error) *AppError {
	return &AppError{
		Err:     ErrUpstreamUnavailable,
		Message: upstream + " unavailable",
		Cause:   cause,
	}
}

func Inconsistent(message string) *AppError {
	return &AppError{Err: ErrConsistencyViolation, Message: message}
}

func StateUndefined(state string) *AppError {
	return &AppError{
		Err:     ErrStateUndefined,
		Message: fmt.Sprintf("relationship state %q is not defined", state),
	}
}
