// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

// Map converts domain/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	// already a status error (e.g. produced by InvalidArgument below)
	if _, ok := status.FromError(err); ok {
		return err
	}

	msg := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, msg)

	case errors.Is(err, ErrNotFound):
		return status.Error(codes.NotFound, msg)

	case errors.Is(err, ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, msg)

	case errors.Is(err, ErrUpstreamUnavailable):
		return status.Error(codes.Unavailable, msg)

	case errors.Is(err, ErrConsistencyViolation):
		return status.Error(codes.FailedPrecondition, msg)

	case errors.Is(err, ErrStateUndefined):
		return status.Error(codes.Internal, msg)

	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(codes.NotFound, "record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, msg)
	}
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
