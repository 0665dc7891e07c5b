package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"invalid", svcErr.Invalid("cannot swipe on self"), codes.InvalidArgument, "cannot swipe on self"},
		{"not found", svcErr.NotFound("relationship", 7), codes.NotFound, "relationship 7 not found"},
		{"forbidden", svcErr.Forbidden("not a participant"), codes.PermissionDenied, "not a participant"},
		{"unavailable", svcErr.Unavailable("user service", errors.New("dial tcp")), codes.Unavailable, "user service unavailable"},
		{"inconsistent", svcErr.Inconsistent("2 active relationships"), codes.FailedPrecondition, "2 active relationships"},
		{"state undefined", svcErr.StateUndefined("active"), codes.Internal, `relationship state "active" is not defined`},
		{"wrapped", fmt.Errorf("record swipe: %w", svcErr.Invalid("bad")), codes.InvalidArgument, "bad"},
		{"gorm", gorm.ErrRecordNotFound, codes.NotFound, "record not found"},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded, "request timed out"},
		{"canceled", context.Canceled, codes.Canceled, "request was canceled"},
		{"other", errors.New("boom"), codes.Internal, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(svcErr.Map(tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
}

func TestMap_NilAndStatusPassthrough(t *testing.T) {
	assert.NoError(t, svcErr.Map(nil))

	in := svcErr.InvalidArgument("user_id must be a valid uint64")
	assert.Equal(t, in, svcErr.Map(in))
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := context.DeadlineExceeded
	err := svcErr.Unavailable("user service", cause)

	assert.ErrorIs(t, err, svcErr.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "deadline exceeded")
}
