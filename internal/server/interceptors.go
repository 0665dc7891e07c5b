package server

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDKey is the metadata key carrying the request id in both
// directions.
const RequestIDKey = "x-request-id"

type requestIDCtxKey struct{}

// RequestID returns the id assigned to the current call, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// LoggingInterceptor assigns a request id (taken from incoming metadata or
// generated) and logs method, status code and duration of every call.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		reqID := incomingRequestID(ctx)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx = context.WithValue(ctx, requestIDCtxKey{}, reqID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, reqID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
			"request_id", reqID,
		}
		switch code {
		case codes.OK:
			log.Info("grpc request", attrs...)
		case codes.Internal, codes.Unknown, codes.DataLoss:
			log.Error("grpc request failed", append(attrs, "err", err)...)
		default:
			log.Warn("grpc request failed", append(attrs, "err", err)...)
		}
		return resp, err
	}
}

// RecoveryInterceptor turns a handler panic into codes.Internal.
func RecoveryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in handler", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(RequestIDKey); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
