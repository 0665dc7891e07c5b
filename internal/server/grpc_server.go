package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/oggyb/muzz-matching/internal/config"
)

// NewGRPCServer builds a gRPC server with the logging interceptors, the
// health service and every provided service registered. Health reports
// SERVING for the overall server and for each registered service.
func NewGRPCServer(log *slog.Logger, registrars ...Registrar) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(log),
			RecoveryInterceptor(log),
		),
	)

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	for name := range grpcServer.GetServiceInfo() {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// reflection lists the registered services. Only health is describable
	// through it; MatchingService speaks the json codec and its schema ships
	// as internal/proto/matching/matching.proto.
	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// StartGRPCServer boots a gRPC server and registers all provided services.
// It blocks until ctx is cancelled, then drains in-flight calls.
func StartGRPCServer(ctx context.Context, cfg *config.Config, log *slog.Logger, registrars ...Registrar) error {
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, lis, log, registrars...)
}

// Serve runs the server on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener, log *slog.Logger, registrars ...Registrar) error {
	grpcServer, healthServer := NewGRPCServer(log, registrars...)

	errCh := make(chan error, 1)
	go func() {
		log.Info("gRPC server listening", "addr", lis.Addr().String())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	}
}
