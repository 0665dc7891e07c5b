package matching

import (
	"google.golang.org/grpc"

	"github.com/oggyb/muzz-matching/internal/app"
	pb "github.com/oggyb/muzz-matching/internal/proto/matching"
)

// Registrar ties the Matching service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Matching service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Matching service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	service := NewMatchingService(r.appCtx)
	pb.RegisterMatchingServiceServer(s, service)
}
