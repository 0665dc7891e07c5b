package matching

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "matching.MatchingService"

	MatchingService_GetRecommendations_FullMethodName    = "/matching.MatchingService/GetRecommendations"
	MatchingService_GetExcludedIds_FullMethodName        = "/matching.MatchingService/GetExcludedIds"
	MatchingService_RecordSwipe_FullMethodName           = "/matching.MatchingService/RecordSwipe"
	MatchingService_CheckRelationship_FullMethodName     = "/matching.MatchingService/CheckRelationship"
	MatchingService_GetActiveRelationship_FullMethodName = "/matching.MatchingService/GetActiveRelationship"
	MatchingService_Dismatch_FullMethodName              = "/matching.MatchingService/Dismatch"
	MatchingService_GetConnectionHistory_FullMethodName  = "/matching.MatchingService/GetConnectionHistory"
)

// MatchingServiceServer is the server API for MatchingService.
type MatchingServiceServer interface {
	GetRecommendations(context.Context, *GetRecommendationsRequest) (*GetRecommendationsResponse, error)
	GetExcludedIds(context.Context, *GetExcludedIdsRequest) (*GetExcludedIdsResponse, error)
	RecordSwipe(context.Context, *RecordSwipeRequest) (*RecordSwipeResponse, error)
	CheckRelationship(context.Context, *CheckRelationshipRequest) (*CheckRelationshipResponse, error)
	GetActiveRelationship(context.Context, *GetActiveRelationshipRequest) (*GetActiveRelationshipResponse, error)
	Dismatch(context.Context, *DismatchRequest) (*DismatchResponse, error)
	GetConnectionHistory(context.Context, *GetConnectionHistoryRequest) (*GetConnectionHistoryResponse, error)
}

// UnimplementedMatchingServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedMatchingServiceServer struct{}

func (UnimplementedMatchingServiceServer) GetRecommendations(context.Context, *GetRecommendationsRequest) (*GetRecommendationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecommendations not implemented")
}
func (UnimplementedMatchingServiceServer) GetExcludedIds(context.Context, *GetExcludedIdsRequest) (*GetExcludedIdsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetExcludedIds not implemented")
}
func (UnimplementedMatchingServiceServer) RecordSwipe(context.Context, *RecordSwipeRequest) (*RecordSwipeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RecordSwipe not implemented")
}
func (UnimplementedMatchingServiceServer) CheckRelationship(context.Context, *CheckRelationshipRequest) (*CheckRelationshipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckRelationship not implemented")
}
func (UnimplementedMatchingServiceServer) GetActiveRelationship(context.Context, *GetActiveRelationshipRequest) (*GetActiveRelationshipResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetActiveRelationship not implemented")
}
func (UnimplementedMatchingServiceServer) Dismatch(context.Context, *DismatchRequest) (*DismatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Dismatch not implemented")
}
func (UnimplementedMatchingServiceServer) GetConnectionHistory(context.Context, *GetConnectionHistoryRequest) (*GetConnectionHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetConnectionHistory not implemented")
}

func RegisterMatchingServiceServer(s grpc.ServiceRegistrar, srv MatchingServiceServer) {
	s.RegisterService(&MatchingService_ServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](
	fullMethod string,
	call func(MatchingServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatchingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatchingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MatchingService_ServiceDesc is the grpc.ServiceDesc for MatchingService.
var MatchingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRecommendations",
			Handler:    unary(MatchingService_GetRecommendations_FullMethodName, MatchingServiceServer.GetRecommendations),
		},
		{
			MethodName: "GetExcludedIds",
			Handler:    unary(MatchingService_GetExcludedIds_FullMethodName, MatchingServiceServer.GetExcludedIds),
		},
		{
			MethodName: "RecordSwipe",
			Handler:    unary(MatchingService_RecordSwipe_FullMethodName, MatchingServiceServer.RecordSwipe),
		},
		{
			MethodName: "CheckRelationship",
			Handler:    unary(MatchingService_CheckRelationship_FullMethodName, MatchingServiceServer.CheckRelationship),
		},
		{
			MethodName: "GetActiveRelationship",
			Handler:    unary(MatchingService_GetActiveRelationship_FullMethodName, MatchingServiceServer.GetActiveRelationship),
		},
		{
			MethodName: "Dismatch",
			Handler:    unary(MatchingService_Dismatch_FullMethodName, MatchingServiceServer.Dismatch),
		},
		{
			MethodName: "GetConnectionHistory",
			Handler:    unary(MatchingService_GetConnectionHistory_FullMethodName, MatchingServiceServer.GetConnectionHistory),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/proto/matching/matching.proto",
}

// MatchingServiceClient is the client API for MatchingService. Every call
// is sent with the JSON content-subtype.
type MatchingServiceClient interface {
	GetRecommendations(ctx context.Context, in *GetRecommendationsRequest, opts ...grpc.CallOption) (*GetRecommendationsResponse, error)
	GetExcludedIds(ctx context.Context, in *GetExcludedIdsRequest, opts ...grpc.CallOption) (*GetExcludedIdsResponse, error)
	RecordSwipe(ctx context.Context, in *RecordSwipeRequest, opts ...grpc.CallOption) (*RecordSwipeResponse, error)
	CheckRelationship(ctx context.Context, in *CheckRelationshipRequest, opts ...grpc.CallOption) (*CheckRelationshipResponse, error)
	GetActiveRelationship(ctx context.Context, in *GetActiveRelationshipRequest, opts ...grpc.CallOption) (*GetActiveRelationshipResponse, error)
	Dismatch(ctx context.Context, in *DismatchRequest, opts ...grpc.CallOption) (*DismatchResponse, error)
	GetConnectionHistory(ctx context.Context, in *GetConnectionHistoryRequest, opts ...grpc.CallOption) (*GetConnectionHistoryResponse, error)
}

type matchingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchingServiceClient(cc grpc.ClientConnInterface) MatchingServiceClient {
	return &matchingServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchingServiceClient) GetRecommendations(ctx context.Context, in *GetRecommendationsRequest, opts ...grpc.CallOption) (*GetRecommendationsResponse, error) {
	return invoke[GetRecommendationsResponse](ctx, c.cc, MatchingService_GetRecommendations_FullMethodName, in, opts)
}

func (c *matchingServiceClient) GetExcludedIds(ctx context.Context, in *GetExcludedIdsRequest, opts ...grpc.CallOption) (*GetExcludedIdsResponse, error) {
	return invoke[GetExcludedIdsResponse](ctx, c.cc, MatchingService_GetExcludedIds_FullMethodName, in, opts)
}

func (c *matchingServiceClient) RecordSwipe(ctx context.Context, in *RecordSwipeRequest, opts ...grpc.CallOption) (*RecordSwipeResponse, error) {
	return invoke[RecordSwipeResponse](ctx, c.cc, MatchingService_RecordSwipe_FullMethodName, in, opts)
}

func (c *matchingServiceClient) CheckRelationship(ctx context.Context, in *CheckRelationshipRequest, opts ...grpc.CallOption) (*CheckRelationshipResponse, error) {
	return invoke[CheckRelationshipResponse](ctx, c.cc, MatchingService_CheckRelationship_FullMethodName, in, opts)
}

func (c *matchingServiceClient) GetActiveRelationship(ctx context.Context, in *GetActiveRelationshipRequest, opts ...grpc.CallOption) (*GetActiveRelationshipResponse, error) {
	return invoke[GetActiveRelationshipResponse](ctx, c.cc, MatchingService_GetActiveRelationship_FullMethodName, in, opts)
}

func (c *matchingServiceClient) Dismatch(ctx context.Context, in *DismatchRequest, opts ...grpc.CallOption) (*DismatchResponse, error) {
	return invoke[DismatchResponse](ctx, c.cc, MatchingService_Dismatch_FullMethodName, in, opts)
}

func (c *matchingServiceClient) GetConnectionHistory(ctx context.Context, in *GetConnectionHistoryRequest, opts ...grpc.CallOption) (*GetConnectionHistoryResponse, error) {
	return invoke[GetConnectionHistoryResponse](ctx, c.cc, MatchingService_GetConnectionHistory_FullMethodName, in, opts)
}
