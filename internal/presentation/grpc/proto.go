package grpc

// proto.go hand-writes the service descriptor for jobsentinel.v1.JobSentinelService.
// Messages are plain structs carried by the JSON codec below, selected by
// clients with the "json" content-subtype.

import (
	"context"
	"encoding/json"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

const ServiceName = "jobsentinel.v1.JobSentinelService"

// JSONCodec marshals messages as JSON. Its name is the content-subtype
// clients must request (application/grpc+json).
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                       { return "json" }

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// JobSentinelServiceServer is the server API for JobSentinelService.
type JobSentinelServiceServer interface {
	AssessPosting(context.Context, *AssessPostingRequest) (*AssessPostingResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ReportPosting(context.Context, *ReportPostingRequest) (*ReportPostingResponse, error)
	mustEmbedUnimplementedJobSentinelServiceServer()
}

// UnimplementedJobSentinelServiceServer provides forward-compatible default implementations.
type UnimplementedJobSentinelServiceServer struct{}

func (UnimplementedJobSentinelServiceServer) AssessPosting(context.Context, *AssessPostingRequest) (*AssessPostingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessPosting not implemented")
}
func (UnimplementedJobSentinelServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedJobSentinelServiceServer) ReportPosting(context.Context, *ReportPostingRequest) (*ReportPostingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReportPosting not implemented")
}
func (UnimplementedJobSentinelServiceServer) mustEmbedUnimplementedJobSentinelServiceServer() {}

// RegisterJobSentinelServiceServer registers srv with the gRPC server.
func RegisterJobSentinelServiceServer(s grpclib.ServiceRegistrar, srv JobSentinelServiceServer) {
	s.RegisterService(&jobSentinelServiceDesc, srv)
}

var jobSentinelServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JobSentinelServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessPosting", Handler: assessPostingHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
		{MethodName: "ReportPosting", Handler: reportPostingHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "jobsentinel/v1/jobsentinel.proto",
}

func assessPostingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessPostingRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobSentinelServiceServer).AssessPosting(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AssessPosting"}
	return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobSentinelServiceServer).AssessPosting(ctx, req.(*AssessPostingRequest))
	})
}

func getAssessmentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobSentinelServiceServer).GetAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetAssessment"}
	return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobSentinelServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	})
}

func reportPostingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ReportPostingRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobSentinelServiceServer).ReportPosting(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ReportPosting"}
	return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobSentinelServiceServer).ReportPosting(ctx, req.(*ReportPostingRequest))
	})
}
