package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service descriptor for report_control.proto. The messages are well-known
// types, so no generated message code is needed.

const (
	ReportControl_GetReport_FullMethodName = "/salesreport.ReportControl/GetReport"
	ReportControl_Refresh_FullMethodName   = "/salesreport.ReportControl/Refresh"
	ReportControl_Health_FullMethodName    = "/salesreport.ReportControl/Health"
)

// -----------------------------------------------------------------------------

type ReportControlServer interface {
	GetReport(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Refresh(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterReportControlServer(s grpc.ServiceRegistrar, srv ReportControlServer) {
	s.RegisterService(&ReportControl_ServiceDesc, srv)
}

var ReportControl_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "salesreport.ReportControl",
	HandlerType: (*ReportControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetReport", Handler: unaryHandler(ReportControl_GetReport_FullMethodName, ReportControlServer.GetReport)},
		{MethodName: "Refresh", Handler: unaryHandler(ReportControl_Refresh_FullMethodName, ReportControlServer.Refresh)},
		{MethodName: "Health", Handler: unaryHandler(ReportControl_Health_FullMethodName, ReportControlServer.Health)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "report_control.proto",
}

type unaryMethod func(ReportControlServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ReportControlServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ReportControlServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// -----------------------------------------------------------------------------

type ReportControlClient interface {
	GetReport(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Refresh(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Health(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type reportControlClient struct {
	cc grpc.ClientConnInterface
}

func NewReportControlClient(cc grpc.ClientConnInterface) ReportControlClient {
	return &reportControlClient{cc}
}

func (c *reportControlClient) invoke(ctx context.Context, method string, in *emptypb.Empty, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reportControlClient) GetReport(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ReportControl_GetReport_FullMethodName, in, opts)
}

func (c *reportControlClient) Refresh(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ReportControl_Refresh_FullMethodName, in, opts)
}

func (c *reportControlClient) Health(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ReportControl_Health_FullMethodName, in, opts)
}
