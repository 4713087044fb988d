package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/oshokin/alarm-relay/internal/pb/v1"
)

// reportServer is the handler type grpc.Server checks on registration.
type reportServer interface {
	Report(ctx context.Context, req *dynamicpb.Message) (*emptypb.Empty, error)
}

// serviceDesc describes alarms.v1.AlarmService for grpc.Server.
//
//nolint:gochecknoglobals // Service descriptors are static, like generated code.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: pb.AlarmServiceName,
	HandlerType: (*reportServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: pb.ReportMethodName,
			Handler:    reportHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: pb.FilePath,
}

// Register installs the alarm service backed by handler on registrar.
func Register(registrar grpc.ServiceRegistrar, handler Handler) {
	registrar.RegisterService(&serviceDesc, NewServer(handler))
}

//nolint:revive // Signature is fixed by grpc.MethodHandler.
func reportHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := pb.NewAlarm()
	if err := dec(in); err != nil {
		return nil, err
	}

	server, _ := srv.(reportServer)

	if interceptor == nil {
		return server.Report(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: pb.ReportFullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		msg, _ := req.(*dynamicpb.Message)

		return server.Report(ctx, msg)
	}

	return interceptor(ctx, in, info, handler)
}
