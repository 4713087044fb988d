package alarm

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/emptypb"

	domain "github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// Handler consumes alarm events received by the server.
type Handler interface {
	HandleAlarm(ctx context.Context, event domain.Event) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event domain.Event) error

// HandleAlarm calls f.
func (f HandlerFunc) HandleAlarm(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// Server implements the AlarmService gRPC API.
type Server struct {
	// handler receives every decoded event.
	handler Handler
}

// NewServer wires the provided handler into a gRPC service implementation.
func NewServer(handler Handler) *Server {
	return &Server{
		handler: handler,
	}
}

// Report decodes an alarm message and passes the event to the handler.
func (s *Server) Report(ctx context.Context, req *dynamicpb.Message) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	message, err := wire.FromProto(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode alarm: %v", err)
	}

	if s.handler == nil {
		return nil, status.Error(codes.Unavailable, "no alarm handler configured")
	}

	if err = s.handler.HandleAlarm(ctx, wire.ToEvent(message)); err != nil {
		return nil, status.Error(codes.Internal, "unable to handle alarm")
	}

	return new(emptypb.Empty), nil
}
