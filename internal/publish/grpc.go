package publish

import (
	"context"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
)

// Reporter is the part of the gRPC client the publisher uses.
type Reporter interface {
	Report(ctx context.Context, event alarm.Event) error
	Close() error
}

// GRPC publishes events through the AlarmService Report RPC.
type GRPC struct {
	client Reporter
}

// NewGRPC wraps a connected gRPC client.
func NewGRPC(client Reporter) *GRPC {
	return &GRPC{client: client}
}

// Publish reports the event to the listener.
func (g *GRPC) Publish(ctx context.Context, event alarm.Event) error {
	return g.client.Report(ctx, event)
}

// Close releases the client connection.
func (g *GRPC) Close() error {
	return g.client.Close()
}
