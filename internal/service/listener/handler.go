package listener

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/alarm-relay/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/logger"
)

// LogHandler returns a handler that logs each event with its fields and the caller address.
func LogHandler() api.Handler {
	return api.HandlerFunc(func(ctx context.Context, event domain.Event) error {
		kvs := []any{
			"alarm_name", event.Name(),
			"raised", event.Raised(),
			"reporter", event.Reporter(),
			"severity", event.Severity(),
			"problem_description", event.Description(),
			"parameters", event.Parameters(),
		}

		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			kvs = append(kvs, "peer", p.Addr.String())
		}

		if event.Raised() {
			logger.WarnKV(ctx, "Alarm raised", kvs...)
		} else {
			logger.InfoKV(ctx, "Alarm cleared", kvs...)
		}

		return nil
	})
}

// loggingInterceptor logs every unary call at debug level, and failures at warn.
func loggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	log := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, log)
		started := time.Now()

		resp, err := handler(ctx, req)

		kvs := []any{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(started),
		}

		if err != nil {
			logger.WarnKV(ctx, "Call failed", append(kvs, "error", err)...)
		} else {
			logger.DebugKV(ctx, "Call handled", kvs...)
		}

		return resp, err
	}
}
