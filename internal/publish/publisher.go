package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-redis/redis/v8"

	grpcapi "github.com/oshokin/alarm-relay/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// Publisher sends alarm events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event alarm.Event) error
	Close() error
}

// ErrUnknownSink is returned by New for unsupported sink names.
var ErrUnknownSink = errors.New("unknown sink")

// options holds settings that do not come from the configuration file.
type options struct {
	// output receives stdout sink lines.
	output io.Writer
}

// Option configures New.
type Option func(*options)

// WithOutput sets the stream of the stdout sink, os.Stdout by default.
func WithOutput(out io.Writer) Option {
	return func(o *options) {
		if out != nil {
			o.output = out
		}
	}
}

// New builds the publisher selected by cfg.Sink.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (Publisher, error) {
	settings := options{output: os.Stdout}
	for _, opt := range opts {
		opt(&settings)
	}

	format, err := wire.ParseFormat(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	switch cfg.Sink {
	case config.SinkGRPC:
		client, err := grpcapi.Dial(ctx, cfg.ServerAddress, grpcapi.WithCallTimeout(cfg.Timeout))
		if err != nil {
			return nil, err
		}

		return NewGRPC(client), nil
	case config.SinkMQTT:
		publisher, err := DialMQTT(cfg.MQTT, format, cfg.Timeout)
		if err != nil {
			return nil, err
		}

		return publisher, nil
	case config.SinkRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Timeout,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		})

		return NewRedis(client, cfg.Redis.Stream, format), nil
	case config.SinkStdout:
		return NewWriter(settings.output, format), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
	}
}
