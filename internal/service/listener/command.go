package listener

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	api "github.com/oshokin/alarm-relay/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/logger"
	"github.com/oshokin/alarm-relay/internal/service/common"
)

// Options controls the alarm-listener process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// Handler receives every accepted event; LogHandler is used when nil.
	Handler api.Handler
	// Listener is served instead of opening ListenAddress when set.
	Listener net.Listener
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC server and blocks until context is canceled or server stops.
// Loads configuration first, then determines listen address from config or override.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-listener")

	settings, err := loadConfig(opts)
	if err != nil {
		return err
	}

	common.ApplyLogLevel(ctx, settings.LogLevel)

	lis := opts.Listener
	if lis == nil {
		// Determine listen address: CLI argument overrides config port extraction.
		listenAddress, resolveErr := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
		if resolveErr != nil {
			return fmt.Errorf("resolve listen address: %w", resolveErr)
		}

		lc := net.ListenConfig{}

		lis, err = lc.Listen(ctx, "tcp", listenAddress)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", listenAddress, err)
		}
	}

	handler := opts.Handler
	if handler == nil {
		handler = LogHandler()
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(ctx)))
	api.Register(grpcServer, handler)
	reflection.Register(grpcServer)

	logger.InfoKV(ctx, "Alarm listener started", "listen_address", lis.Addr().String())

	// Serve failures cancel serveCtx too, so the stop goroutine always exits.
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-serveCtx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	cancel()
	<-done

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// loadConfig reads settings; a listen address override stands in for a missing server_addr.
func loadConfig(opts *Options) (*config.Config, error) {
	settings, err := config.Read(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// The listener always serves gRPC whatever sink the reporters use.
	settings.Sink = config.SinkGRPC

	if settings.ServerAddress == "" {
		switch {
		case opts.ListenAddress != "":
			settings.ServerAddress = opts.ListenAddress
		case opts.Listener != nil:
			settings.ServerAddress = opts.Listener.Addr().String()
		}
	}

	if err = config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// "alarms.example.com:50051" -> ":50051".
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
