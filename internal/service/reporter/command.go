package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/identity"
	"github.com/oshokin/alarm-relay/internal/logger"
	"github.com/oshokin/alarm-relay/internal/publish"
	"github.com/oshokin/alarm-relay/internal/service/common"
)

// Options configures one alarm-report run.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides the configured listener address when specified.
	ServerAddress string
	// Sink overrides the configured sink when specified.
	Sink string
	// Event describes the alarm to publish.
	Event common.EventOptions
	// RetryInterval is the delay between publish attempts.
	RetryInterval time.Duration
	// Output receives the stdout sink lines, os.Stdout when nil.
	Output io.Writer
}

// defaultRetryInterval defines the delay between publish attempts.
const defaultRetryInterval = 1 * time.Second

// errPublishFailed is returned when every attempt failed.
var errPublishFailed = errors.New("unable to publish alarm")

// Run publishes the alarm described by opts.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-report")

	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	common.ApplyLogLevel(ctx, cfg.LogLevel)

	event, err := opts.Event.Build(identity.New(cfg.Reporter))
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}

	publisher, err := publish.New(ctx, cfg, publish.WithOutput(opts.Output))
	if err != nil {
		return fmt.Errorf("create %s publisher: %w", cfg.Sink, err)
	}

	defer func() {
		_ = publisher.Close()
	}()

	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	logger.InfoKV(
		ctx,
		"Publishing alarm",
		"sink", cfg.Sink,
		"alarm_name", event.Name(),
		"raised", event.Raised(),
		"reporter", event.Reporter(),
		"severity", event.Severity(),
	)

	return publishWithRetry(ctx, publisher, event, cfg.Attempts, interval)
}

// LoadConfig reads settings and applies the command-line overrides before validating.
func LoadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Read(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ServerAddress != "" {
		cfg.ServerAddress = opts.ServerAddress
	}

	if opts.Sink != "" {
		cfg.Sink = opts.Sink
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return cfg, nil
}

// publishWithRetry tries up to attempts times, waiting interval between tries.
func publishWithRetry(
	ctx context.Context,
	publisher publish.Publisher,
	event alarm.Event,
	attempts int,
	interval time.Duration,
) error {
	if attempts <= 0 {
		attempts = config.DefaultAttempts
	}

	var lastErr error

	// attempt tries once and reports whether the event was published.
	attempt := func(n int) bool {
		if err := publisher.Publish(ctx, event); err != nil {
			lastErr = err

			// Log error but continue retrying for transient failures.
			logger.ErrorKV(ctx, "Publish failed", "attempt", n, "attempts", attempts, "error", err)

			return false
		}

		logger.Infof(ctx, "Alarm published: %s", event)

		return true
	}

	// Attempt immediately before starting retry loop.
	if attempt(1) {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 2; n <= attempts; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if attempt(n) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", errPublishFailed, attempts, lastErr)
}
