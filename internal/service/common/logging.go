package common

import (
	"context"

	"github.com/oshokin/alarm-relay/internal/logger"
)

// ApplyLogLevel sets the global log level, warning about unknown values.
func ApplyLogLevel(ctx context.Context, level string) {
	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, using info", "log_level", level)
	}

	logger.SetLevel(parsed)
}
