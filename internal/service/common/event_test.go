//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/logger"
)

// TestBuildParameters covers raw passthrough, pair encoding and the error cases.
func TestBuildParameters(t *testing.T) {
	t.Parallel()

	got, err := BuildParameters(`{"cell":3}`, nil)
	require.NoError(t, err)
	require.Equal(t, `{"cell":3}`, got)

	got, err = BuildParameters("", []string{"volts=2.9", "cell=3", "note=a=b", "cell=4"})
	require.NoError(t, err)
	require.Equal(t, `{"cell":"4","note":"a=b","volts":"2.9"}`, got)

	_, err = BuildParameters("raw", []string{"a=b"})
	require.ErrorIs(t, err, errParametersConflict)

	_, err = BuildParameters("", []string{"novalue"})
	require.ErrorIs(t, err, errInvalidParam)

	_, err = BuildParameters("", []string{"=value"})
	require.ErrorIs(t, err, errInvalidParam)
}

// TestEventOptions_Build chooses between the explicit and process reporter.
func TestEventOptions_Build(t *testing.T) {
	t.Parallel()

	identity := alarm.IdentityFunc(func() string { return "alarm-report@boat" })

	opts := &EventOptions{
		AlarmName:   "battery-low",
		Raised:      true,
		Description: "cell voltage under threshold",
		Params:      []string{"cell=3"},
		Severity:    200,
	}

	event, err := opts.Build(identity)
	require.NoError(t, err)
	require.Equal(
		t,
		alarm.New("battery-low", true, "alarm-report@boat", "cell voltage under threshold", `{"cell":"3"}`, 200),
		event,
	)

	opts.Reporter = "node-42"

	event, err = opts.Build(identity)
	require.NoError(t, err)
	require.Equal(t, "node-42", event.Reporter())

	opts.Parameters = "raw"

	_, err = opts.Build(identity)
	require.ErrorIs(t, err, errParametersConflict)
}

// TestApplyLogLevel falls back to info for unknown levels.
//
//nolint:paralleltest // Mutates the global log level.
func TestApplyLogLevel(t *testing.T) {
	previous := logger.Level()
	t.Cleanup(func() { logger.SetLevel(previous) })

	ApplyLogLevel(context.Background(), "debug")
	require.Equal(t, zapcore.DebugLevel, logger.Level())

	ApplyLogLevel(context.Background(), "chatty")
	require.Equal(t, zapcore.InfoLevel, logger.Level())
}
