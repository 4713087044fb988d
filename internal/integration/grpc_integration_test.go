package integration

import (
	"context"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-relay/internal/config"
	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/service/common"
	"github.com/oshokin/alarm-relay/internal/service/listener"
	"github.com/oshokin/alarm-relay/internal/service/reporter"
)

// collector is a listener handler that keeps received events.
type collector struct {
	mu     sync.Mutex
	events []alarm.Event
}

func (c *collector) HandleAlarm(_ context.Context, event alarm.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)

	return nil
}

func (c *collector) received() []alarm.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]alarm.Event(nil), c.events...)
}

// startListener runs alarm-listener on a free local port and returns its address and settings path.
func startListener(t *testing.T, handler *collector) (addr, cfgPath string) {
	t.Helper()

	lc := net.ListenConfig{}

	lis, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr = lis.Addr().String()
	cfgPath = filepath.Join(t.TempDir(), "settings.yaml")

	// Reporter and listener share one settings file, as on a real node.
	require.NoError(
		t,
		config.Save(cfgPath, &config.Config{
			ServerAddress: addr,
			Timeout:       3 * time.Second,
			Attempts:      2,
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = listener.Run(ctx, &listener.Options{ //nolint:errcheck // Stopped by cleanup.
			ConfigPath: cfgPath,
			Handler:    handler,
			Listener:   lis,
		})
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return addr, cfgPath
}

// TestGRPC_ReportRaiseAndClear sends a raise and a clear through the real reporter and listener.
func TestGRPC_ReportRaiseAndClear(t *testing.T) {
	t.Parallel()

	handler := new(collector)
	_, cfgPath := startListener(t, handler)

	ctx := context.Background()

	raise := common.EventOptions{
		AlarmName:   "battery-low",
		Raised:      true,
		Reporter:    "node-42",
		Description: "cell voltage under threshold",
		Parameters:  `{"cell":3,"volts":2.9}`,
		Severity:    200,
	}

	require.NoError(t, reporter.Run(ctx, &reporter.Options{ConfigPath: cfgPath, Event: raise}))

	cleared := raise
	cleared.Raised = false
	cleared.Description = ""
	cleared.Parameters = ""
	cleared.Severity = 0

	require.NoError(t, reporter.Run(ctx, &reporter.Options{ConfigPath: cfgPath, Event: cleared}))

	require.Equal(t, []alarm.Event{
		alarm.New("battery-low", true, "node-42", "cell voltage under threshold", `{"cell":3,"volts":2.9}`, 200),
		alarm.New("battery-low", false, "node-42", "", "", 0),
	}, handler.received())
}

// TestGRPC_ProcessIdentity reports without an explicit reporter and expects the process identity.
func TestGRPC_ProcessIdentity(t *testing.T) {
	t.Parallel()

	handler := new(collector)
	_, cfgPath := startListener(t, handler)

	err := reporter.Run(context.Background(), &reporter.Options{
		ConfigPath: cfgPath,
		Event:      common.EventOptions{AlarmName: "kill", Raised: true, Severity: 1},
	})
	require.NoError(t, err)

	events := handler.received()
	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].Reporter())
	require.Contains(t, events[0].Reporter(), "@")
}

// TestGRPC_ServerOverride points the reporter at the listener with the --server override.
func TestGRPC_ServerOverride(t *testing.T) {
	t.Parallel()

	handler := new(collector)
	addr, _ := startListener(t, handler)

	// A settings file that selects grpc without any address of its own.
	cfgPath := filepath.Join(t.TempDir(), "reporter.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{Sink: config.SinkStdout}))

	err := reporter.Run(context.Background(), &reporter.Options{
		ConfigPath:    cfgPath,
		ServerAddress: addr,
		Sink:          config.SinkGRPC,
		Event:         common.EventOptions{AlarmName: "disk-full", Raised: true, Reporter: "/storage", Severity: 3},
	})
	require.NoError(t, err)

	require.Equal(t, []alarm.Event{alarm.New("disk-full", true, "/storage", "", "", 3)}, handler.received())
}
