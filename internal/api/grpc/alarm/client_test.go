package alarm

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	domain "github.com/oshokin/alarm-relay/internal/domain/alarm"
	pb "github.com/oshokin/alarm-relay/internal/pb/v1"
)

const bufferSize = 1 << 20

// startBufconn serves the alarm service on an in-memory listener and returns a connected client.
func startBufconn(t *testing.T, handler Handler, serverOpts ...grpc.ServerOption) *Client {
	t.Helper()

	listener := bufconn.Listen(bufferSize)

	server := grpc.NewServer(serverOpts...)
	Register(server, handler)

	go func() {
		_ = server.Serve(listener) //nolint:errcheck // Stopped by cleanup.
	}()

	t.Cleanup(server.Stop)

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return listener.DialContext(ctx)
	}

	client, err := Dial(
		context.Background(),
		"passthrough:///bufnet",
		WithCallTimeout(3*time.Second),
		WithDialOptions(grpc.WithContextDialer(dialer)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.ErrorIs(t, err, errAddressRequired)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_ReportNotConnected rejects reports on a zero client.
func TestClient_ReportNotConnected(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, new(Client).Report(context.Background(), domain.Event{}), errNotConnected)
	require.NoError(t, (*Client)(nil).Close())
}

// TestClient_Report_Roundtrip sends events over an in-memory connection and checks what the handler saw.
func TestClient_Report_Roundtrip(t *testing.T) {
	t.Parallel()

	handler := new(recordingHandler)
	client := startBufconn(t, handler)

	events := []domain.Event{
		domain.New("battery-low", true, "node-42", "cell voltage under threshold", `{"cell":3,"volts":2.9}`, 200),
		domain.New("battery-low", false, "node-42", "", "", 0),
		domain.New("température", true, "/thermal", "überhitzt", "", 255),
	}

	for _, event := range events {
		require.NoError(t, client.Report(context.Background(), event))
	}

	require.Equal(t, events, handler.received())
}

// TestClient_Report_HandlerError surfaces the server status to the caller.
func TestClient_Report_HandlerError(t *testing.T) {
	t.Parallel()

	client := startBufconn(t, &recordingHandler{err: errTestHandler})

	err := client.Report(context.Background(), domain.New("kill", true, "", "", "", 1))
	require.Error(t, err)
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestRegister_Interceptor checks the method path seen by unary interceptors.
func TestRegister_Interceptor(t *testing.T) {
	t.Parallel()

	methods := make(chan string, 1)

	interceptor := func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		methods <- info.FullMethod

		return handler(ctx, req)
	}

	handler := new(recordingHandler)
	client := startBufconn(t, handler, grpc.UnaryInterceptor(interceptor))

	require.NoError(t, client.Report(context.Background(), domain.New("kill", true, "", "", "", 1)))
	require.Equal(t, pb.ReportFullMethodName, <-methods)
	require.Len(t, handler.received(), 1)
}
