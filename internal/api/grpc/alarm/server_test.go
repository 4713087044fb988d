package alarm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"

	domain "github.com/oshokin/alarm-relay/internal/domain/alarm"
	pb "github.com/oshokin/alarm-relay/internal/pb/v1"
	"github.com/oshokin/alarm-relay/internal/wire"
)

var errTestHandler = errors.New("test handler error")

// recordingHandler implements Handler and keeps every received event.
type recordingHandler struct {
	// err is returned from every HandleAlarm call when set.
	err error

	mu     sync.Mutex
	events []domain.Event
}

// HandleAlarm records the event and returns the configured error.
func (h *recordingHandler) HandleAlarm(_ context.Context, event domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, event)

	return h.err
}

// received returns a copy of the recorded events.
func (h *recordingHandler) received() []domain.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]domain.Event(nil), h.events...)
}

// TestServer_Report_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Report_Validation(t *testing.T) {
	t.Parallel()

	handler := new(recordingHandler)
	s := NewServer(handler)

	_, err := s.Report(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	request := pb.NewAlarm()
	request.Set(pb.AlarmField(pb.SeverityFieldNumber), protoreflect.ValueOfUint32(1000))

	_, err = s.Report(context.Background(), request)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	require.Empty(t, handler.received())
}

// TestServer_Report_HandlerError maps handler failures to Internal.
func TestServer_Report_HandlerError(t *testing.T) {
	t.Parallel()

	s := NewServer(&recordingHandler{err: errTestHandler})

	event := domain.New("kill", true, "/mission", "", "", 0)

	_, err := s.Report(context.Background(), wire.ToProto(wire.FromEvent(event)))
	require.Equal(t, codes.Internal, status.Code(err))

	_, err = NewServer(nil).Report(context.Background(), wire.ToProto(wire.FromEvent(event)))
	require.Equal(t, codes.Unavailable, status.Code(err))
}

// TestServer_Report passes the decoded event to the handler unchanged.
func TestServer_Report(t *testing.T) {
	t.Parallel()

	handler := new(recordingHandler)
	s := NewServer(handler)

	event := domain.New("battery-low", true, "node-42", "cell voltage under threshold", `{"cell":3,"volts":2.9}`, 200)

	response, err := s.Report(context.Background(), wire.ToProto(wire.FromEvent(event)))
	require.NoError(t, err)
	require.NotNil(t, response)
	require.Equal(t, []domain.Event{event}, handler.received())
}

// TestHandlerFunc adapts a plain function.
func TestHandlerFunc(t *testing.T) {
	t.Parallel()

	var got domain.Event

	h := HandlerFunc(func(_ context.Context, event domain.Event) error {
		got = event
		return nil
	})

	want := domain.New("a", false, "b", "c", "d", 9)
	require.NoError(t, h.HandleAlarm(context.Background(), want))
	require.Equal(t, want, got)
}
