package publish

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// TestWriter_Publish prints one decodable line per event.
func TestWriter_Publish(t *testing.T) {
	t.Parallel()

	for _, format := range []wire.Format{wire.FormatProto, wire.FormatJSON} {
		var out bytes.Buffer

		w := NewWriter(&out, format)

		events := []alarm.Event{
			alarm.New("battery-low", true, "node-42", "", `{"cell":3}`, 200),
			alarm.New("kill", false, "/mission", "", "", 0),
		}

		for _, event := range events {
			require.NoError(t, w.Publish(context.Background(), event))
		}

		require.NoError(t, w.Close())

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, len(events))

		for i, line := range lines {
			m, err := wire.DecodeText(line, format)
			require.NoError(t, err)
			require.Equal(t, events[i], wire.ToEvent(m))
		}
	}
}
