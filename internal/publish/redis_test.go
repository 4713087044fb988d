package publish

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// setupTestRedis starts an in-memory Redis server and a client connected to it.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// TestRedis_Publish appends entries and decodes them back for both encodings.
func TestRedis_Publish(t *testing.T) {
	t.Parallel()

	for _, format := range []wire.Format{wire.FormatProto, wire.FormatJSON} {
		client := setupTestRedis(t)
		publisher := NewRedis(client, "alarms", format)

		events := []alarm.Event{
			alarm.New("battery-low", true, "node-42", "cell voltage under threshold", `{"cell":3,"volts":2.9}`, 200),
			alarm.New("battery-low", false, "node-42", "", "", 0),
		}

		for _, event := range events {
			require.NoError(t, publisher.Publish(context.Background(), event), format)
		}

		entries, err := client.XRange(context.Background(), "alarms", "-", "+").Result()
		require.NoError(t, err)
		require.Len(t, entries, len(events))

		for i, entry := range entries {
			require.Equal(t, events[i].Name(), entry.Values[FieldAlarmName])
			require.Equal(t, format.String(), entry.Values[FieldEncoding])

			got, err := DecodeStreamValues(entry.Values)
			require.NoError(t, err)
			require.Equal(t, events[i], got)
		}

		require.Equal(t, "true", entries[0].Values[FieldRaised])
		require.Equal(t, "200", entries[0].Values[FieldSeverity])
		require.Equal(t, "false", entries[1].Values[FieldRaised])
	}
}

// TestRedis_PublishFailure reports errors from a closed server.
func TestRedis_PublishFailure(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	publisher := NewRedis(client, "alarms", wire.FormatProto)

	mr.Close()

	err := publisher.Publish(context.Background(), alarm.New("kill", true, "", "", "", 1))
	require.Error(t, err)
	require.NoError(t, publisher.Close())
}

// TestDecodeStreamValues_Errors covers entries that cannot be decoded.
func TestDecodeStreamValues_Errors(t *testing.T) {
	t.Parallel()

	_, err := DecodeStreamValues(map[string]any{})
	require.ErrorIs(t, err, errMissingPayload)

	_, err = DecodeStreamValues(map[string]any{FieldPayload: "{}", FieldEncoding: "xml"})
	require.ErrorIs(t, err, wire.ErrUnknownFormat)

	_, err = DecodeStreamValues(map[string]any{FieldPayload: "{", FieldEncoding: "json"})
	require.Error(t, err)
}
