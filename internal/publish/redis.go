package publish

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// Stream entry field names.
const (
	FieldAlarmName = "alarm_name"
	FieldRaised    = "raised"
	FieldSeverity  = "severity"
	FieldEncoding  = "encoding"
	FieldPayload   = "payload"
)

// errMissingPayload is returned for stream entries without a payload field.
var errMissingPayload = errors.New("stream entry has no payload")

// Redis appends encoded events to a Redis stream.
type Redis struct {
	client *redis.Client
	stream string
	format wire.Format
}

// NewRedis publishes to stream through client.
func NewRedis(client *redis.Client, stream string, format wire.Format) *Redis {
	return &Redis{
		client: client,
		stream: stream,
		format: format,
	}
}

// Publish adds one stream entry. The name, raised and severity fields are
// duplicated next to the payload so consumers can filter without decoding.
func (r *Redis) Publish(ctx context.Context, event alarm.Event) error {
	payload, err := wire.Marshal(wire.FromEvent(event), r.format)
	if err != nil {
		return err
	}

	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			FieldAlarmName: event.Name(),
			FieldRaised:    strconv.FormatBool(event.Raised()),
			FieldSeverity:  strconv.Itoa(int(event.Severity())),
			FieldEncoding:  r.format.String(),
			FieldPayload:   payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", r.stream, err)
	}

	return nil
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}

// DecodeStreamValues rebuilds an event from the values of a stream entry.
func DecodeStreamValues(values map[string]any) (alarm.Event, error) {
	payload, ok := values[FieldPayload].(string)
	if !ok {
		return alarm.Event{}, errMissingPayload
	}

	encoding, _ := values[FieldEncoding].(string)

	format, err := wire.ParseFormat(encoding)
	if err != nil {
		return alarm.Event{}, err
	}

	message, err := wire.Unmarshal([]byte(payload), format)
	if err != nil {
		return alarm.Event{}, err
	}

	return wire.ToEvent(message), nil
}
