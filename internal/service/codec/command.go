package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-relay/internal/identity"
	"github.com/oshokin/alarm-relay/internal/logger"
	"github.com/oshokin/alarm-relay/internal/service/common"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Format is the wire format name, proto when empty.
	Format string
	// Event describes the alarm to encode.
	Event common.EventOptions
}

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// Format is the wire format name, proto when empty.
	Format string
	// Text is the encoded payload; read from the input when empty.
	Text string
	// Raw treats the payload as the bytes stored by the mqtt and redis sinks
	// rather than the printable form: no base64 and no whitespace trimming.
	Raw bool
}

// errEmptyInput is returned when there is nothing to decode.
var errEmptyInput = errors.New("nothing to decode")

// Encode writes the encoded event as a single line to out.
func Encode(ctx context.Context, out io.Writer, opts *EncodeOptions) error {
	ctx = logger.WithName(ctx, "encode")

	format, err := wire.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	event, err := opts.Event.Build(identity.New(""))
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}

	text, err := wire.EncodeText(wire.FromEvent(event), format)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	logger.DebugKV(ctx, "Event encoded", "format", format, "alarm_name", event.Name())

	if _, err = fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// Decode parses an encoded event and writes it to out as YAML.
func Decode(ctx context.Context, in io.Reader, out io.Writer, opts *DecodeOptions) error {
	ctx = logger.WithName(ctx, "decode")

	format, err := wire.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	payload := []byte(opts.Text)
	if len(payload) == 0 && in != nil {
		payload, err = io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	message, err := decodePayload(payload, format, opts.Raw)
	if err != nil {
		return err
	}

	logger.DebugKV(
		ctx,
		"Event decoded",
		"format", format,
		"raw", opts.Raw,
		"alarm_name", message.AlarmName,
		"raised", message.Raised,
		"node_name", message.NodeName,
		"severity", message.Severity,
	)

	return writeYAML(out, message)
}

// decodePayload parses payload either as stored bytes or as printable text.
func decodePayload(payload []byte, format wire.Format, raw bool) (wire.Message, error) {
	if raw {
		// Every byte belongs to the payload, including whitespace.
		if len(payload) == 0 {
			return wire.Message{}, errEmptyInput
		}

		message, err := wire.Unmarshal(payload, format)
		if err != nil {
			return wire.Message{}, fmt.Errorf("decode event: %w", err)
		}

		return message, nil
	}

	text := string(payload)
	if strings.TrimSpace(text) == "" {
		return wire.Message{}, errEmptyInput
	}

	message, err := wire.DecodeText(text, format)
	if err != nil {
		return wire.Message{}, fmt.Errorf("decode event: %w", err)
	}

	return message, nil
}

// writeYAML renders m using the wire field names.
func writeYAML(out io.Writer, m wire.Message) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return encoder.Close()
}
