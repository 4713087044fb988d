package wire

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	pb "github.com/oshokin/alarm-relay/internal/pb/v1"
)

// Format selects the serialization of a Message.
type Format string

const (
	// FormatProto is binary protobuf.
	FormatProto Format = "proto"
	// FormatJSON is protojson with proto field names.
	FormatJSON Format = "json"
)

var (
	// ErrSeverityOutOfRange is returned when a decoded severity does not fit in a byte.
	ErrSeverityOutOfRange = errors.New("severity out of range")
	// ErrUnknownFormat is returned for formats other than proto and json.
	ErrUnknownFormat = errors.New("unknown wire format")

	// errNilMessage is returned when decoding a nil protobuf message.
	errNilMessage = errors.New("message is nil")
	// errUnexpectedMessage is returned when decoding a message that is not alarms.v1.Alarm.
	errUnexpectedMessage = errors.New("unexpected message type")
)

//nolint:gochecknoglobals // Read-only encoder settings.
var (
	jsonMarshalOptions = protojson.MarshalOptions{
		UseProtoNames:   true,
		EmitUnpopulated: true,
	}
	protoMarshalOptions = proto.MarshalOptions{
		Deterministic: true,
	}
)

// ParseFormat converts user input to a Format. An empty string selects FormatProto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatProto:
		return FormatProto, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// ToProto builds an alarms.v1.Alarm message from m.
func ToProto(m Message) *dynamicpb.Message {
	msg := pb.NewAlarm()

	msg.Set(pb.AlarmField(pb.AlarmNameFieldNumber), protoreflect.ValueOfString(m.AlarmName))
	msg.Set(pb.AlarmField(pb.RaisedFieldNumber), protoreflect.ValueOfBool(m.Raised))
	msg.Set(pb.AlarmField(pb.NodeNameFieldNumber), protoreflect.ValueOfString(m.NodeName))
	msg.Set(pb.AlarmField(pb.ProblemDescriptionFieldNumber), protoreflect.ValueOfString(m.ProblemDescription))
	msg.Set(pb.AlarmField(pb.ParametersFieldNumber), protoreflect.ValueOfString(m.Parameters))
	msg.Set(pb.AlarmField(pb.SeverityFieldNumber), protoreflect.ValueOfUint32(uint32(m.Severity)))

	return msg
}

// FromProto reads a Message from an alarms.v1.Alarm message.
// A severity above 255 is rejected rather than truncated.
func FromProto(msg proto.Message) (Message, error) {
	if msg == nil {
		return Message{}, errNilMessage
	}

	reflected := msg.ProtoReflect()

	descriptor := reflected.Descriptor()
	if descriptor.FullName() != pb.Alarm.FullName() {
		return Message{}, fmt.Errorf("%w: %s", errUnexpectedMessage, descriptor.FullName())
	}

	// Look fields up on the message's own descriptor: it may come from another registry.
	get := func(number protoreflect.FieldNumber) protoreflect.Value {
		return reflected.Get(descriptor.Fields().ByNumber(number))
	}

	severity := get(pb.SeverityFieldNumber).Uint()
	if severity > math.MaxUint8 {
		return Message{}, fmt.Errorf("%w: %d", ErrSeverityOutOfRange, severity)
	}

	return Message{
		AlarmName:          get(pb.AlarmNameFieldNumber).String(),
		Raised:             get(pb.RaisedFieldNumber).Bool(),
		NodeName:           get(pb.NodeNameFieldNumber).String(),
		ProblemDescription: get(pb.ProblemDescriptionFieldNumber).String(),
		Parameters:         get(pb.ParametersFieldNumber).String(),
		Severity:           uint8(severity),
	}, nil
}

// Marshal serializes m in the given format.
func Marshal(m Message, format Format) ([]byte, error) {
	msg := ToProto(m)

	switch format {
	case FormatProto:
		data, err := protoMarshalOptions.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("marshal proto: %w", err)
		}

		return data, nil
	case FormatJSON:
		data, err := jsonMarshalOptions.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Unmarshal decodes data in the given format.
func Unmarshal(data []byte, format Format) (Message, error) {
	msg := pb.NewAlarm()

	switch format {
	case FormatProto:
		if err := proto.Unmarshal(data, msg); err != nil {
			return Message{}, fmt.Errorf("unmarshal proto: %w", err)
		}
	case FormatJSON:
		if err := protojson.Unmarshal(data, msg); err != nil {
			return Message{}, fmt.Errorf("unmarshal json: %w", err)
		}
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return FromProto(msg)
}
