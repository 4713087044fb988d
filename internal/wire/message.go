package wire

import (
	"github.com/oshokin/alarm-relay/internal/domain/alarm"
)

// Message is the wire form of an alarm event.
// Field order and names follow the alarms.v1.Alarm schema.
type Message struct {
	// AlarmName maps to the event name.
	AlarmName string `yaml:"alarm_name"`
	// Raised maps to the event raised flag.
	Raised bool `yaml:"raised"`
	// NodeName maps to the event reporter.
	NodeName string `yaml:"node_name"`
	// ProblemDescription maps to the event description.
	ProblemDescription string `yaml:"problem_description"`
	// Parameters maps to the event parameters.
	Parameters string `yaml:"parameters"`
	// Severity maps to the event severity.
	Severity uint8 `yaml:"severity"`
}

// FromEvent converts a domain event to its wire form.
func FromEvent(e alarm.Event) Message {
	return Message{
		AlarmName:          e.Name(),
		Raised:             e.Raised(),
		NodeName:           e.Reporter(),
		ProblemDescription: e.Description(),
		Parameters:         e.Parameters(),
		Severity:           e.Severity(),
	}
}

// ToEvent converts a wire message to a domain event.
func ToEvent(m Message) alarm.Event {
	return alarm.New(m.AlarmName, m.Raised, m.NodeName, m.ProblemDescription, m.Parameters, m.Severity)
}

// Converter is the alarm.Converter for Message.
type Converter struct{}

var _ alarm.Converter[Message] = Converter{}

// ToWire converts e to a Message.
func (Converter) ToWire(e alarm.Event) Message {
	return FromEvent(e)
}

// FromWire converts m to an event.
func (Converter) FromWire(m Message) alarm.Event {
	return ToEvent(m)
}
