package alarm

import "fmt"

// Event is a snapshot of an alarm's state at one point in time.
// The zero value is a cleared alarm with an empty name.
type Event struct {
	// name identifies the alarm condition across events.
	name string
	// reporter identifies the process that produced the event.
	reporter string
	// description is a human-readable explanation of the condition.
	description string
	// parameters is an opaque machine-readable payload, usually JSON.
	parameters string
	// raised is true while the condition is active.
	raised bool
	// severity is the relative urgency, interpreted by consumers.
	severity uint8
}

// New returns an event holding exactly the supplied values.
// Nothing is validated here: empty names, unknown reporters and any severity are accepted.
func New(name string, raised bool, reporter, description, parameters string, severity uint8) Event {
	return Event{
		name:        name,
		reporter:    reporter,
		description: description,
		parameters:  parameters,
		raised:      raised,
		severity:    severity,
	}
}

// NewFromProcess returns an event reported by the current process as resolved by identity.
// A nil identity leaves the reporter empty.
func NewFromProcess(identity Identity, name string, raised bool, description, parameters string, severity uint8) Event {
	var reporter string
	if identity != nil {
		reporter = identity.ProcessName()
	}

	return New(name, raised, reporter, description, parameters, severity)
}

// Name returns the alarm name.
func (e Event) Name() string { return e.name }

// Raised reports whether the alarm condition is active.
func (e Event) Raised() bool { return e.raised }

// Reporter returns the identity of the process that produced the event.
func (e Event) Reporter() string { return e.reporter }

// Description returns the human-readable explanation.
func (e Event) Description() string { return e.description }

// Parameters returns the opaque parameter payload.
func (e Event) Parameters() string { return e.parameters }

// Severity returns the alarm severity.
func (e Event) Severity() uint8 { return e.severity }

// String renders the event for logs, e.g. `battery-low raised by node-42 (severity 200)`.
func (e Event) String() string {
	status := "cleared"
	if e.raised {
		status = "raised"
	}

	reporter := e.reporter
	if reporter == "" {
		reporter = "<unknown>"
	}

	return fmt.Sprintf("%s %s by %s (severity %d)", e.name, status, reporter, e.severity)
}
