//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
)

// EventOptions describes one alarm event as given on the command line.
type EventOptions struct {
	// AlarmName identifies the alarm.
	AlarmName string
	// Raised is false when the alarm is being cleared.
	Raised bool
	// Reporter names the reporting process explicitly; empty means the process identity.
	Reporter string
	// Description is the human-readable explanation.
	Description string
	// Parameters is a raw parameters payload.
	Parameters string
	// Params are key=value pairs encoded as a JSON object; exclusive with Parameters.
	Params []string
	// Severity is the alarm severity.
	Severity uint8
}

var (
	// errParametersConflict is returned when both Parameters and Params are set.
	errParametersConflict = errors.New("raw parameters and key=value params are mutually exclusive")
	// errInvalidParam is returned for params without a key or '='.
	errInvalidParam = errors.New("param must look like key=value")
)

// Build creates the event. An explicit Reporter uses the full constructor,
// otherwise the reporter comes from identity.
func (o *EventOptions) Build(identity alarm.Identity) (alarm.Event, error) {
	parameters, err := BuildParameters(o.Parameters, o.Params)
	if err != nil {
		return alarm.Event{}, err
	}

	if o.Reporter != "" {
		return alarm.New(o.AlarmName, o.Raised, o.Reporter, o.Description, parameters, o.Severity), nil
	}

	return alarm.NewFromProcess(identity, o.AlarmName, o.Raised, o.Description, parameters, o.Severity), nil
}

// BuildParameters returns raw unchanged, or a JSON object built from key=value pairs.
// Keys are sorted in the output; a repeated key keeps its last value.
func BuildParameters(raw string, pairs []string) (string, error) {
	if len(pairs) == 0 {
		return raw, nil
	}

	if raw != "" {
		return "", errParametersConflict
	}

	object := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")

		key = strings.TrimSpace(key)
		if !found || key == "" {
			return "", fmt.Errorf("%w: %q", errInvalidParam, pair)
		}

		object[key] = value
	}

	data, err := json.Marshal(object)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}

	return string(data), nil
}
