package wire

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeText serializes m as printable text: base64 for FormatProto, raw JSON for FormatJSON.
func EncodeText(m Message, format Format) (string, error) {
	data, err := Marshal(m, format)
	if err != nil {
		return "", err
	}

	if format == FormatProto {
		return base64.StdEncoding.EncodeToString(data), nil
	}

	return string(data), nil
}

// DecodeText is the inverse of EncodeText. Surrounding whitespace is ignored.
func DecodeText(text string, format Format) (Message, error) {
	text = strings.TrimSpace(text)

	if format != FormatProto {
		return Unmarshal([]byte(text), format)
	}

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return Message{}, fmt.Errorf("decode base64: %w", err)
	}

	return Unmarshal(data, format)
}
