package wire

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEncodeDecodeText round-trips the printable forms of both formats.
func TestEncodeDecodeText(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatProto, FormatJSON} {
		for name, e := range sampleEvents() {
			text, err := EncodeText(FromEvent(e), format)
			require.NoError(t, err, "%s/%s", format, name)

			m, err := DecodeText("  "+text+"\n", format)
			require.NoError(t, err, "%s/%s", format, name)
			require.Equal(t, FromEvent(e), m, "%s/%s", format, name)
		}
	}
}

// TestEncodeText_ProtoIsBase64 checks the proto text form is the base64 of the binary payload.
func TestEncodeText_ProtoIsBase64(t *testing.T) {
	t.Parallel()

	m := Message{AlarmName: "kill", Raised: true, Severity: 1}

	text, err := EncodeText(m, FormatProto)
	require.NoError(t, err)

	data, err := base64.StdEncoding.DecodeString(text)
	require.NoError(t, err)

	binary, err := Marshal(m, FormatProto)
	require.NoError(t, err)
	require.Equal(t, binary, data)
}

// TestDecodeText_Errors rejects broken base64 and unknown formats.
func TestDecodeText_Errors(t *testing.T) {
	t.Parallel()

	_, err := DecodeText("***", FormatProto)
	require.Error(t, err)

	_, err = DecodeText("{}", Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = EncodeText(Message{}, Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}
