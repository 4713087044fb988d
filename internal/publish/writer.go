package publish

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oshokin/alarm-relay/internal/domain/alarm"
	"github.com/oshokin/alarm-relay/internal/wire"
)

// Writer prints one encoded event per line.
type Writer struct {
	// mu serializes writes so lines never interleave.
	mu     sync.Mutex
	out    io.Writer
	format wire.Format
}

// NewWriter prints events to out in the given format.
func NewWriter(out io.Writer, format wire.Format) *Writer {
	return &Writer{
		out:    out,
		format: format,
	}
}

// Publish writes the encoded event followed by a newline.
func (w *Writer) Publish(_ context.Context, event alarm.Event) error {
	text, err := wire.EncodeText(wire.FromEvent(event), w.format)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err = fmt.Fprintln(w.out, text); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

// Close is a no-op; the underlying writer is owned by the caller.
func (w *Writer) Close() error {
	return nil
}
