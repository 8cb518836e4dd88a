package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
)

// Frame is one traced tick.
type Frame struct {
	Tick     int              `msgpack:"tick"`
	Events   []core.Event     `msgpack:"events,omitempty"`
	Snapshot pinball.Snapshot `msgpack:"snapshot"`
}

// TraceWriter streams frames as consecutive msgpack values.
type TraceWriter struct {
	enc *msgpack.Encoder
	n   int
}

// NewTraceWriter creates a writer that encodes frames to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &TraceWriter{enc: enc}
}

// Write encodes one frame.
func (t *TraceWriter) Write(f Frame) error {
	if err := t.enc.Encode(&f); err != nil {
		return fmt.Errorf("sim: cannot encode frame %d: %w", f.Tick, err)
	}
	t.n++
	return nil
}

// Count returns the number of frames written.
func (t *TraceWriter) Count() int {
	return t.n
}

// ReadTrace decodes every frame from r.
func ReadTrace(r io.Reader) ([]Frame, error) {
	dec := msgpack.NewDecoder(r)
	var frames []Frame
	for {
		var f Frame
		err := dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("sim: cannot decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}
