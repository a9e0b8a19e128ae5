package streaming

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/supersim-ai/drivesim/pkg/core"
)

// Writer emits envelopes as newline-delimited JSON. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	bw  *bufio.Writer
	seq int
}

// NewWriter creates a writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Send writes one message and flushes it.
func (w *Writer) Send(msgType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", msgType, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	env := Envelope{Type: msgType, Seq: w.seq, Payload: raw}
	line, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	if _, err := w.bw.Write(append(line, '\n')); err != nil {
		return err
	}
	w.seq++
	return w.bw.Flush()
}

// WriteDrive replays a finished drive: drive_start, then each play followed
// by its frames when includeFrames is set, then drive_end.
func (w *Writer) WriteDrive(r core.DriveResult, includeFrames bool) error {
	start := DriveStartPayload{ID: r.ID, Team: r.Team, Seed: r.Seed, StartedAt: r.StartedAt}
	if len(r.Plays) > 0 {
		start.Start = core.HUDFromState(r.Plays[0].Before)
	}
	if err := w.Send(TypeDriveStart, start); err != nil {
		return err
	}

	next := 0
	for _, p := range r.Plays {
		if err := w.Send(TypePlay, PlayPayload{Play: p}); err != nil {
			return err
		}
		if !includeFrames {
			continue
		}
		for next < len(r.Frames) && r.Frames[next].Play <= p.Index {
			if r.Frames[next].Play == p.Index {
				if err := w.Send(TypeFrame, FramePayload{Frame: r.Frames[next]}); err != nil {
					return err
				}
			}
			next++
		}
	}

	return w.Send(TypeDriveEnd, DriveEndPayload{
		ID:            r.ID,
		Outcome:       r.Outcome,
		Ending:        r.Ending,
		XP:            r.XP,
		FinalYardLine: r.FinalYardLine,
		Score:         r.Score,
		Stats:         r.Stats,
		Log:           r.Log,
	})
}

// Reader decodes a stream written by Writer.
type Reader struct {
	dec *json.Decoder
}

// NewReader creates a reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(r)}
}

// Next returns the next envelope, or io.EOF at the end of the stream.
func (r *Reader) Next() (Envelope, error) {
	var env Envelope
	if err := r.dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return env, io.EOF
		}
		return env, fmt.Errorf("decoding envelope: %w", err)
	}
	return env, nil
}

// Decode unmarshals an envelope's payload into v.
func Decode(env Envelope, v any) error {
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("decoding %s payload: %w", env.Type, err)
	}
	return nil
}
