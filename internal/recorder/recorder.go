// Package recorder buffers physics frames per play and appends them to the
// drive-level sequence when the play completes.
package recorder

import (
	"github.com/supersim-ai/drivesim/internal/queue"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// Recorder collects the frames of one drive. Frames recorded for a play stay
// in a private buffer until Flush; Discard drops them. The drive-level
// sequence is append-only.
type Recorder struct {
	play  int
	hud   core.HUD
	open  bool
	buf   *queue.Queue[core.Frame]
	drive []core.Frame
}

// New returns an empty recorder sized for ticksPerPlay frames per play.
func New(ticksPerPlay int) *Recorder {
	return &Recorder{buf: queue.New[core.Frame](ticksPerPlay)}
}

// BeginPlay starts a new play buffer tagged with index and hud.
// Any unflushed frames of a previous play are dropped.
func (r *Recorder) BeginPlay(index int, hud core.HUD) {
	r.buf.Clear()
	r.play = index
	r.hud = hud
	r.open = true
}

// Record stamps f with the current play and HUD and buffers it.
// Frames arriving outside a play are ignored.
func (r *Recorder) Record(f core.Frame) {
	if !r.open {
		return
	}
	f.Play = r.play
	f.HUD = r.hud
	r.buf.Push(f)
}

// Pending returns the number of buffered, unflushed frames.
func (r *Recorder) Pending() int { return r.buf.Len() }

// Flush appends the play buffer to the drive sequence and returns how many
// frames were moved.
func (r *Recorder) Flush() int {
	frames := r.buf.Drain()
	r.drive = append(r.drive, frames...)
	r.open = false
	return len(frames)
}

// Discard drops the in-progress play.
func (r *Recorder) Discard() {
	r.buf.Clear()
	r.open = false
}

// Len returns the number of frames in the drive sequence.
func (r *Recorder) Len() int { return len(r.drive) }

// Frames returns a copy of the drive sequence.
func (r *Recorder) Frames() []core.Frame {
	out := make([]core.Frame, len(r.drive))
	copy(out, r.drive)
	return out
}
