package coach

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single coach call.
const DefaultTimeout = 5 * time.Second

// Guarded calls Coach under a timeout and falls back to Fallback on any
// failure. It never returns an error.
type Guarded struct {
	Coach    Coach
	Fallback Heuristic
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// NewGuarded wraps c. A nil c always uses the fallback.
func NewGuarded(c Coach, fallback Heuristic, timeout time.Duration, logger zerolog.Logger) *Guarded {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Guarded{Coach: c, Fallback: fallback, Timeout: timeout, Logger: logger}
}

type callResult struct {
	d   Decision
	err error
}

// Call returns the coach's decision, or the heuristic's when the coach
// errors, times out or names an invalid play. fallback reports which one.
func (g *Guarded) Call(ctx context.Context, s Situation) (d Decision, fallback bool) {
	if g.Coach == nil {
		return g.Fallback.Decide(s), true
	}

	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	ch := make(chan callResult, 1)
	go func() {
		d, err := g.Coach.CallPlay(ctx, s)
		ch <- callResult{d: d, err: err}
	}()

	var err error
	select {
	case r := <-ch:
		d, err = r.d, r.err
		if err == nil && !d.Call.Type.Valid() {
			err = fmt.Errorf("%w: %q", ErrInvalidPlay, d.Call.Type)
		}
	case <-ctx.Done():
		err = fmt.Errorf("coach call: %w", ctx.Err())
	}

	if err != nil {
		fb := g.Fallback.Decide(s)
		g.Logger.Warn().
			Err(err).
			Int("down", s.Down).
			Int("yardsToGo", s.YardsToGo).
			Int("yardLine", s.YardLine).
			Str("fallback", string(fb.Call.Type)).
			Msg("coach failed, using heuristic")
		return fb, true
	}
	return d, false
}
