// Package coach is the play-calling boundary of the engine. A Coach picks
// the offensive call for a situation; Guarded wraps any Coach with a timeout
// and the heuristic fallback so a drive never fails because of its coach.
package coach

import (
	"context"
	"errors"
	"sync"

	"github.com/supersim-ai/drivesim/pkg/core"
)

var (
	// ErrMalformedReply is returned when a reply has no recognizable call.
	ErrMalformedReply = errors.New("malformed coach reply")
	// ErrInvalidPlay is returned when a reply names an unknown play.
	ErrInvalidPlay = errors.New("invalid play call")
)

// Situation is everything a coach sees before the snap.
type Situation struct {
	Down        int              `json:"down"`
	YardsToGo   int              `json:"yardsToGo"`
	YardLine    int              `json:"yardLine"`
	Possession  core.TeamID      `json:"possession"`
	Score       core.Score       `json:"score"`
	Strategy    string           `json:"strategy,omitempty"`
	LastDefense core.DefenseCall `json:"lastDefense,omitempty"`
}

// SituationFrom builds a Situation from a drive snapshot.
func SituationFrom(s core.DriveState, strategy string, lastDefense core.DefenseCall) Situation {
	return Situation{
		Down:        s.Down,
		YardsToGo:   s.YardsToGo,
		YardLine:    s.FieldPosition,
		Possession:  s.Possession,
		Score:       s.Score,
		Strategy:    strategy,
		LastDefense: lastDefense,
	}
}

// Decision is a play call with optional flavour text.
type Decision struct {
	Call   core.PlayCall `json:"call"`
	Reason string        `json:"reason,omitempty"`
}

// Coach chooses the offensive play for a situation.
type Coach interface {
	CallPlay(ctx context.Context, s Situation) (Decision, error)
}

// CoachFunc adapts a function to the Coach interface.
type CoachFunc func(ctx context.Context, s Situation) (Decision, error)

func (f CoachFunc) CallPlay(ctx context.Context, s Situation) (Decision, error) {
	return f(ctx, s)
}

// Fixed always calls the same play. Useful for scripted drives.
func Fixed(call core.PlayCall) Coach {
	return CoachFunc(func(context.Context, Situation) (Decision, error) {
		return Decision{Call: call}, nil
	})
}

// Script replays calls in order and then repeats the last one. The returned
// coach is safe to share between concurrent drives.
func Script(calls ...core.PlayType) Coach {
	var (
		mu sync.Mutex
		i  int
	)
	return CoachFunc(func(context.Context, Situation) (Decision, error) {
		if len(calls) == 0 {
			return Decision{}, ErrMalformedReply
		}
		mu.Lock()
		c := calls[len(calls)-1]
		if i < len(calls) {
			c = calls[i]
		}
		i++
		mu.Unlock()
		return Decision{Call: core.PlayCall{Type: c}}, nil
	})
}
