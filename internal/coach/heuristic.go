package coach

import (
	"context"

	"github.com/supersim-ai/drivesim/internal/drive"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// DefaultFieldGoalRange is the longest kick the heuristic will attempt.
const DefaultFieldGoalRange = 45

// Heuristic is the table-driven fallback coach.
//
//	4th and short (<= 3)   RUN
//	4th and long           FG inside FieldGoalRange, else PUNT
//	short yardage (<= 2)   RUN
//	otherwise              PASS
//
// A zero FieldGoalRange never kicks.
type Heuristic struct {
	FieldGoalRange int
}

func (h Heuristic) CallPlay(_ context.Context, s Situation) (Decision, error) {
	return h.Decide(s), nil
}

// Decide is CallPlay without the context.
func (h Heuristic) Decide(s Situation) Decision {
	switch {
	case s.Down >= 4 && s.YardsToGo > 3:
		if h.FieldGoalRange > 0 && drive.FieldGoalDistance(s.YardLine) <= h.FieldGoalRange {
			return Decision{Call: core.PlayCall{Type: core.FG}, Reason: "Points are points."}
		}
		return Decision{Call: core.PlayCall{Type: core.Punt}, Reason: "Pin them deep."}
	case s.Down >= 4:
		return Decision{Call: core.PlayCall{Type: core.Run}, Reason: "Going for it."}
	case s.YardsToGo <= 2:
		return Decision{Call: core.PlayCall{Type: core.Run}, Reason: "Pound the rock."}
	case s.YardsToGo >= 10:
		return Decision{Call: core.PlayCall{Type: core.Pass, Target: core.WR1, ThrowPower: 1.2}, Reason: "Take a shot."}
	default:
		return Decision{Call: core.PlayCall{Type: core.Pass, Target: core.WR2}, Reason: "Watch this!"}
	}
}

// DefensiveLook picks the defense's call for a situation.
func DefensiveLook(s Situation) core.DefenseCall {
	switch {
	case s.Down >= 3 && s.YardsToGo > 5:
		return core.Prevent
	case s.YardsToGo <= 2:
		return core.Blitz
	default:
		return core.Zone
	}
}

// TrashTalk is the defense's line for a look.
func TrashTalk(d core.DefenseCall) string {
	switch d {
	case core.Blitz:
		return "Here comes the heat!"
	case core.Prevent:
		return "Nothing deep today."
	case core.Man:
		return "Locked up."
	default:
		return "Bring it on!"
	}
}
