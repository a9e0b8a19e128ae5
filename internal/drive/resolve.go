package drive

import (
	"github.com/supersim-ai/drivesim/pkg/core"
)

// Kind tags the random outcome of a play before it is applied.
type Kind int

const (
	KindRush Kind = iota
	KindCompletion
	KindIncompletion
	KindPunt
	KindFieldGoal
	KindMissedFieldGoal
)

func (k Kind) String() string {
	switch k {
	case KindRush:
		return "rush"
	case KindCompletion:
		return "completion"
	case KindIncompletion:
		return "incompletion"
	case KindPunt:
		return "punt"
	case KindFieldGoal:
		return "field_goal"
	case KindMissedFieldGoal:
		return "missed_field_goal"
	}
	return "unknown"
}

// Resolution is the drawn outcome of a call. Yards is the gain for rushes and
// completions and the kick distance for punts.
type Resolution struct {
	Call     core.PlayCall
	Kind     Kind
	Yards    int
	Distance int
}

// FieldGoalDistance is the kick distance from a given line of scrimmage.
func FieldGoalDistance(yardLine int) int {
	return FieldLength - clampYard(yardLine) + fieldGoalSnapAdd
}

// FGProbability is the make chance for a kick of distance yards,
// 1 - (d-20)*0.02 clamped into [0, 1].
func FGProbability(distance int) float64 {
	p := 1 - float64(distance-20)*0.02
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Resolve draws the outcome of call without touching the situation.
// Unknown play types resolve as a run.
func (m *Machine) Resolve(call core.PlayCall) Resolution {
	res := Resolution{Call: call}
	switch call.Type {
	case core.Pass:
		if m.rng.Float64() < 0.6 {
			res.Kind = KindCompletion
			res.Yards = m.rng.IntRange(5, 20)
			if m.rng.Float64() < 0.1 {
				res.Yards += 30
			}
		} else {
			res.Kind = KindIncompletion
		}
	case core.Punt:
		res.Kind = KindPunt
		res.Yards = m.rng.IntRange(puntMin, puntMax)
	case core.FG:
		res.Distance = FieldGoalDistance(m.field)
		if m.rng.Float64() < FGProbability(res.Distance) {
			res.Kind = KindFieldGoal
		} else {
			res.Kind = KindMissedFieldGoal
		}
	default:
		res.Kind = KindRush
		res.Yards = m.rng.IntRange(-2, 8)
		if m.rng.Float64() < 0.05 {
			res.Yards += 20
		}
	}
	return res
}

// Apply mutates the situation according to res. Every non-kicking play
// consumes exactly one down unless it moves the chains or scores.
func (m *Machine) Apply(res Resolution) core.PlayResult {
	out := core.PlayResult{
		Call:      res.Call,
		StartYard: m.field,
	}

	switch res.Kind {
	case KindPunt:
		out.Event = core.EventPunt
		out.KickDistance = res.Yards
		m.field += res.Yards
		if m.field > FieldLength {
			m.field = puntTouchback
		}
		out.EndYard = m.field
		m.logf("Punted %d yards.", res.Yards)
		m.outcome = core.Punted
		m.SwitchPossession()
		out.Outcome = m.outcome
		return out

	case KindFieldGoal, KindMissedFieldGoal:
		out.FieldGoalDistance = res.Distance
		out.EndYard = m.field
		if res.Kind == KindFieldGoal {
			out.Event = core.EventFieldGoal
			m.logf("Field goal is GOOD from %d yards.", res.Distance)
			m.outcome = core.FieldGoal
			m.addScore(PointsFieldGoal)
			m.Kickoff()
		} else {
			out.Event = core.EventMissedFieldGoal
			m.logf("Field goal from %d yards is NO GOOD.", res.Distance)
			m.outcome = core.MissedFieldGoal
			m.SwitchPossession()
		}
		out.Outcome = m.outcome
		return out

	case KindIncompletion:
		out.Event = core.EventIncomplete
		out.EndYard = m.field
		m.logf("Pass incomplete.")
		m.down++

	default:
		out.Event = core.EventRun
		if res.Kind == KindCompletion {
			out.Event = core.EventComplete
		}
		out.YardsGained = res.Yards
		m.field = clampYard(m.field + res.Yards)
		out.EndYard = m.field
		m.yardsToGo -= res.Yards
		if res.Kind == KindCompletion {
			m.logf("Pass complete for %d yards.", res.Yards)
		} else {
			m.logf("Run for %d yards.", res.Yards)
		}

		if m.field >= FieldLength {
			out.Event = core.EventTouchdown
			out.EndYard = FieldLength
			m.logf("TOUCHDOWN!")
			m.outcome = core.Touchdown
			m.Touchdown()
			out.Outcome = m.outcome
			return out
		}
		// a run that goes nowhere costs a down on top of the regular one
		if res.Kind == KindRush && res.Yards == 0 {
			m.down++
		}
		if m.CheckFirstDown() {
			out.FirstDown = true
		} else {
			m.down++
		}
	}

	if m.down > 4 {
		out.Event = core.EventTurnoverOnDowns
		m.logf("Turnover on downs!")
		m.outcome = core.TurnoverOnDowns
		m.SwitchPossession()
	}
	out.Outcome = m.outcome
	return out
}
