// Package drive implements the discrete down-and-distance state machine.
//
// A Machine owns one drive's situation. Field position is always measured in
// the frame of the team in possession: 0 is its own goal line and 100 the
// opponent's. Every stochastic draw goes through the injected rng.Source.
package drive

import (
	"fmt"

	"github.com/supersim-ai/drivesim/internal/rng"
	"github.com/supersim-ai/drivesim/pkg/core"
)

const (
	FieldLength       = 100
	FirstDownDistance = 10
	DefaultStartLine  = 25

	PointsTouchdown  = 6
	PointsExtraPoint = 1
	PointsFieldGoal  = 3

	kickoffSpot      = 35
	kickoffMin       = 40
	kickoffMax       = 70
	touchbackSpot    = 25
	puntMin          = 30
	puntMax          = 50
	puntTouchback    = 80
	fieldGoalSnapAdd = 17
)

// Start is the initial situation of a drive.
type Start struct {
	Possession core.TeamID
	YardLine   int
	Score      core.Score
}

// Machine is the drive state machine. It is not safe for concurrent use.
type Machine struct {
	rng rng.Source

	down       int
	yardsToGo  int
	field      int
	possession core.TeamID
	score      core.Score
	outcome    core.Outcome

	log []string
}

// New returns a machine at first-and-ten from start.
func New(src rng.Source, start Start) *Machine {
	if start.Possession == "" {
		start.Possession = core.Home
	}
	return &Machine{
		rng:        src,
		down:       1,
		yardsToGo:  FirstDownDistance,
		field:      clampYard(start.YardLine),
		possession: start.Possession,
		score:      start.Score,
		outcome:    core.InProgress,
	}
}

// Snapshot returns the current situation.
func (m *Machine) Snapshot() core.DriveState {
	return core.DriveState{
		Down:          m.down,
		YardsToGo:     m.yardsToGo,
		FieldPosition: m.field,
		Possession:    m.possession,
		Score:         m.score,
		Outcome:       m.outcome,
	}
}

// Log returns a copy of the play-by-play lines written so far.
func (m *Machine) Log() []string {
	out := make([]string, len(m.log))
	copy(out, m.log)
	return out
}

func (m *Machine) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
}

// Step resolves and applies one play.
func (m *Machine) Step(call core.PlayCall) core.PlayResult {
	return m.Apply(m.Resolve(call))
}

// SwitchPossession hands the ball over at the mirrored spot.
func (m *Machine) SwitchPossession() {
	m.possession = m.possession.Opponent()
	m.field = clampYard(FieldLength - m.field)
	m.down = 1
	m.yardsToGo = FirstDownDistance
	m.logf("Possession switched to %s.", m.possession)
}

// Touchdown scores six plus the automatic extra point, then kicks off.
func (m *Machine) Touchdown() {
	m.addScore(PointsTouchdown)
	m.addScore(PointsExtraPoint)
	m.Kickoff()
}

// Kickoff kicks from the scoring team's 35 to the opponent.
// The receiving team's spot is computed directly in its own frame, so
// possession flips without a second mirror.
func (m *Machine) Kickoff() {
	landing := kickoffSpot + m.rng.IntRange(kickoffMin, kickoffMax)
	spot := touchbackSpot
	if landing > FieldLength {
		m.logf("Kickoff is a Touchback.")
	} else {
		spot = FieldLength - landing
		m.logf("Kickoff returned to the %d yard line.", spot)
	}
	m.possession = m.possession.Opponent()
	m.field = clampYard(spot)
	m.down = 1
	m.yardsToGo = FirstDownDistance
}

// CheckFirstDown resets the chains once the line to gain is reached.
func (m *Machine) CheckFirstDown() bool {
	if m.yardsToGo > 0 {
		return false
	}
	m.down = 1
	m.yardsToGo = FirstDownDistance
	m.logf("FIRST DOWN!")
	return true
}

// Turnover ends the drive with an interception at spot, given in the
// offense's frame. The defense takes over at the mirrored spot.
func (m *Machine) Turnover(call core.PlayCall, spot int) core.PlayResult {
	res := core.PlayResult{
		Call:      call,
		Event:     core.EventInterception,
		StartYard: m.field,
	}
	m.field = clampYard(spot)
	res.EndYard = m.field
	res.YardsGained = m.field - res.StartYard
	m.logf("Pass intercepted at the %d yard line.", m.field)
	m.outcome = core.Turnover
	m.SwitchPossession()
	res.Outcome = m.outcome
	return res
}

func (m *Machine) addScore(pts int) {
	m.score.Add(m.possession, pts)
	m.logf("SCORE! %s gets %d points.", m.possession, pts)
}

func clampYard(y int) int {
	if y < 0 {
		return 0
	}
	if y > FieldLength {
		return FieldLength
	}
	return y
}
