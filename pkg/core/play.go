// pkg/core/play.go
package core

import "strings"

// TeamID identifies one side of the game.
type TeamID string

const (
	Home TeamID = "home"
	Away TeamID = "away"
)

// Opponent returns the other team.
func (t TeamID) Opponent() TeamID {
	if t == Home {
		return Away
	}
	return Home
}

// Score holds both teams' points. It is a value type so snapshots never alias.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Of returns the points of team t.
func (s Score) Of(t TeamID) int {
	if t == Home {
		return s.Home
	}
	return s.Away
}

// Add credits pts to team t.
func (s *Score) Add(t TeamID, pts int) {
	if t == Home {
		s.Home += pts
		return
	}
	s.Away += pts
}

// PlayType is the offensive call for a single down.
type PlayType string

const (
	Run  PlayType = "RUN"
	Pass PlayType = "PASS"
	Punt PlayType = "PUNT"
	FG   PlayType = "FG"
)

// Valid reports whether p is one of the four known calls.
func (p PlayType) Valid() bool {
	switch p {
	case Run, Pass, Punt, FG:
		return true
	}
	return false
}

// ParsePlayType accepts any casing and the long form "FIELD_GOAL".
func ParsePlayType(s string) (PlayType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "FIELD_GOAL" || s == "FIELDGOAL" {
		s = string(FG)
	}
	p := PlayType(s)
	return p, p.Valid()
}

// Receiver names a pass target. Empty means the default primary receiver.
type Receiver string

const (
	WR1 Receiver = "WR1"
	WR2 Receiver = "WR2"
)

// PlayCall is what the decision source hands back for one down.
type PlayCall struct {
	Type       PlayType `json:"type"`
	Target     Receiver `json:"target,omitempty"`
	ThrowPower float64  `json:"throwPower,omitempty"`
}

// Power returns the throw power, defaulting to 1.
func (c PlayCall) Power() float64 {
	if c.ThrowPower <= 0 {
		return 1
	}
	return c.ThrowPower
}

// DefenseCall is the defensive look chosen against a play.
type DefenseCall string

const (
	Blitz   DefenseCall = "BLITZ"
	Zone    DefenseCall = "ZONE"
	Man     DefenseCall = "MAN"
	Prevent DefenseCall = "PREVENT"
)

// Event is the discrete classification of what happened on a play.
type Event string

const (
	EventRun             Event = "run"
	EventComplete        Event = "complete"
	EventIncomplete      Event = "incomplete"
	EventInterception    Event = "interception"
	EventSack            Event = "sack"
	EventTouchdown       Event = "touchdown"
	EventTurnoverOnDowns Event = "turnover_on_downs"
	EventPunt            Event = "punt"
	EventFieldGoal       Event = "field_goal"
	EventMissedFieldGoal Event = "missed_field_goal"
)

// Outcome is the drive state machine's terminal tag.
type Outcome string

const (
	InProgress      Outcome = "in_progress"
	Touchdown       Outcome = "touchdown"
	TurnoverOnDowns Outcome = "turnover_on_downs"
	Turnover        Outcome = "turnover"
	Punted          Outcome = "punt"
	FieldGoal       Outcome = "field_goal"
	MissedFieldGoal Outcome = "missed_field_goal"
)

// Terminal reports whether the drive is over.
func (o Outcome) Terminal() bool {
	return o != InProgress && o != ""
}

// Scoring reports whether the outcome put points on the board for the offense.
func (o Outcome) Scoring() bool {
	return o == Touchdown || o == FieldGoal
}

// DriveState is a read-only snapshot of the state machine between plays.
type DriveState struct {
	Down          int     `json:"down"`
	YardsToGo     int     `json:"yardsToGo"`
	FieldPosition int     `json:"fieldPosition"`
	Possession    TeamID  `json:"possession"`
	Score         Score   `json:"score"`
	Outcome       Outcome `json:"outcome"`
}

// PlayResult is the discrete result of one play.
type PlayResult struct {
	Call              PlayCall `json:"call"`
	Event             Event    `json:"event"`
	YardsGained       int      `json:"yardsGained"`
	StartYard         int      `json:"startYard"`
	EndYard           int      `json:"endYard"`
	FirstDown         bool     `json:"firstDown,omitempty"`
	KickDistance      int      `json:"kickDistance,omitempty"`
	FieldGoalDistance int      `json:"fieldGoalDistance,omitempty"`
	Outcome           Outcome  `json:"outcome"`
}
