// pkg/core/frame.go
package core

// Point2 is a planar position in viewer coordinates.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3 is a position with altitude in viewer coordinates.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FlightState is the lifecycle of the ball on a single play.
type FlightState string

const (
	BallHeld     FlightState = "held"
	BallInFlight FlightState = "in_flight"
	BallResolved FlightState = "resolved"
)

// PassResult is the terminal result of a thrown ball.
type PassResult string

const (
	PassNone         PassResult = ""
	PassComplete     PassResult = "complete"
	PassIncomplete   PassResult = "incomplete"
	PassInterception PassResult = "interception"
)

// HUD is the discrete situation a frame was recorded under.
type HUD struct {
	Down       int    `json:"down"`
	YardsToGo  int    `json:"yardsToGo"`
	YardLine   int    `json:"yardLine"`
	Possession TeamID `json:"possession"`
	Score      Score  `json:"score"`
}

// HUDFromState builds the frame tag from a drive snapshot.
func HUDFromState(s DriveState) HUD {
	return HUD{
		Down:       s.Down,
		YardsToGo:  s.YardsToGo,
		YardLine:   s.FieldPosition,
		Possession: s.Possession,
		Score:      s.Score,
	}
}

// Frame is an immutable snapshot of one physics tick.
// Offense and Defense are ordered by role slot.
type Frame struct {
	Play       int         `json:"play"`
	Tick       int         `json:"tick"`
	HUD        HUD         `json:"hud"`
	Offense    []Point2    `json:"offense"`
	Defense    []Point2    `json:"defense"`
	Ball       Point3      `json:"ball"`
	Trail      []Point3    `json:"trail"`
	Flight     FlightState `json:"flight"`
	PassResult PassResult  `json:"passResult,omitempty"`
}
