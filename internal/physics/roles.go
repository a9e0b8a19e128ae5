package physics

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Role is a fixed body slot in the arena. Offense occupies the first
// offenseCount slots, defense the rest.
type Role int

const (
	QB Role = iota
	RB
	OL0
	OL1
	OL2
	OL3
	OL4
	TE
	WR1
	WR2
	WR3
	DL0
	DL1
	DL2
	DL3
	DL4
	LB1
	LB2
	NB
	CB1
	CB2
	S
	NumRoles

	// RoleNone means nobody carries the ball.
	RoleNone Role = -1
)

const offenseCount = int(DL0)

var roleNames = [NumRoles]string{
	"QB", "RB", "OL0", "OL1", "OL2", "OL3", "OL4", "TE", "WR1", "WR2", "WR3",
	"DL0", "DL1", "DL2", "DL3", "DL4", "LB1", "LB2", "NB", "CB1", "CB2", "S",
}

func (r Role) String() string {
	if r < 0 || r >= NumRoles {
		return "NONE"
	}
	return roleNames[r]
}

// Offense reports whether r is an offensive slot.
func (r Role) Offense() bool { return r >= 0 && int(r) < offenseCount }

// Team is a body's side.
type Team int

const (
	Offense Team = iota
	Defense
)

func (t Team) String() string {
	if t == Offense {
		return "offense"
	}
	return "defense"
}

// RoleByName looks a role up by its short name.
func RoleByName(name string) (Role, bool) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), true
		}
	}
	return RoleNone, false
}

// receivers are the roles that can catch a pass.
var receivers = []Role{WR1, WR2}

// defensiveBacks are the candidates for pass coverage.
var defensiveBacks = []Role{CB1, CB2, NB, S}

// formation holds each slot's offset from the line of scrimmage in yards.
// Positive X is toward the defense's goal line.
var formation = [NumRoles]geom.XY{
	QB:  {X: -5, Y: 0},
	RB:  {X: -8, Y: 0},
	OL0: {X: -1, Y: -4},
	OL1: {X: -1, Y: -2},
	OL2: {X: -1, Y: 0},
	OL3: {X: -1, Y: 2},
	OL4: {X: -1, Y: 4},
	TE:  {X: -1, Y: 6},
	WR1: {X: -1, Y: 20},
	WR2: {X: -1, Y: -20},
	WR3: {X: -1.5, Y: 12},
	DL0: {X: 1, Y: -4},
	DL1: {X: 1, Y: -2},
	DL2: {X: 1, Y: 0},
	DL3: {X: 1, Y: 2},
	DL4: {X: 1, Y: 4},
	LB1: {X: 5, Y: -5},
	LB2: {X: 5, Y: 5},
	NB:  {X: 8, Y: 12},
	CB1: {X: 10, Y: 20},
	CB2: {X: 10, Y: -20},
	S:   {X: 15, Y: 0},
}
