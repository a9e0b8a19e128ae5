package physics

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/supersim-ai/drivesim/internal/geo"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// PlayReport summarizes what the physics did on one play.
type PlayReport struct {
	Call       core.PlayCall
	Ticks      int
	Thrown     bool
	ThrowTick  int
	PassResult core.PassResult
	Carrier    Role
	// BallYardLine is the ball's spot at the end of the play in the offense's frame.
	BallYardLine float64
	// AirDistance is the planar length of the ball's flight path.
	AirDistance float64
}

// Intercepted reports whether a defender caught the ball.
func (r PlayReport) Intercepted() bool {
	return r.PassResult == core.PassInterception
}

// SpotYardLine rounds BallYardLine to a whole yard.
func (r PlayReport) SpotYardLine() int {
	return int(math.Round(r.BallYardLine))
}

// RunPlay simulates call for ticks steps and emits exactly one frame per tick.
// ticks <= 0 uses the configured default; ticks above MaxTicks are clamped.
// PUNT and FG only render the static formation.
func (w *World) RunPlay(call core.PlayCall, ticks int) PlayReport {
	if ticks <= 0 {
		ticks = w.cfg.Ticks
	}
	if ticks > w.cfg.MaxTicks {
		ticks = w.cfg.MaxTicks
	}
	target := WR1
	if call.Target == core.WR2 {
		target = WR2
	}

	rep := PlayReport{Call: call, Ticks: ticks, ThrowTick: -1}
	moving := call.Type == core.Run || call.Type == core.Pass

	for i := 0; i < ticks; i++ {
		progress := float64(i) / float64(ticks)
		switch call.Type {
		case core.Run:
			w.runTick()
		case core.Pass:
			if w.passTick(progress, target, call.Power()) {
				rep.Thrown = true
				rep.ThrowTick = i
			}
		}

		w.fly()
		if i == ticks-1 && w.ball.flight == core.BallInFlight {
			w.ground()
		}
		w.afterCatch()

		if moving {
			w.integrate()
		}
		w.pin()
		w.emit(i)
	}

	rep.PassResult = w.ball.result
	rep.Carrier = w.ball.carrier
	rep.BallYardLine = w.YardLine(w.ball.pos.X)
	if rep.Thrown {
		rep.AirDistance = geo.PathLength(w.flightPath)
	}
	return rep
}

// runTick hands the ball to the running back, drives him forward and sends
// every defender after him.
func (w *World) runTick() {
	if w.ball.flight == core.BallHeld {
		w.ball.carrier = RB
	}
	carrier := w.ball.carrier
	if carrier == RoleNone {
		return
	}
	w.push(carrier, geom.XY{X: w.cfg.Forces.Run})
	at := w.bodies[carrier].Pos
	for r := Role(offenseCount); r < NumRoles; r++ {
		w.pushToward(r, at, w.cfg.Forces.Pursuit)
	}
}

// passTick runs the dropback, the throw and the routes. It reports whether
// the ball was thrown on this tick.
func (w *World) passTick(progress float64, target Role, power float64) bool {
	thrown := false
	if progress < w.cfg.ThrowPhase {
		w.push(QB, geom.XY{X: -w.cfg.Forces.Dropback})
	} else {
		thrown = w.throw(target, power)
	}

	for _, r := range receivers {
		w.push(r, geom.XY{X: w.cfg.Forces.Route})
	}
	if db, ok := w.nearestBack(target); ok {
		w.pushToward(db, w.bodies[target].Pos, w.cfg.Forces.Cover)
	}
	return thrown
}

// afterCatch keeps a receiver who caught the ball running upfield.
func (w *World) afterCatch() {
	if w.ball.result == core.PassComplete && w.ball.carrier != RoleNone {
		w.push(w.ball.carrier, geom.XY{X: w.cfg.Forces.YAC})
	}
}

func (w *World) nearestBack(target Role) (Role, bool) {
	best, bestD := RoleNone, math.Inf(1)
	at := w.bodies[target].Pos
	for _, r := range defensiveBacks {
		if d := geo.Dist(w.bodies[r].Pos, at); d < bestD {
			best, bestD = r, d
		}
	}
	return best, best != RoleNone
}
