package physics

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/supersim-ai/drivesim/internal/geo"
	"github.com/supersim-ai/drivesim/internal/queue"
	"github.com/supersim-ai/drivesim/pkg/core"
)

type point3 struct {
	xy geom.XY
	z  float64
}

// Ball is the football in world yards with altitude.
type Ball struct {
	pos    geom.XY
	z      float64
	vel    geom.XY
	vz     float64
	flight core.FlightState
	result core.PassResult

	carrier Role
	trail   *queue.Ring[point3]
}

// BallState is an exported copy of the ball.
type BallState struct {
	Pos     geom.XY
	Z       float64
	Vel     geom.XY
	VZ      float64
	Flight  core.FlightState
	Result  core.PassResult
	Carrier Role
	Trail   int
}

func (b *Ball) state() BallState {
	return BallState{
		Pos:     b.pos,
		Z:       b.z,
		Vel:     b.vel,
		VZ:      b.vz,
		Flight:  b.flight,
		Result:  b.result,
		Carrier: b.carrier,
		Trail:   b.trail.Len(),
	}
}

func (b *Ball) reset(at geom.XY, altitude float64) {
	b.pos = at
	b.z = altitude
	b.vel = geom.XY{}
	b.vz = 0
	b.flight = core.BallHeld
	b.result = core.PassNone
	b.carrier = QB
	b.trail.Reset()
}

// pin keeps a held ball in the carrier's hands.
func (w *World) pin() {
	if w.ball.flight == core.BallInFlight || w.ball.carrier == RoleNone {
		return
	}
	w.ball.pos = w.bodies[w.ball.carrier].Pos
	w.ball.z = w.cfg.CarryAltitude
	w.ball.vel = geom.XY{}
	w.ball.vz = 0
}

// throw launches a ballistic pass from the quarterback toward target.
// It does nothing unless the quarterback holds the ball.
func (w *World) throw(target Role, power float64) bool {
	if w.ball.carrier != QB || w.ball.flight != core.BallHeld {
		return false
	}
	if power <= 0 {
		power = 1
	}
	from := w.bodies[QB].Pos
	delta := w.bodies[target].Pos.Sub(from)
	t := delta.Length() / (w.cfg.PassSpeed * power)
	if t < w.cfg.Dt {
		t = w.cfg.Dt
	}

	w.ball.pos = from
	w.ball.z = w.cfg.ThrowAltitude
	w.ball.vel = delta.Scale(1 / t)
	w.ball.vz = -0.5 * w.cfg.Gravity * t
	w.ball.flight = core.BallInFlight
	w.ball.carrier = RoleNone
	w.ball.trail.Reset()
	w.flightPath = append(w.flightPath[:0], from)
	return true
}

// fly advances an airborne ball one tick and resolves it at most once.
func (w *World) fly() {
	b := &w.ball
	if b.flight != core.BallInFlight {
		return
	}
	dt := w.cfg.Dt

	b.trail.Push(point3{xy: b.pos, z: b.z})
	b.pos = b.pos.Add(b.vel.Scale(dt))
	b.z += b.vz * dt
	b.vz += w.cfg.Gravity * dt
	w.flightPath = append(w.flightPath, b.pos)

	if b.z < w.cfg.InterceptCeiling {
		radius := w.cfg.InterceptRadius
		for r := Role(offenseCount); r < NumRoles; r++ {
			d := geo.Dist(w.bodies[r].Pos, b.pos)
			if d >= radius {
				continue
			}
			chance := (radius - d) / radius * w.cfg.MaxInterceptChance
			if w.rng.Float64() < chance {
				w.resolve(core.PassInterception, r)
				return
			}
		}
	}

	if b.z > w.cfg.CatchMin && b.z < w.cfg.CatchMax {
		for _, r := range receivers {
			if geo.Dist(w.bodies[r].Pos, b.pos) < w.cfg.CatchRadius {
				w.resolve(core.PassComplete, r)
				return
			}
		}
	}

	if b.z <= 0 {
		w.ground()
	}
}

// ground ends a flight as incomplete with the ball on the turf.
func (w *World) ground() {
	w.ball.z = 0
	w.ball.vz = 0
	w.resolve(core.PassIncomplete, RoleNone)
}

func (w *World) resolve(result core.PassResult, carrier Role) {
	w.ball.flight = core.BallResolved
	w.ball.result = result
	w.ball.carrier = carrier
	w.ball.vel = geom.XY{}
	if result == core.PassIncomplete {
		w.ball.vz = 0
	}
}
