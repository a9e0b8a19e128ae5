// Package physics simulates one play as a fixed-timestep point-mass world.
//
// Bodies live in a fixed arena indexed by Role and are reset by
// SetupFormation before every play. The ball is tracked separately in three
// dimensions and refers to its carrier by Role only.
package physics

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/supersim-ai/drivesim/internal/geo"
	"github.com/supersim-ai/drivesim/internal/queue"
	"github.com/supersim-ai/drivesim/internal/rng"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// FrameSink receives frames in tick order.
type FrameSink interface {
	Record(core.Frame)
}

// Body is a point mass in world yards.
type Body struct {
	Role  Role
	Team  Team
	Pos   geom.XY
	Vel   geom.XY
	force geom.XY
}

// World owns the arena, the ball and the integration constants.
// It is not safe for concurrent use.
type World struct {
	cfg    Config
	rng    rng.Source
	sink   FrameSink
	bounds geo.Rect
	decay  float64

	bodies [NumRoles]Body
	ball   Ball

	scrimmageX float64
	flightPath []geom.XY
}

// NewWorld builds a world. A nil sink discards frames.
func NewWorld(cfg Config, src rng.Source, sink FrameSink) *World {
	cfg = cfg.normalized()
	half := cfg.FieldLength / 2
	bounds, _ := geo.NewRect(
		geom.XY{X: -half, Y: -cfg.FieldWidth / 2},
		geom.XY{X: half, Y: cfg.FieldWidth / 2},
	)
	w := &World{
		cfg:    cfg,
		rng:    src,
		sink:   sink,
		bounds: bounds,
		decay:  math.Pow(cfg.Damping, cfg.Dt),
	}
	w.ball.trail = queue.NewRing[point3](cfg.TrailLength)
	w.SetupFormation(int(half))
	return w
}

// Config returns the normalized configuration in use.
func (w *World) Config() Config { return w.cfg }

// Body returns a copy of the body in slot r.
func (w *World) Body(r Role) Body { return w.bodies[r] }

// Ball returns a copy of the ball state.
func (w *World) Ball() BallState { return w.ball.state() }

// SetupFormation resets the arena for a snap at yardLine, given in the
// offense's frame and clamped into the field.
func (w *World) SetupFormation(yardLine int) {
	yl := geo.Clamp(float64(yardLine), 0, w.cfg.FieldLength)
	w.scrimmageX = yl - w.cfg.FieldLength/2
	origin := geom.XY{X: w.scrimmageX}
	for r := Role(0); r < NumRoles; r++ {
		team := Defense
		if r.Offense() {
			team = Offense
		}
		w.bodies[r] = Body{
			Role: r,
			Team: team,
			Pos:  w.bounds.Clamp(origin.Add(formation[r])),
		}
	}
	w.ball.reset(w.bodies[QB].Pos, w.cfg.CarryAltitude)
	w.flightPath = w.flightPath[:0]
}

func (w *World) push(r Role, f geom.XY) {
	w.bodies[r].force = w.bodies[r].force.Add(f)
}

// pushToward applies magnitude toward target. Coincident points get no force.
func (w *World) pushToward(r Role, target geom.XY, magnitude float64) {
	if u, ok := geo.Unit(w.bodies[r].Pos, target); ok {
		w.push(r, u.Scale(magnitude))
	}
}

// integrate advances every body one tick with damping and clamps to the field.
func (w *World) integrate() {
	dt := w.cfg.Dt
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Vel = b.Vel.Scale(w.decay).Add(b.force.Scale(dt / w.cfg.Mass))
		b.Pos = w.bounds.Clamp(b.Pos.Add(b.Vel.Scale(dt)))
		b.force = geom.XY{}
	}
}

// YardLine converts a world x coordinate to the offense's yard line.
func (w *World) YardLine(x float64) float64 {
	return geo.Clamp(x+w.cfg.FieldLength/2, 0, w.cfg.FieldLength)
}

func (w *World) view2(p geom.XY) core.Point2 {
	return core.Point2{X: p.X * w.cfg.ScaleX, Y: p.Y * w.cfg.ScaleY}
}

func (w *World) view3(p point3) core.Point3 {
	return core.Point3{X: p.xy.X * w.cfg.ScaleX, Y: p.xy.Y * w.cfg.ScaleY, Z: p.z * w.cfg.ScaleZ}
}

// snapshot renders the current tick in viewer coordinates.
func (w *World) snapshot(tick int) core.Frame {
	f := core.Frame{
		Tick:       tick,
		Offense:    make([]core.Point2, 0, offenseCount),
		Defense:    make([]core.Point2, 0, int(NumRoles)-offenseCount),
		Ball:       w.view3(point3{xy: w.ball.pos, z: w.ball.z}),
		Flight:     w.ball.flight,
		PassResult: w.ball.result,
	}
	for r := Role(0); r < NumRoles; r++ {
		p := w.view2(w.bodies[r].Pos)
		if r.Offense() {
			f.Offense = append(f.Offense, p)
		} else {
			f.Defense = append(f.Defense, p)
		}
	}
	trail := w.ball.trail.Items()
	f.Trail = make([]core.Point3, len(trail))
	for i, p := range trail {
		f.Trail[i] = w.view3(p)
	}
	return f
}

func (w *World) emit(tick int) {
	if w.sink != nil {
		w.sink.Record(w.snapshot(tick))
	}
}
