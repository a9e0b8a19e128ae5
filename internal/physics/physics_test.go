package physics

import (
	"math"
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersim-ai/drivesim/internal/rng"
	"github.com/supersim-ai/drivesim/pkg/core"
)

type collector struct {
	frames []core.Frame
}

func (c *collector) Record(f core.Frame) { c.frames = append(c.frames, f) }

func newTestWorld(t *testing.T, src rng.Source) (*World, *collector) {
	t.Helper()
	c := &collector{}
	return NewWorld(DefaultConfig(), src, c), c
}

func TestSetupFormation(t *testing.T) {
	w, _ := newTestWorld(t, rng.New(1))
	w.SetupFormation(50)

	offense, defense := 0, 0
	for r := Role(0); r < NumRoles; r++ {
		b := w.Body(r)
		assert.Equal(t, r, b.Role)
		if b.Team == Offense {
			offense++
		} else {
			defense++
		}
	}
	assert.Equal(t, 11, offense)
	assert.Equal(t, 11, defense)

	assert.Equal(t, geom.XY{X: -5, Y: 0}, w.Body(QB).Pos)
	assert.Equal(t, geom.XY{X: 15, Y: 0}, w.Body(S).Pos)

	ball := w.Ball()
	assert.Equal(t, QB, ball.Carrier)
	assert.Equal(t, core.BallHeld, ball.Flight)
	assert.Equal(t, 0.8, ball.Z)
	assert.Equal(t, w.Body(QB).Pos, ball.Pos)
}

func TestSetupFormation_ClampsYardLine(t *testing.T) {
	w, _ := newTestWorld(t, rng.New(1))

	w.SetupFormation(-20)
	assert.Equal(t, -50.0, w.Body(QB).Pos.X)
	assert.Equal(t, -49.0, w.Body(DL2).Pos.X)

	w.SetupFormation(180)
	assert.Equal(t, 45.0, w.Body(QB).Pos.X)
	assert.Equal(t, 50.0, w.Body(S).Pos.X)
}

func TestRunPlay_FrameCount(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
		want  int
	}{
		{"explicit", 40, 40},
		{"zero uses default", 0, 120},
		{"negative uses default", -5, 120},
		{"clamped to max", 5000, 600},
	}
	for _, tt := range tests {
		for _, pt := range []core.PlayType{core.Run, core.Pass, core.Punt, core.FG} {
			t.Run(tt.name+"/"+string(pt), func(t *testing.T) {
				w, c := newTestWorld(t, rng.New(3))
				w.SetupFormation(30)
				rep := w.RunPlay(core.PlayCall{Type: pt}, tt.ticks)
				assert.Equal(t, tt.want, rep.Ticks)
				require.Len(t, c.frames, tt.want)
				for i, f := range c.frames {
					assert.Equal(t, i, f.Tick)
					assert.Len(t, f.Offense, 11)
					assert.Len(t, f.Defense, 11)
				}
			})
		}
	}
}

func TestRunPlay_KicksAreStatic(t *testing.T) {
	w, c := newTestWorld(t, rng.New(3))
	w.SetupFormation(40)
	w.RunPlay(core.PlayCall{Type: core.Punt}, 30)

	first := c.frames[0]
	for _, f := range c.frames[1:] {
		assert.Equal(t, first.Offense, f.Offense)
		assert.Equal(t, first.Defense, f.Defense)
		assert.Equal(t, first.Ball, f.Ball)
	}
}

func TestRunPlay_Run(t *testing.T) {
	w, c := newTestWorld(t, rng.New(5))
	w.SetupFormation(25)
	start := w.Body(RB).Pos

	rep := w.RunPlay(core.PlayCall{Type: core.Run}, 60)

	assert.Equal(t, RB, rep.Carrier)
	assert.False(t, rep.Thrown)
	assert.Greater(t, w.Body(RB).Pos.X, start.X)
	for _, f := range c.frames {
		assert.Equal(t, core.BallHeld, f.Flight)
		assert.InDelta(t, 0.08, f.Ball.Z, 1e-9)
	}
	// ball pinned to the carrier in the last frame
	last := c.frames[len(c.frames)-1]
	assert.InDelta(t, last.Offense[RB].X, last.Ball.X, 1e-12)
	assert.InDelta(t, last.Offense[RB].Y, last.Ball.Y, 1e-12)
}

func TestRunPlay_PassInvariants(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		w, c := newTestWorld(t, rng.New(seed))
		w.SetupFormation(int(seed % 90))
		target := core.WR1
		if seed%2 == 1 {
			target = core.WR2
		}
		rep := w.RunPlay(core.PlayCall{Type: core.Pass, Target: target}, 120)

		require.True(t, rep.Thrown)
		assert.Equal(t, 36, rep.ThrowTick)
		require.NotEqual(t, core.PassNone, rep.PassResult, "seed %d", seed)

		var terminal core.PassResult
		transitions := 0
		for _, f := range c.frames {
			require.GreaterOrEqual(t, f.Ball.Z, 0.0, "seed %d tick %d", seed, f.Tick)
			require.LessOrEqual(t, len(f.Trail), 15)
			if f.PassResult != terminal {
				require.Equal(t, core.PassNone, terminal, "result changed after resolution, seed %d", seed)
				terminal = f.PassResult
				transitions++
			}
		}
		assert.Equal(t, 1, transitions, "seed %d", seed)
		assert.Equal(t, rep.PassResult, terminal)
		assert.Equal(t, core.BallResolved, c.frames[len(c.frames)-1].Flight)
	}
}

func TestRunPlay_Reproducible(t *testing.T) {
	run := func() []core.Frame {
		w, c := newTestWorld(t, rng.New(77))
		for i, pt := range []core.PlayType{core.Pass, core.Run, core.Pass} {
			w.SetupFormation(20 + i*10)
			w.RunPlay(core.PlayCall{Type: pt}, 0)
		}
		return c.frames
	}
	assert.Equal(t, run(), run())
}

func placeBall(w *World, at geom.XY, z, vz float64) {
	w.ball.pos = at
	w.ball.z = z
	w.ball.vel = geom.XY{}
	w.ball.vz = vz
	w.ball.flight = core.BallInFlight
	w.ball.carrier = RoleNone
}

func TestFly_Interception(t *testing.T) {
	w, _ := newTestWorld(t, &rng.Scripted{Floats: []float64{0.2}})
	w.SetupFormation(50)
	placeBall(w, w.Body(CB1).Pos.Add(geom.XY{X: 0.5}), 1, 0)

	w.fly()
	b := w.Ball()
	assert.Equal(t, core.PassInterception, b.Result)
	assert.Equal(t, CB1, b.Carrier)
	assert.Equal(t, core.BallResolved, b.Flight)
}

func TestFly_InterceptionRollFails(t *testing.T) {
	// chance at 0.5 yards is (2-0.5)/2*0.3 = 0.225
	w, _ := newTestWorld(t, &rng.Scripted{Floats: []float64{0.3}})
	w.SetupFormation(50)
	placeBall(w, w.Body(CB1).Pos.Add(geom.XY{X: 0.5}), 1, 0)

	w.fly()
	b := w.Ball()
	assert.Equal(t, core.PassNone, b.Result)
	assert.Equal(t, core.BallInFlight, b.Flight)
	assert.Equal(t, 1, b.Trail)
}

func TestFly_Catch(t *testing.T) {
	w, _ := newTestWorld(t, &rng.Scripted{})
	w.SetupFormation(50)
	placeBall(w, w.Body(WR1).Pos.Add(geom.XY{X: 0.5}), 1.5, 0)

	w.fly()
	b := w.Ball()
	assert.Equal(t, core.PassComplete, b.Result)
	assert.Equal(t, WR1, b.Carrier)
}

func TestFly_AboveCeilingIgnoresDefenders(t *testing.T) {
	w, _ := newTestWorld(t, &rng.Scripted{Floats: []float64{0}})
	w.SetupFormation(50)
	placeBall(w, w.Body(CB1).Pos, 6, 0)

	w.fly()
	assert.Equal(t, core.BallInFlight, w.Ball().Flight)
}

func TestFly_Grounded(t *testing.T) {
	w, _ := newTestWorld(t, &rng.Scripted{})
	w.SetupFormation(50)
	placeBall(w, geom.XY{X: 30, Y: -25}, 0.1, -10)

	w.fly()
	b := w.Ball()
	assert.Equal(t, core.PassIncomplete, b.Result)
	assert.Equal(t, 0.0, b.Z)
	assert.Equal(t, RoleNone, b.Carrier)
}

func TestThrow_ZeroDistance(t *testing.T) {
	w, _ := newTestWorld(t, rng.New(1))
	w.SetupFormation(50)
	w.bodies[WR1].Pos = w.bodies[QB].Pos

	require.True(t, w.throw(WR1, 1))
	b := w.Ball()
	assert.False(t, math.IsNaN(b.Vel.X))
	assert.False(t, math.IsNaN(b.VZ))
	assert.InDelta(t, 16*0.02, b.VZ, 1e-12)

	// a second throw is ignored while the ball is airborne
	assert.False(t, w.throw(WR2, 1))
}

func TestThrow_Ballistics(t *testing.T) {
	w, _ := newTestWorld(t, rng.New(1))
	w.SetupFormation(50)
	// QB at (-5,0), WR1 at (-1,20)
	require.True(t, w.throw(WR1, 2))
	b := w.Ball()
	dist := math.Hypot(4, 20)
	flight := dist / 90
	assert.InDelta(t, 4/flight, b.Vel.X, 1e-9)
	assert.InDelta(t, 20/flight, b.Vel.Y, 1e-9)
	assert.InDelta(t, 16*flight, b.VZ, 1e-9)
	assert.Equal(t, 2.0, b.Z)
}

func TestTrailBounded(t *testing.T) {
	w, _ := newTestWorld(t, &rng.Scripted{})
	w.SetupFormation(50)
	placeBall(w, geom.XY{X: -40, Y: -25}, 3.9, 20)
	for i := 0; i < 40; i++ {
		w.fly()
	}
	assert.Equal(t, 15, w.Ball().Trail)
}

func TestViewerTransform(t *testing.T) {
	w, c := newTestWorld(t, rng.New(1))
	w.SetupFormation(50)
	w.RunPlay(core.PlayCall{Type: core.FG}, 1)

	f := c.frames[0]
	assert.InDelta(t, -0.1, f.Offense[QB].X, 1e-12)
	assert.InDelta(t, 20*0.42/26.65, f.Offense[WR1].Y, 1e-12)
	assert.InDelta(t, 0.08, f.Ball.Z, 1e-12)
	assert.InDelta(t, f.Offense[QB].X, f.Ball.X, 1e-12)
}

func TestBodiesStayOnField(t *testing.T) {
	w, _ := newTestWorld(t, rng.New(9))
	w.SetupFormation(99)
	w.RunPlay(core.PlayCall{Type: core.Run}, 600)
	for r := Role(0); r < NumRoles; r++ {
		p := w.Body(r).Pos
		require.True(t, w.bounds.Contains(p), r.String())
		require.LessOrEqual(t, p.X, 50.0, r.String())
		require.GreaterOrEqual(t, p.X, -50.0, r.String())
		require.LessOrEqual(t, math.Abs(p.Y), 26.65, r.String())
	}
	assert.InDelta(t, 100.0, w.YardLine(w.Body(RB).Pos.X), 5)
}

func TestRoleNames(t *testing.T) {
	r, ok := RoleByName("CB2")
	require.True(t, ok)
	assert.Equal(t, CB2, r)
	assert.Equal(t, "NONE", RoleNone.String())
	assert.True(t, WR3.Offense())
	assert.False(t, DL0.Offense())
	_, ok = RoleByName("K")
	assert.False(t, ok)
}

func TestConfigNormalized(t *testing.T) {
	c := Config{Dt: 0.01, Ticks: 50}.normalized()
	assert.Equal(t, 0.01, c.Dt)
	assert.Equal(t, 50, c.Ticks)
	assert.Equal(t, 50, c.MaxTicks)
	assert.Equal(t, -32.0, c.Gravity)
	assert.Equal(t, DefaultConfig().Forces, c.Forces)
}
