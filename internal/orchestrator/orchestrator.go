// Package orchestrator runs a complete drive: it asks the coach for each
// call, animates the play, advances the state machine and aggregates the
// result artifact.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supersim-ai/drivesim/internal/coach"
	"github.com/supersim-ai/drivesim/internal/drive"
	"github.com/supersim-ai/drivesim/internal/physics"
	"github.com/supersim-ai/drivesim/internal/recorder"
	"github.com/supersim-ai/drivesim/internal/rng"
	"github.com/supersim-ai/drivesim/pkg/core"
)

// XPTable is the coach experience awarded per drive.
type XPTable struct {
	Touchdown int `json:"touchdown"`
	FieldGoal int `json:"fieldGoal"`
	Loss      int `json:"loss"`
	FirstDown int `json:"firstDown"`
}

// Config tunes the orchestrator.
type Config struct {
	MaxPlays     int
	Ticks        int
	CoachTimeout time.Duration
	// FieldGoalRange is the longest kick the fallback heuristic attempts.
	FieldGoalRange int
	// InterceptionsAreTurnovers lets a physics interception end the drive.
	InterceptionsAreTurnovers bool
	Physics                   physics.Config
	XP                        XPTable
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxPlays:       20,
		CoachTimeout:   coach.DefaultTimeout,
		FieldGoalRange: coach.DefaultFieldGoalRange,
		Physics:        physics.DefaultConfig(),
		XP:             XPTable{Touchdown: 100, FieldGoal: 30, Loss: 25, FirstDown: 10},
	}
}

// Request describes one drive to run. A zero Seed draws a fresh one and a
// nil StartYardLine starts at the offense's 25.
type Request struct {
	ID            string
	Team          string
	Seed          int64
	StartYardLine *int
	Possession    core.TeamID
	Score         core.Score
	Strategy      string
}

// Runner executes drives. A Runner is safe for concurrent use; every Run
// builds its own state machine, world, recorder and random source.
type Runner struct {
	cfg    Config
	coach  coach.Coach
	logger zerolog.Logger
	metric *instruments
}

// New creates a runner. A nil coach always uses the heuristic.
func New(cfg Config, c coach.Coach, logger zerolog.Logger) (*Runner, error) {
	if cfg.MaxPlays <= 0 {
		cfg.MaxPlays = DefaultConfig().MaxPlays
	}
	in, err := newInstruments()
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, coach: c, logger: logger, metric: in}, nil
}

// Run plays out req and returns its result. It never fails: coach errors
// fall back to the heuristic, the play cap forces a loss and cancellation of
// ctx between plays yields an aborted drive.
func (r *Runner) Run(ctx context.Context, req Request) core.DriveResult {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Seed == 0 {
		seed, err := rng.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		req.Seed = seed
	}
	startYard := drive.DefaultStartLine
	if req.StartYardLine != nil {
		startYard = *req.StartYardLine
	}

	log := r.logger.With().Str("drive", req.ID).Str("team", req.Team).Int64("seed", req.Seed).Logger()
	log.Info().Int("yardLine", startYard).Msg("drive started")

	src := rng.New(req.Seed)
	m := drive.New(src, drive.Start{Possession: req.Possession, YardLine: startYard, Score: req.Score})
	rec := recorder.New(r.cfg.Ticks)
	world := physics.NewWorld(r.cfg.Physics, src, rec)
	guard := coach.NewGuarded(r.coach, coach.Heuristic{FieldGoalRange: r.cfg.FieldGoalRange}, r.cfg.CoachTimeout, log)

	res := core.DriveResult{
		ID:        req.ID,
		Team:      req.Team,
		Seed:      req.Seed,
		StartedAt: time.Now().UTC(),
	}
	finalYard := m.Snapshot().FieldPosition
	aborted := false
	logged := 0
	var lastLook core.DefenseCall

	for play := 0; play < r.cfg.MaxPlays; play++ {
		if ctx.Err() != nil {
			aborted = true
			break
		}

		before := m.Snapshot()
		sit := coach.SituationFrom(before, req.Strategy, lastLook)
		dec, fallback := guard.Call(ctx, sit)
		if ctx.Err() != nil {
			rec.Discard()
			aborted = true
			break
		}
		look := coach.DefensiveLook(sit)

		rec.BeginPlay(play, core.HUDFromState(before))
		world.SetupFormation(before.FieldPosition)
		report := world.RunPlay(dec.Call, r.cfg.Ticks)
		frames := rec.Flush()

		var pr core.PlayResult
		if r.cfg.InterceptionsAreTurnovers && report.Intercepted() {
			pr = m.Turnover(dec.Call, report.SpotYardLine())
		} else {
			pr = m.Step(dec.Call)
		}

		record := core.PlayRecord{
			Index:       play,
			Before:      before,
			Call:        dec.Call,
			Reason:      dec.Reason,
			Fallback:    fallback,
			DefenseLook: look,
			PassResult:  report.PassResult,
			Frames:      frames,
			Result:      pr,
		}
		record.OverruledInterception = report.Intercepted() && pr.Event != core.EventInterception
		res.Plays = append(res.Plays, record)
		tally(&res.Stats, record)
		r.metric.play(ctx, record)

		res.Log = append(res.Log, fmt.Sprintf("%s & %d at the %d: %s. %s", ordinal(before.Down), before.YardsToGo, before.FieldPosition, dec.Call.Type, trashTalkLine(look)))
		lines := m.Log()
		res.Log = append(res.Log, lines[logged:]...)
		logged = len(lines)
		if record.OverruledInterception {
			res.Log = append(res.Log, overruledLine)
		}

		log.Debug().
			Int("play", play).
			Str("call", string(dec.Call.Type)).
			Bool("fallback", fallback).
			Str("event", string(pr.Event)).
			Int("yards", pr.YardsGained).
			Int("frames", frames).
			Msg("play finished")

		finalYard = pr.EndYard
		lastLook = look
		if pr.Outcome.Terminal() {
			break
		}
	}

	after := m.Snapshot()
	res.Ending = after.Outcome
	res.Score = after.Score
	res.FinalYardLine = finalYard
	res.Frames = rec.Frames()

	switch {
	case aborted:
		res.Outcome = core.Aborted
		res.Log = append(res.Log, "Drive aborted.")
	case after.Outcome.Scoring():
		res.Outcome = core.Win
	default:
		res.Outcome = core.Lose
		if !after.Outcome.Terminal() {
			res.Log = append(res.Log, fmt.Sprintf("Play limit of %d reached.", r.cfg.MaxPlays))
		}
	}
	res.XP = r.cfg.XP.Award(res.Outcome, res.Ending, res.Stats.FirstDowns)
	res.FinishedAt = time.Now().UTC()

	r.metric.drive(context.WithoutCancel(ctx), res)
	log.Info().
		Str("outcome", string(res.Outcome)).
		Str("ending", string(res.Ending)).
		Int("plays", res.Stats.Plays).
		Int("xp", res.XP).
		Msg("drive finished")
	return res
}

// Award returns the XP for a drive. Aborted drives earn nothing.
func (t XPTable) Award(outcome core.DriveOutcome, ending core.Outcome, firstDowns int) int {
	var xp int
	switch outcome {
	case core.Aborted:
		return 0
	case core.Win:
		xp = t.Touchdown
		if ending == core.FieldGoal {
			xp = t.FieldGoal
		}
	default:
		xp = t.Loss
	}
	return xp + firstDowns*t.FirstDown
}

const overruledLine = "Replay shows the ball picked off, but the ruling on the field stands."

// trashTalkLine is the defense's pre-snap line for a look.
func trashTalkLine(look core.DefenseCall) string {
	return fmt.Sprintf("Defense shows %s: %q", look, coach.TrashTalk(look))
}

func tally(st *core.DriveStats, rec core.PlayRecord) {
	pr := rec.Result
	st.Plays++
	if rec.Fallback {
		st.FallbackCalls++
	}
	if pr.FirstDown {
		st.FirstDowns++
	}

	switch rec.Call.Type {
	case core.Run:
		st.RushingYards += pr.YardsGained
		st.TotalYards += pr.YardsGained
	case core.Pass:
		switch {
		case pr.Event == core.EventInterception:
			st.Interceptions++
		case pr.Event == core.EventComplete, pr.Event == core.EventTouchdown,
			pr.Event == core.EventTurnoverOnDowns && pr.YardsGained != 0:
			st.Completions++
			st.PassingYards += pr.YardsGained
			st.TotalYards += pr.YardsGained
		default:
			st.Incompletions++
		}
	}
}

func ordinal(down int) string {
	switch down {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", down)
	}
}
