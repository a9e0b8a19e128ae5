package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/dispatcher"
	"github.com/supersim-ai/drivesim/internal/orchestrator"
	"github.com/supersim-ai/drivesim/internal/rng"
	"github.com/supersim-ai/drivesim/internal/storage"
	"github.com/supersim-ai/drivesim/pkg/core"
	"github.com/supersim-ai/drivesim/pkg/streaming"
)

// BatchSummary is the aggregate printed after a batch.
type BatchSummary struct {
	Drives   int `json:"drives"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Aborted  int `json:"aborted"`
	XP       int `json:"xp"`
	Plays    int `json:"plays"`
	Yards    int `json:"yards"`
	Fallback int `json:"fallbackCalls"`
}

func (s *BatchSummary) add(r core.DriveResult) {
	s.Drives++
	switch r.Outcome {
	case core.Win:
		s.Wins++
	case core.Lose:
		s.Losses++
	case core.Aborted:
		s.Aborted++
	}
	s.XP += r.XP
	s.Plays += r.Stats.Plays
	s.Yards += r.Stats.TotalYards
	s.Fallback += r.Stats.FallbackCalls
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// handleDrive runs one drive and writes it as JSON or as a message stream.
func (a *app) handleDrive(e dispatcher.Event) (any, error) {
	fs := newFlagSet(cmdDrive)
	team := fs.String("team", "home", "team the drive is credited to")
	seed := fs.Int64("seed", 0, "random seed, 0 draws one")
	yard := fs.Int("yard", config.GetInt("drive.startYardLine"), "starting yard line")
	strategy := fs.String("strategy", config.GetString("drive.strategy"), "strategy hint passed to the coach")
	stream := fs.Bool("stream", false, "write newline-delimited messages instead of one JSON document")
	frames := fs.Bool("frames", false, "include frames in the output")
	outPath := fs.String("o", "", "write the result to this file instead of stdout")
	if err := fs.Parse(e.Args); err != nil {
		return nil, fmt.Errorf("drive: %w", err)
	}

	res := a.runner.Run(a.ctx, orchestrator.Request{
		Team:          *team,
		Seed:          *seed,
		StartYardLine: yard,
		Strategy:      *strategy,
	})
	a.persist(res)

	out := a.out
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return nil, fmt.Errorf("drive: %w", err)
		}
		defer f.Close()
		out = f
	}

	if *stream {
		if err := streaming.NewWriter(out).WriteDrive(res, *frames); err != nil {
			return nil, fmt.Errorf("drive: %w", err)
		}
		return res, nil
	}

	view := res
	if !*frames {
		view.Frames = nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return nil, fmt.Errorf("drive: %w", err)
	}
	return res, nil
}

// handleBatch runs n drives on consecutive seeds with a bounded worker pool.
func (a *app) handleBatch(e dispatcher.Event) (any, error) {
	fs := newFlagSet(cmdBatch)
	n := fs.Int("n", 10, "number of drives")
	baseSeed := fs.Int64("seed", 0, "seed of the first drive, 0 draws one")
	workers := fs.Int("workers", config.GetInt("batch.workers"), "drives run in parallel")
	team := fs.String("team", "home", "team the drives are credited to")
	yard := fs.Int("yard", config.GetInt("drive.startYardLine"), "starting yard line")
	strategy := fs.String("strategy", config.GetString("drive.strategy"), "strategy hint passed to the coach")
	if err := fs.Parse(e.Args); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	if *n <= 0 {
		return nil, fmt.Errorf("batch: -n must be positive, got %d", *n)
	}
	if *workers <= 0 {
		*workers = 1
	}
	if *baseSeed == 0 {
		s, err := rng.NewSeed()
		if err != nil {
			s = time.Now().UnixNano()
		}
		*baseSeed = s
	}

	results := make([]core.DriveResult, *n)
	g, ctx := errgroup.WithContext(a.ctx)
	g.SetLimit(*workers)
	for i := range results {
		g.Go(func() error {
			results[i] = a.runner.Run(ctx, orchestrator.Request{
				Team:          *team,
				Seed:          *baseSeed + int64(i),
				StartYardLine: yard,
				Strategy:      *strategy,
			})
			a.persist(results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	var sum BatchSummary
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSEED\tOUTCOME\tENDING\tPLAYS\tYARDS\tXP")
	for i, r := range results {
		sum.add(r)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d\t%d\t%d\n", i, r.Seed, r.Outcome, r.Ending, r.Stats.Plays, r.Stats.TotalYards, r.XP)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "drives=%d wins=%d losses=%d aborted=%d xp=%d plays=%d yards=%d fallbacks=%d\n",
		sum.Drives, sum.Wins, sum.Losses, sum.Aborted, sum.XP, sum.Plays, sum.Yards, sum.Fallback)
	return sum, nil
}

// handleLevels prints the XP ladder and, when the backend keeps them, team standings.
func (a *app) handleLevels(e dispatcher.Event) (any, error) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tXP")
	fmt.Fprintf(tw, "%d\t%d\n", 1, 0)
	for i := len(core.LevelThresholds) - 1; i >= 0; i-- {
		th := core.LevelThresholds[i]
		fmt.Fprintf(tw, "%d\t%d\n", th.Level, th.XP)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	ledger, ok := a.backend.(storage.Ledger)
	if !ok {
		return nil, nil
	}
	teams, err := ledger.Teams()
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	fmt.Fprintln(a.out)
	tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tLEVEL\tXP\tDRIVES\tWINS\tLOSSES")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", t.Name, t.Level, t.XP, t.Drives, t.Wins, t.Losses)
	}
	return teams, tw.Flush()
}

// persist hands a finished drive to the buffered persist handler.
func (a *app) persist(r core.DriveResult) {
	if _, err := a.dispatcher.Dispatch(dispatcher.Event{Command: cmdPersist, Payload: &r}); err != nil {
		a.log.Error().Err(err).Str("drive", r.ID).Msg("Failed to queue drive for storage")
	}
}
