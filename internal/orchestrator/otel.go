package orchestrator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/supersim-ai/drivesim/pkg/core"
)

const instrumentationName = "github.com/supersim-ai/drivesim/internal/orchestrator"

type instruments struct {
	drives    metric.Int64Counter
	plays     metric.Int64Counter
	fallbacks metric.Int64Counter
	frames    metric.Int64Counter
	xp        metric.Int64Histogram
}

func newInstruments() (*instruments, error) {
	m := otel.Meter(instrumentationName)
	var (
		in  instruments
		err error
	)
	if in.drives, err = m.Int64Counter("drivesim.drives",
		metric.WithDescription("Drives finished, by outcome")); err != nil {
		return nil, fmt.Errorf("creating drives counter: %w", err)
	}
	if in.plays, err = m.Int64Counter("drivesim.plays",
		metric.WithDescription("Plays run, by call and event")); err != nil {
		return nil, fmt.Errorf("creating plays counter: %w", err)
	}
	if in.fallbacks, err = m.Int64Counter("drivesim.coach.fallbacks",
		metric.WithDescription("Coach calls replaced by the heuristic")); err != nil {
		return nil, fmt.Errorf("creating fallbacks counter: %w", err)
	}
	if in.frames, err = m.Int64Counter("drivesim.frames",
		metric.WithDescription("Frames recorded")); err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}
	if in.xp, err = m.Int64Histogram("drivesim.drive.xp",
		metric.WithDescription("Coach XP awarded per drive")); err != nil {
		return nil, fmt.Errorf("creating xp histogram: %w", err)
	}
	return &in, nil
}

func (in *instruments) play(ctx context.Context, rec core.PlayRecord) {
	in.plays.Add(ctx, 1, metric.WithAttributes(
		attribute.String("call", string(rec.Call.Type)),
		attribute.String("event", string(rec.Result.Event)),
	))
	in.frames.Add(ctx, int64(rec.Frames))
	if rec.Fallback {
		in.fallbacks.Add(ctx, 1)
	}
}

func (in *instruments) drive(ctx context.Context, res core.DriveResult) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", string(res.Outcome)),
		attribute.String("ending", string(res.Ending)),
	)
	in.drives.Add(ctx, 1, attrs)
	in.xp.Record(ctx, int64(res.XP), attrs)
}
