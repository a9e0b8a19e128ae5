package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/supersim-ai/drivesim/internal/api"
	"github.com/supersim-ai/drivesim/internal/coach"
	"github.com/supersim-ai/drivesim/internal/config"
	"github.com/supersim-ai/drivesim/internal/dispatcher"
	"github.com/supersim-ai/drivesim/internal/influx"
	"github.com/supersim-ai/drivesim/internal/logging"
	"github.com/supersim-ai/drivesim/internal/orchestrator"
	telemetry "github.com/supersim-ai/drivesim/internal/otel"
	"github.com/supersim-ai/drivesim/internal/storage"
)

const (
	ServiceName = "drivesim"

	cmdDrive   = "drive"
	cmdBatch   = "batch"
	cmdLevels  = "levels"
	cmdPersist = "persist"

	persistBuffer = 64
)

const usage = `usage: drivesim [-config DIR] <command> [flags]

commands:
  drive    run one drive and print its result
  batch    run many seeded drives in parallel
  levels   print coach level thresholds and team standings
`

// app holds everything a command needs for one process run.
type app struct {
	ctx        context.Context
	log        zerolog.Logger
	out        io.Writer
	runner     *orchestrator.Runner
	dispatcher *dispatcher.Dispatcher
	backend    storage.Backend
	influx     *influx.Manager
	uploader   *api.Client
	telemetry  *telemetry.Provider
	logCloser  io.Closer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	configDir := "."
	if len(args) >= 2 && (args[0] == "-config" || args[0] == "--config") {
		configDir = args[1]
		args = args[2:]
	}
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	a, err := newApp(ctx, configDir, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "drivesim: %v\n", err)
		return 1
	}
	defer a.close()

	command := strings.ToLower(args[0])
	if command == cmdPersist || !a.dispatcher.HasHandler(command) {
		fmt.Fprintf(stderr, "drivesim: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if _, err := a.dispatcher.Dispatch(dispatcher.Event{Command: command, Args: args[1:]}); err != nil {
		a.log.Error().Err(err).Str("command", command).Msg("Command failed")
		return 1
	}
	return 0
}

func newApp(ctx context.Context, configDir string, stdout, stderr io.Writer) (*app, error) {
	start := time.Now()
	cfgErr := config.Load(configDir)

	gl := config.GetGraylogConfig()
	graylogAddr := ""
	if gl.Enabled {
		graylogAddr = gl.Address
	}
	log, logCloser, err := logging.Setup(logging.Options{
		Level:       config.GetString("logLevel"),
		Console:     stderr,
		LogsDir:     config.GetString("logsDir"),
		Name:        ServiceName,
		Start:       start,
		GraylogAddr: graylogAddr,
	})
	if err != nil {
		return nil, err
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("dir", configDir).Msg("Using default configuration")
	}

	a := &app{ctx: ctx, log: log, out: stdout, logCloser: logCloser}

	oc := config.GetOTelConfig()
	a.telemetry, err = telemetry.New(ctx, telemetry.Config{
		Enabled:     oc.Enabled,
		ServiceName: oc.ServiceName,
		Interval:    oc.Interval,
		Endpoint:    oc.Endpoint,
		Insecure:    oc.Insecure,
	})
	if err != nil {
		log.Warn().Err(err).Msg("OTel disabled")
		a.telemetry, _ = telemetry.New(ctx, telemetry.Config{})
	}

	a.dispatcher, err = dispatcher.New(logging.NewKVLogger(log))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}

	if err := a.initSinks(); err != nil {
		a.close()
		return nil, err
	}

	a.runner, err = orchestrator.New(config.GetOrchestratorConfig(), buildCoach(config.GetCoachConfig(), log), log)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	a.registerHandlers()
	return a, nil
}

func (a *app) registerHandlers() {
	a.dispatcher.Register(cmdDrive, a.handleDrive, dispatcher.Logged())
	a.dispatcher.Register(cmdBatch, a.handleBatch, dispatcher.Logged())
	a.dispatcher.Register(cmdLevels, a.handleLevels, dispatcher.Logged())
	a.dispatcher.Register(cmdPersist, a.handlePersist, dispatcher.Buffered(persistBuffer), dispatcher.Blocking(), dispatcher.Logged())
}

// buildCoach picks the play caller. A nil coach means the heuristic calls every play.
func buildCoach(cfg config.CoachConfig, log zerolog.Logger) coach.Coach {
	switch strings.ToLower(cfg.Type) {
	case "ollama", "llm":
		log.Info().Str("url", cfg.OllamaURL).Str("model", cfg.OllamaModel).Msg("Using language-model coach")
		return coach.NewOllama(coach.OllamaConfig{URL: cfg.OllamaURL, Model: cfg.OllamaModel})
	case "heuristic", "":
		return nil
	default:
		log.Warn().Str("type", cfg.Type).Msg("Unknown coach type, using heuristic")
		return nil
	}
}

// close drains queued persists and releases every sink.
func (a *app) close() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), 10*time.Second)
	defer cancel()

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close storage backend")
		}
	}
	if a.influx != nil {
		if err := a.influx.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close InfluxDB")
		}
	}
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			a.log.Error().Err(err).Msg("Failed to shut down OTel")
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
