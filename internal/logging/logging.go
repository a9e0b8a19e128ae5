// Package logging builds the process logger: a console writer, an optional
// session log file and optional GELF shipping, all behind one zerolog.Logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Options configures Setup.
type Options struct {
	Level       string
	Console     io.Writer
	LogsDir     string
	Name        string
	Start       time.Time
	GraylogAddr string
}

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, name string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", name, sessionStart.Format("20060102_150405")),
	)
}

// Setup returns the logger and a closer for the files and connections it opened.
// An empty LogsDir disables the file, an empty GraylogAddr disables GELF.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.Name == "" {
		opts.Name = "drivesim"
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	closers := multiCloser{}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339}}

	if opts.LogsDir != "" {
		if err := os.MkdirAll(opts.LogsDir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(LogFilePath(opts.LogsDir, opts.Name, opts.Start), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closers = append(closers, f)
	}

	if opts.GraylogAddr != "" {
		gw, err := gelf.NewWriter(opts.GraylogAddr)
		if err != nil {
			_ = closers.Close()
			return zerolog.Nop(), nil, fmt.Errorf("connect graylog: %w", err)
		}
		writers = append(writers, gw)
		closers = append(closers, gw)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("service", opts.Name).
		Logger()
	return logger, closers, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
