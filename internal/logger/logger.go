// Package logger builds the zerolog logger shared by lumen's components.
//
// Console output is human-readable and goes to stderr at info level (debug
// with --verbose). The log file, when configured, always receives debug-level
// JSON so a misbehaving schedule can be diagnosed after the fact.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Verbose lowers the console level to debug.
	Verbose bool

	// Console enables human-readable output. Disabled while the TUI owns the terminal.
	Console bool

	// ConsoleOut overrides the console destination. Defaults to os.Stderr.
	ConsoleOut io.Writer

	// NoColor disables ANSI colours on the console.
	NoColor bool

	// File is the JSON log path. Empty disables file logging.
	File string
}

// New builds a logger from opts. The returned close function releases the
// log file and must be called on exit.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	var writers []io.Writer
	if opts.Console {
		out := opts.ConsoleOut
		if out == nil {
			out = os.Stderr
		}
		console := zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor,
			TimeFormat: time.DateTime,
		}
		level := zerolog.InfoLevel
		if opts.Verbose {
			level = zerolog.DebugLevel
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: console},
			Level:  level,
		})
	}

	closeFn := noop
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), noop, err
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	if len(writers) == 0 {
		return zerolog.Nop(), noop, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
	return logger, closeFn, nil
}

// openLogFile truncates path; each run starts a fresh "latest" log.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
}
