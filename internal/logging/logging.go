package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type settings struct {
	out     io.Writer
	level   zerolog.Level
	console bool
	noColor bool
}

type Option func(*settings)

// WithLevel sets the minimum level.
func WithLevel(level zerolog.Level) Option {
	return func(s *settings) {
		s.level = level
	}
}

// WithWriter replaces stderr as the destination.
func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithConsole forces human readable output on or off.
func WithConsole(enabled bool) Option {
	return func(s *settings) {
		s.console = enabled
	}
}

// WithoutColor strips ANSI colors from console output.
func WithoutColor() Option {
	return func(s *settings) {
		s.noColor = true
	}
}

// ParseLevel maps the config log_level values onto zerolog levels.
func ParseLevel(name string) (zerolog.Level, error) {
	switch name {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warning", "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, errors.Errorf("unknown log level %q", name)
}

// New builds the process logger. Output goes to stderr and uses
// zerolog.ConsoleWriter when stderr is a terminal.
func New(opts ...Option) zerolog.Logger {
	s := settings{
		out:     os.Stderr,
		level:   zerolog.InfoLevel,
		console: term.IsTerminal(int(os.Stderr.Fd())),
	}
	for _, opt := range opts {
		opt(&s)
	}

	out := s.out
	if s.console {
		out = zerolog.ConsoleWriter{Out: s.out, TimeFormat: time.Kitchen, NoColor: s.noColor}
	}
	return zerolog.New(out).Level(s.level).With().Timestamp().Logger()
}
