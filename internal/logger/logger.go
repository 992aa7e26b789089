// Package logger configures the process-wide zerolog logger and adapts it to
// the ports.Logger interface.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Logger is the configured process logger. It always writes to stderr since
// stdout carries command output and hook replies.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// ParseLevel maps a level name to zerolog, defaulting to info.
func ParseLevel(level LogLevel) zerolog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger writing to w. pretty switches to the console writer.
func New(w io.Writer, level LogLevel, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Configure sets up the global logger with the specified level and output
func Configure(level LogLevel, pretty bool) {
	Logger = New(os.Stderr, level, pretty)
	log.Logger = Logger
}

// Adapter exposes a zerolog.Logger through ports.Logger.
type Adapter struct {
	l zerolog.Logger
}

func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

func (a *Adapter) Debug(msg string) { a.l.Debug().Msg(msg) }
func (a *Adapter) Error(msg string) { a.l.Error().Msg(msg) }
