package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Options selects the level and handler of the logger.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // auto, text, json
	Verbose bool
}

// Init creates the logger for a command run and installs it as the slog
// default. Output goes to stderr so it never mixes with command results.
//
// With format "auto" a terminal gets the text handler and a pipe gets JSON.
// Verbose, or LOG_LEVEL=debug in the environment, forces debug level.
func Init(opts Options) *slog.Logger {
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		opts.Verbose = true
	}
	log := New(os.Stderr, opts, term.IsTerminal(int(os.Stderr.Fd())))
	slog.SetDefault(log)
	return log
}

// New creates a logger writing to w. isTerminal decides the "auto" format.
func New(w io.Writer, opts Options, isTerminal bool) *slog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		if isTerminal {
			handler = slog.NewTextHandler(w, handlerOpts)
		} else {
			handler = slog.NewJSONHandler(w, handlerOpts)
		}
	}
	return slog.New(handler)
}

// ParseLevel converts a level name, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
