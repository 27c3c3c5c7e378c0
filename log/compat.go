// Package log is a thin wrapper over github.com/luxfi/log giving the
// engine leveled, structured logging with a slog-compatible handler
// surface.
package log

import (
	"io"
	"log/slog"

	luxlog "github.com/luxfi/log"
)

// Logger re-exports luxfi/log's Logger type.
type Logger = luxlog.Logger

// Root re-exports luxfi/log's root logger accessor.
var Root = luxlog.Root

// NewLogger returns luxfi/log's root logger. The handler h is not used:
// the returned logger writes through luxfi/log's own root handler.
func NewLogger(h slog.Handler) Logger {
	return luxlog.Root()
}

// LvlFromString returns the slog.Level named by lvlString, or an error
// if it names no known level.
func LvlFromString(lvlString string) (slog.Level, error) {
	level, err := luxlog.ToLevel(lvlString)
	return slog.Level(level), err
}

// SetDefault sets the default logger.
func SetDefault(l Logger) {
	luxlog.SetDefault(l)
}

// NewTerminalHandler returns a handler that writes human-readable log
// lines to w.
func NewTerminalHandler(w io.Writer, useColor bool) slog.Handler {
	return slog.NewTextHandler(w, nil)
}
