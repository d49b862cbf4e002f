package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	level  slog.LevelVar
	logger *slog.Logger
)

// Setup initializes the global logger writing JSON lines to stderr.
// Stdout stays free for command output (formatted text, doctor reports).
func Setup(lvl string) {
	SetupWriter(lvl, os.Stderr)
}

// SetupWriter is like Setup but writes to w. Only the first call installs a
// handler; later calls just adjust the level.
func SetupWriter(lvl string, w io.Writer) {
	level.Set(parseLevel(lvl))
	once.Do(func() {
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &level})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
}

// SetLevel changes the active level, e.g. when settings enable debug output.
func SetLevel(lvl string) {
	level.Set(parseLevel(lvl))
}

// logic: default to INFO. If level is invalid, fallback to INFO.
func parseLevel(lvl string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(lvl)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger, or a default one if Setup hasn't been called.
func Get() *slog.Logger {
	if logger == nil {
		Setup("INFO")
	}
	return logger
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// WithAction returns a logger with the action field set.
func WithAction(name string) *slog.Logger {
	return Get().With(slog.String("action", name))
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
