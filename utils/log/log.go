package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DepthHandler annotates each record with the file:line of the caller at a
// fixed stack depth, so the wrapper functions below do not show up as the
// source of every log line.
type DepthHandler struct {
	slog.Handler
	depth int
}

func NewDepthHandler(inner slog.Handler, depth int) slog.Handler {
	return &DepthHandler{
		Handler: inner,
		depth:   depth,
	}
}

func (h *DepthHandler) Handle(ctx context.Context, r slog.Record) error {
	if _, file, line, ok := runtime.Caller(h.depth); ok {
		source := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		r.Add("source", source)
	}
	return h.Handler.Handle(ctx, r)
}

// LogSet installs the default logger. The level is taken from the
// PROVER_MGR_LOG_LEVEL environment variable (debug, info, warn, error).
func LogSet() {
	base := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     levelFromEnv(),
	})
	handler := NewDepthHandler(base, 4)

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("PROVER_MGR_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
