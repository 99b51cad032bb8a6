// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

// LevelVar is shared by the package loggers so the level can be changed at runtime.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context does not carry a logger.
var DefaultLogger = slog.New(NewPrettyHandler(
	&slog.HandlerOptions{Level: LevelVar},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

func init() {
	LevelVar.Set(levelFromEnv(os.Getenv(levelEnvName())))
}

// New returns a child context carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewForTUI returns a context whose logger writes uncoloured lines to w.
// Used while a terminal UI owns the screen; w is replayed afterwards.
func NewForTUI(ctx context.Context, w io.Writer) context.Context {
	return New(ctx, slog.New(NewPrettyHandler(
		&slog.HandlerOptions{Level: LevelVar},
		WithDestinationWriter(w),
	)))
}

// Logger returns the logger carried by ctx, or DefaultLogger.
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return DefaultLogger
}

// Debug logs at debug level using the logger from ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).DebugContext(ctx, msg, args...)
}

// Info logs at info level using the logger from ctx.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).InfoContext(ctx, msg, args...)
}

// Warn logs at warn level using the logger from ctx.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level using the logger from ctx.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).ErrorContext(ctx, msg, args...)
}

// levelEnvName derives the variable name from the executable, so a binary
// named concur reads CONCUR_LOG_LEVEL.
func levelEnvName() string {
	exe, _ := os.Executable()
	exe = filepath.Base(exe)
	exe = strings.TrimSuffix(exe, ".exe")
	exe = strings.NewReplacer("-", "_", ".", "_").Replace(exe)

	return strings.ToUpper(exe) + "_LOG_LEVEL"
}

func levelFromEnv(v string) slog.Level {
	switch strings.ToUpper(v) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
