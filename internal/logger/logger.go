// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-drive-cli application.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain operation-scoped
// loggers via FromContext or WithOperation.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label writing JSON to w.
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a "time" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     instead of the default file:line format.
func NewLogger(role string, w io.Writer) *Logger {
	configureGlobals()

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewClientLogger returns a logger writing to a "logs" file next to the
// executable, so that log lines never interleave with command output.
// When the file cannot be opened the logger writes to stderr.
func NewClientLogger(role string) *Logger {
	var out io.Writer = os.Stderr

	// Open log file near the executable
	if execPath, err := os.Executable(); err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "logs")
		if logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			out = logFile
		}
	}

	return NewLogger(role, out)
}

func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithOperation returns a child logger tagged with the operation name and id
// and a context carrying it, so that FromContext picks it up downstream.
func (l *Logger) WithOperation(ctx context.Context, op, opID string) (context.Context, *Logger) {
	child := &Logger{l.With().Str("op", op).Str("op_id", opID).Logger()}
	return child.WithContext(ctx), child
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
