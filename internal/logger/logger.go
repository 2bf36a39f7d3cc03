// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

// Package logger provides a thin wrapper around zerolog.Logger used by the
// databook binaries.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Configuration is only ever logged through ConfigSnapshot, which renders
// secrets redacted.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/databook-project/databook/internal/config"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label (e.g. "cli",
// "resolver"). Output is JSON on stderr with a "role" field and a timestamp
// on every entry. The level defaults to info until ApplyLevel is called with
// a resolved configuration.
func NewLogger(role string) *Logger {
	l := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all log output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// ApplyLevel returns a child logger whose level matches the resolved
// core.logging_level value (DEBUG, INFO, WARN or ERROR).
func (l *Logger) ApplyLevel(core config.Core) *Logger {
	level := zerolog.InfoLevel
	switch strings.ToUpper(core.LoggingLevel) {
	case "DEBUG":
		level = zerolog.DebugLevel
	case "INFO":
		level = zerolog.InfoLevel
	case "WARN":
		level = zerolog.WarnLevel
	case "ERROR":
		level = zerolog.ErrorLevel
	}
	return &Logger{l.Level(level)}
}

// ConfigSnapshot logs the effective configuration at debug level. The
// rendering comes from Config.Render, so secret values are redacted before
// they reach the log stream.
func (l *Logger) ConfigSnapshot(cfg *config.Config) {
	l.Debug().Str("config", cfg.Render()).Msg("resolved configuration")
}
