// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databook-project/databook/internal/config"
)

// TestApplyLevel verifies the mapping from core.logging_level to zerolog
// levels, including the fallback for unexpected input.
func TestApplyLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"DEBUG", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"warn", zerolog.WarnLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := NewLogger("test").ApplyLevel(config.Core{LoggingLevel: tt.level})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

// TestConfigSnapshot_RedactsSecrets verifies that the only sanctioned way to
// log configuration never emits secret plaintext.
func TestConfigSnapshot_RedactsSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATABOOK_HOME", "")
	t.Setenv("DATABOOK_CONFIG", "")
	t.Setenv("DATABOOK__GRAPHDB__NEO4J_PASS", "hunter2")

	cfg, err := config.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).Level(zerolog.DebugLevel)}
	l.ConfigSnapshot(cfg)

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "neo4j_pass")
	assert.Contains(t, out, "resolved configuration")
}

// TestNop discards output.
func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Info().Msg("dropped")
	})
}
