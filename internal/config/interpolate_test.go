// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValues(core map[string]string, extra map[string]map[string]string) map[string]map[string]string {
	values := map[string]map[string]string{"core": core}
	for section, keys := range extra {
		values[section] = keys
	}
	return values
}

// ── expansion ─────────────────────────────────────────────────────────────────

// TestInterpolator_PlainValue verifies that values without placeholders pass
// through unchanged.
func TestInterpolator_PlainValue(t *testing.T) {
	ip := newInterpolator(testValues(map[string]string{"a": "hello"}, nil), nil)

	out, err := ip.resolve("core", "a")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

// TestInterpolator_BuiltinVariable verifies that {NAME} resolves from the
// built-in set when no core key matches.
func TestInterpolator_BuiltinVariable(t *testing.T) {
	ip := newInterpolator(
		testValues(map[string]string{"a": "{HOME}/databook"}, nil),
		map[string]string{"HOME": "/home/alice"},
	)

	out, err := ip.resolve("core", "a")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/databook", out)
}

// TestInterpolator_CoreKeyReference verifies that a bare {NAME} resolves to
// the core section key of the same lowercased name, and that the referenced
// value is itself expanded first.
func TestInterpolator_CoreKeyReference(t *testing.T) {
	ip := newInterpolator(
		testValues(map[string]string{
			"databook_home":   "{HOME}/databook",
			"base_log_folder": "{DATABOOK_HOME}/logs",
		}, nil),
		map[string]string{"HOME": "/home/alice"},
	)

	out, err := ip.resolve("core", "base_log_folder")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/databook/logs", out)
}

// TestInterpolator_CoreKeyShadowsBuiltin verifies that a core key wins over a
// built-in of the same name.
func TestInterpolator_CoreKeyShadowsBuiltin(t *testing.T) {
	ip := newInterpolator(
		testValues(map[string]string{
			"databook_home": "/opt/databook",
			"target":        "{DATABOOK_HOME}",
		}, nil),
		map[string]string{"DATABOOK_HOME": "/should/not/win"},
	)

	out, err := ip.resolve("core", "target")
	require.NoError(t, err)
	assert.Equal(t, "/opt/databook", out)
}

// TestInterpolator_CrossSectionReference verifies the {SECTION__KEY} form.
func TestInterpolator_CrossSectionReference(t *testing.T) {
	ip := newInterpolator(testValues(nil, map[string]map[string]string{
		"webserver": {
			"web_server_host": "0.0.0.0",
			"web_server_port": "8080",
			"base_url":        "http://{WEBSERVER__WEB_SERVER_HOST}:{WEBSERVER__WEB_SERVER_PORT}",
		},
	}), nil)

	out, err := ip.resolve("webserver", "base_url")
	require.NoError(t, err)
	assert.Equal(t, "http://0.0.0.0:8080", out)
}

// TestInterpolator_OrderIndependence verifies that the final strings do not
// depend on which key is resolved first.
func TestInterpolator_OrderIndependence(t *testing.T) {
	values := func() map[string]map[string]string {
		return testValues(map[string]string{
			"a": "{B}/a",
			"b": "{HOME}/b",
		}, nil)
	}
	builtins := map[string]string{"HOME": "/h"}

	first := newInterpolator(values(), builtins)
	aFirst, err := first.resolve("core", "a")
	require.NoError(t, err)
	bFirst, err := first.resolve("core", "b")
	require.NoError(t, err)

	second := newInterpolator(values(), builtins)
	bSecond, err := second.resolve("core", "b")
	require.NoError(t, err)
	aSecond, err := second.resolve("core", "a")
	require.NoError(t, err)

	assert.Equal(t, aFirst, aSecond)
	assert.Equal(t, bFirst, bSecond)
	assert.Equal(t, "/h/b/a", aFirst)
}

// ── escapes ───────────────────────────────────────────────────────────────────

// TestInterpolator_Escapes verifies that doubled braces and percents are
// emitted as single literals, not treated as placeholders.
func TestInterpolator_Escapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"doubled braces", "{{not_a_var}}", "{not_a_var}"},
		{"doubled percent", "100%%", "100%"},
		{"single percent", "50% done", "50% done"},
		{"lone closing brace", "a}b", "a}b"},
		{"unterminated brace", "tail{unclosed", "tail{unclosed"},
		{"escape next to placeholder", "{{x}} {HOME}", "{x} /h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := newInterpolator(
				testValues(map[string]string{"a": tt.in}, nil),
				map[string]string{"HOME": "/h"},
			)
			out, err := ip.resolve("core", "a")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

// ── failure modes ─────────────────────────────────────────────────────────────

// TestInterpolator_UnknownPlaceholder verifies the error names the missing
// variable and the referencing key.
func TestInterpolator_UnknownPlaceholder(t *testing.T) {
	ip := newInterpolator(testValues(map[string]string{"a": "{DATABOOK_HOME}/logs"}, nil), nil)

	_, err := ip.resolve("core", "a")
	require.Error(t, err)

	var unknown *UnknownPlaceholderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "DATABOOK_HOME", unknown.Name)
	assert.Equal(t, "core", unknown.Section)
	assert.Equal(t, "a", unknown.Key)
}

// TestInterpolator_Cycle verifies that mutually-referential values fail with
// a cycle error listing the chain instead of looping.
func TestInterpolator_Cycle(t *testing.T) {
	ip := newInterpolator(testValues(map[string]string{
		"a": "{B}",
		"b": "{A}",
	}, nil), nil)

	_, err := ip.resolve("core", "a")
	require.Error(t, err)

	var cycle *InterpolationCycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"core.a", "core.b", "core.a"}, cycle.Cycle)
}

// TestInterpolator_SelfReferenceCycle verifies that a value referencing
// itself is a cycle of length one.
func TestInterpolator_SelfReferenceCycle(t *testing.T) {
	ip := newInterpolator(testValues(map[string]string{"a": "prefix-{A}"}, nil), nil)

	_, err := ip.resolve("core", "a")
	var cycle *InterpolationCycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"core.a", "core.a"}, cycle.Cycle)
}

// TestInterpolator_ProblemRecordedOnce verifies that a failing dependency is
// reported a single time even when several values reference it.
func TestInterpolator_ProblemRecordedOnce(t *testing.T) {
	ip := newInterpolator(testValues(map[string]string{
		"bad":  "{MISSING}",
		"dep1": "{BAD}",
		"dep2": "{BAD}",
	}, nil), nil)

	for _, key := range []string{"bad", "dep1", "dep2"} {
		_, err := ip.resolve("core", key)
		assert.Error(t, err, key)
	}

	require.Len(t, ip.problems, 1)
	var unknown *UnknownPlaceholderError
	require.ErrorAs(t, ip.problems[0], &unknown)
	assert.Equal(t, "MISSING", unknown.Name)
}
