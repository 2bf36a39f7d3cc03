// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

// Kind is the declared type of a configuration value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindEnum
	KindPath
	KindURL
	KindSecret
)

// String returns the schema-facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindPath:
		return "path"
	case KindURL:
		return "url"
	case KindSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// Value is a coerced, validated configuration value carrying its declared
// kind. The zero Value is an empty string value.
type Value struct {
	kind   Kind
	secret bool
	raw    string
	num    int64
	flag   bool
}

// Kind returns the declared kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsSecret reports whether the value must never be rendered in plaintext.
func (v Value) IsSecret() bool { return v.secret }

// IsEmpty reports whether the resolved value is the empty string. For keys
// whose schema entry allows empty, this means the feature is disabled.
func (v Value) IsEmpty() bool { return v.raw == "" }

// Str returns the resolved string form of the value, including plaintext for
// secrets. This is the deliberate accessor consumers use; anything destined
// for logs or diagnostics must go through String or Config.Render instead.
func (v Value) Str() string { return v.raw }

// Int64 returns the integer value. Zero for non-integer kinds.
func (v Value) Int64() int64 { return v.num }

// Int returns the integer value as int. Zero for non-integer kinds.
func (v Value) Int() int { return int(v.num) }

// Bool returns the boolean value. False for non-boolean kinds.
func (v Value) Bool() bool { return v.flag }

// String implements fmt.Stringer. Secrets are redacted, which makes a Value
// safe to pass to log fields and format verbs by default.
func (v Value) String() string {
	if v.secret {
		return Redacted
	}
	return v.raw
}
