// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"fmt"
	"strings"
)

// Config is the immutable, validated configuration set. It is constructed
// once by the resolver, never mutated afterwards, and therefore safe for
// concurrent reads without locking. Consumers receive it by injection and
// read through Get, the Must accessors, or the typed section views.
type Config struct {
	schema *Schema
	values map[string]map[string]Value
}

// Get returns the value for (section, key), or an *UnknownKeyError when the
// key was never declared in the schema.
func (c *Config) Get(section, key string) (Value, error) {
	if _, ok := c.schema.Entry(section, key); !ok {
		return Value{}, &UnknownKeyError{Section: section, Key: key}
	}
	return c.values[section][key], nil
}

// MustString returns the string form of a declared key. Asking for an
// undeclared key is a programming error and panics.
func (c *Config) MustString(section, key string) string {
	return c.must(section, key).Str()
}

// MustInt returns a declared integer key, panicking on undeclared keys and
// kind mismatches.
func (c *Config) MustInt(section, key string) int {
	v := c.must(section, key)
	if v.Kind() != KindInt {
		panic(fmt.Sprintf("config: %s.%s is %s, not integer", section, key, v.Kind()))
	}
	return v.Int()
}

// MustBool returns a declared boolean key, panicking on undeclared keys and
// kind mismatches.
func (c *Config) MustBool(section, key string) bool {
	v := c.must(section, key)
	if v.Kind() != KindBool {
		panic(fmt.Sprintf("config: %s.%s is %s, not boolean", section, key, v.Kind()))
	}
	return v.Bool()
}

func (c *Config) must(section, key string) Value {
	v, err := c.Get(section, key)
	if err != nil {
		panic("config: " + err.Error())
	}
	return v
}

// Render produces the effective configuration as sectioned text, suitable
// for diagnostics and for feeding back into the resolver. Secret values are
// rendered as the redaction marker; literal braces and percents are
// re-escaped so that re-resolving the output yields the same typed values
// (secrets excepted).
func (c *Config) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Databook effective configuration, schema v%s. Secrets are redacted.\n", SchemaVersion)
	for _, section := range c.schema.Sections() {
		fmt.Fprintf(&b, "\n[%s]\n", section)
		for _, key := range c.schema.Keys(section) {
			v := c.values[section][key]
			if v.IsSecret() {
				fmt.Fprintf(&b, "%s = %s\n", key, Redacted)
				continue
			}
			fmt.Fprintf(&b, "%s = %s\n", key, escapeLiteral(v.Str()))
		}
	}
	return b.String()
}

var literalEscaper = strings.NewReplacer("{", "{{", "}", "}}", "%", "%%")

func escapeLiteral(s string) string { return literalEscaper.Replace(s) }
