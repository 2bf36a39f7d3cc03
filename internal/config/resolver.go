// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
)

// Resolver runs the merge -> interpolate -> coerce -> validate -> freeze
// pipeline over an ordered list of raw layers.
type Resolver struct {
	Schema *Schema

	// Builtins are the variables seeded before any section is processed,
	// e.g. DATABOOK_HOME and HOME.
	Builtins map[string]string
}

// Resolve merges the layers (lowest precedence first) on top of the schema
// defaults and produces a frozen *Config. Every problem found in any stage is
// collected; on failure the returned error is a *ResolutionError enumerating
// all of them and no Config is produced.
func (r *Resolver) Resolve(layers []layer) (*Config, error) {
	var problems []error

	// Merge. Schema defaults form the base; each layer overrides, including
	// with explicit empty strings (empty disables a feature, it is not
	// "unset"). Keys without a schema entry are rejected.
	merged := make(map[string]map[string]string, len(r.Schema.Sections()))
	for _, section := range r.Schema.Sections() {
		m := make(map[string]string, len(r.Schema.Keys(section)))
		for _, key := range r.Schema.Keys(section) {
			e, _ := r.Schema.Entry(section, key)
			m[key] = e.Default
		}
		merged[section] = m
	}

	defined := make(map[string]bool)
	for _, l := range layers {
		known := make(map[string]map[string]string, len(l.values))
		for section, keys := range l.values {
			for key, value := range keys {
				if _, ok := r.Schema.Entry(section, key); !ok {
					problems = append(problems, &UnknownKeyError{Section: section, Key: key, Source: l.name})
					continue
				}
				defined[section+"."+key] = true
				if value == "" {
					// mergo skips zero-value source entries, but an explicit
					// empty string is an override too: write it through.
					merged[section][key] = ""
					continue
				}
				if known[section] == nil {
					known[section] = make(map[string]string)
				}
				known[section][key] = value
			}
		}
		if err := mergo.Merge(&merged, known, mergo.WithOverride); err != nil {
			problems = append(problems, fmt.Errorf("merging %s: %w", l.name, err))
		}
	}

	for _, section := range r.Schema.Sections() {
		for _, key := range r.Schema.Keys(section) {
			e, _ := r.Schema.Entry(section, key)
			if e.Required && e.Default == "" && !defined[section+"."+key] {
				problems = append(problems, &ConstraintViolationError{
					Section: section, Key: key,
					Reason: "required key is not set by any source and has no default",
				})
			}
		}
	}

	// Interpolate. Dependency order is handled by the interpolator itself;
	// keys whose expansion failed are left out of the resolved set so later
	// stages do not pile secondary errors on top.
	ip := newInterpolator(merged, r.Builtins)
	resolved := make(map[string]map[string]string, len(merged))
	for _, section := range r.Schema.Sections() {
		resolved[section] = make(map[string]string)
		for _, key := range r.Schema.Keys(section) {
			if v, err := ip.resolve(section, key); err == nil {
				resolved[section][key] = v
			}
		}
	}
	problems = append(problems, ip.problems...)

	// Coerce and validate per key.
	values := make(map[string]map[string]Value, len(resolved))
	for _, section := range r.Schema.Sections() {
		values[section] = make(map[string]Value)
		for _, key := range r.Schema.Keys(section) {
			raw, ok := resolved[section][key]
			if !ok {
				continue
			}
			e, _ := r.Schema.Entry(section, key)
			if raw == "" && e.AllowEmpty {
				values[section][key] = Value{kind: e.Kind, secret: e.Secret}
				continue
			}
			v, err := coerce(section, key, e, raw)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			if e.Check != nil {
				if cerr := e.Check(v); cerr != nil {
					problems = append(problems, &ConstraintViolationError{Section: section, Key: key, Reason: cerr.Error()})
				}
			}
			values[section][key] = v
		}
	}

	// Cross-key rules see the coerced set; keys that failed earlier stages
	// read as zero values.
	get := func(section, key string) Value { return values[section][key] }
	for _, rule := range r.Schema.Rules() {
		for _, violation := range rule.Check(get) {
			problems = append(problems, violation)
		}
	}

	if len(problems) > 0 {
		return nil, &ResolutionError{Problems: problems}
	}
	return &Config{schema: r.Schema, values: values}, nil
}

// coerce converts a resolved string to its declared kind. Enum mismatches are
// constraint violations (the set is schema-declared); everything else that
// fails here is a coercion error. Secret values never appear in reasons.
func coerce(section, key string, e Entry, raw string) (Value, error) {
	v := Value{kind: e.Kind, secret: e.Secret, raw: raw}

	switch e.Kind {
	case KindString, KindSecret:
		return v, nil

	case KindPath:
		if raw == "" {
			return Value{}, &TypeCoercionError{Section: section, Key: key, Reason: "path must not be empty"}
		}
		v.raw = filepath.Clean(raw)
		return v, nil

	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, &TypeCoercionError{Section: section, Key: key, Reason: fmt.Sprintf("cannot parse %q as integer", raw)}
		}
		v.num = n
		return v, nil

	case KindBool:
		switch strings.ToLower(raw) {
		case "true", "yes", "1":
			v.flag = true
		case "false", "no", "0":
			v.flag = false
		default:
			return Value{}, &TypeCoercionError{Section: section, Key: key, Reason: fmt.Sprintf("%q is not a boolean (true/false/yes/no/1/0)", raw)}
		}
		return v, nil

	case KindEnum:
		for _, allowed := range e.Enum {
			if strings.EqualFold(allowed, raw) {
				v.raw = allowed
				return v, nil
			}
		}
		return Value{}, &ConstraintViolationError{
			Section: section, Key: key,
			Reason: fmt.Sprintf("value %q is not one of {%s}", raw, strings.Join(e.Enum, ", ")),
		}

	case KindURL:
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Value{}, &TypeCoercionError{Section: section, Key: key, Reason: fmt.Sprintf("%q is not a well-formed url", raw)}
		}
		return v, nil

	default:
		return Value{}, &TypeCoercionError{Section: section, Key: key, Reason: fmt.Sprintf("unsupported kind %v", e.Kind)}
	}
}
