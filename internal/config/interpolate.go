// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"slices"
	"strings"
)

// interpolator expands {NAME} placeholders across the merged raw value set.
//
// A name resolves, in order, to: another key as {SECTION__KEY}, a key of the
// core section by uppercased name, or a built-in variable. Referenced keys
// are resolved before the referencing value (memoized depth-first), so the
// final strings do not depend on iteration order. The in-progress set detects
// reference cycles.
//
// Escapes: "{{" and "}}" produce literal braces, "%%" a literal percent.
type interpolator struct {
	values   map[string]map[string]string
	builtins map[string]string

	memo     map[string]string
	failed   map[string]error
	inProg   map[string]bool
	stack    []string
	problems []error
}

func newInterpolator(values map[string]map[string]string, builtins map[string]string) *interpolator {
	return &interpolator{
		values:   values,
		builtins: builtins,
		memo:     make(map[string]string),
		failed:   make(map[string]error),
		inProg:   make(map[string]bool),
	}
}

// resolve returns the fully expanded value of (section, key). Errors are
// recorded in ip.problems exactly once, at the frame that discovers them;
// callers up the dependency chain receive the same error unrecorded.
func (ip *interpolator) resolve(section, key string) (string, error) {
	id := section + "." + key
	if v, ok := ip.memo[id]; ok {
		return v, nil
	}
	if err, ok := ip.failed[id]; ok {
		return "", err
	}
	if ip.inProg[id] {
		at := slices.Index(ip.stack, id)
		cycle := append(slices.Clone(ip.stack[at:]), id)
		err := &InterpolationCycleError{Cycle: cycle}
		ip.problems = append(ip.problems, err)
		ip.failed[id] = err
		return "", err
	}

	ip.inProg[id] = true
	ip.stack = append(ip.stack, id)
	out, err := ip.expand(section, key, ip.values[section][key])
	ip.stack = ip.stack[:len(ip.stack)-1]
	delete(ip.inProg, id)

	if err != nil {
		ip.failed[id] = err
		return "", err
	}
	ip.memo[id] = out
	return out, nil
}

func (ip *interpolator) expand(section, key, raw string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(raw); {
		switch raw[i] {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				// Unterminated brace, passed through verbatim.
				b.WriteString(raw[i:])
				i = len(raw)
				continue
			}
			val, err := ip.lookup(section, key, raw[i+1:i+1+end])
			if err != nil {
				return "", err
			}
			b.WriteString(val)
			i += end + 2
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			b.WriteByte('}')
			i++
		case '%':
			if i+1 < len(raw) && raw[i+1] == '%' {
				b.WriteByte('%')
				i += 2
				continue
			}
			b.WriteByte('%')
			i++
		default:
			b.WriteByte(raw[i])
			i++
		}
	}
	return b.String(), nil
}

func (ip *interpolator) lookup(section, key, name string) (string, error) {
	if sec, k, ok := strings.Cut(name, "__"); ok {
		s, k := strings.ToLower(sec), strings.ToLower(k)
		if _, present := ip.values[s][k]; present {
			return ip.resolve(s, k)
		}
	}
	if coreKey := strings.ToLower(name); hasKey(ip.values, "core", coreKey) {
		return ip.resolve("core", coreKey)
	}
	if v, ok := ip.builtins[name]; ok {
		return v, nil
	}
	err := &UnknownPlaceholderError{Name: name, Section: section, Key: key}
	ip.problems = append(ip.problems, err)
	return "", err
}

func hasKey(values map[string]map[string]string, section, key string) bool {
	_, ok := values[section][key]
	return ok
}
