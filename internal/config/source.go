// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// EnvPrefix is the marker for configuration overrides in the process
// environment: DATABOOK__<SECTION>__<KEY> maps to (section, key).
const EnvPrefix = "DATABOOK__"

//go:embed databook_defaults.cfg
var bundledDefaults []byte

// layer is one raw configuration source: section -> key -> raw value.
// Layers are ordered lowest precedence first.
type layer struct {
	name   string
	values map[string]map[string]string
}

func defaultsLayer() (layer, error) {
	return parseCfg("bundled defaults", bundledDefaults)
}

func fileLayer(path string) (layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layer{}, err
	}
	return parseCfg(path, data)
}

// parseCfg parses sectioned `key = value` text: `#` comments, blank lines
// ignored, keys case-sensitive.
func parseCfg(name string, data []byte) (layer, error) {
	f, err := ini.Load(data)
	if err != nil {
		return layer{}, &SourceFormatError{Source: name, Line: errorLine(data, err), Err: err}
	}

	l := layer{name: name, values: make(map[string]map[string]string)}
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if len(keys) == 0 {
			continue
		}
		m := make(map[string]string, len(keys))
		for _, k := range keys {
			m[k.Name()] = k.Value()
		}
		l.values[sec.Name()] = m
	}
	return l, nil
}

// errorLine locates the offending line of a parse error in the source text.
// ini errors carry the line content, not its number; zero means the parser
// reported no position.
func errorLine(data []byte, err error) int {
	var delim ini.ErrDelimiterNotFound
	if !errors.As(err, &delim) {
		return 0
	}
	want := strings.TrimSpace(delim.Line)
	for i, line := range bytes.Split(data, []byte("\n")) {
		if strings.TrimSpace(string(line)) == want {
			return i + 1
		}
	}
	return 0
}

// envLayer extracts DATABOOK__SECTION__KEY overrides from environ entries
// ("NAME=value" form, as returned by os.Environ). Variables under the prefix
// that cannot be split into section and key are reported as format errors;
// well-formed ones are still collected.
func envLayer(environ []string) (layer, []error) {
	l := layer{name: "environment", values: make(map[string]map[string]string)}
	var problems []error

	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		rest, ok := strings.CutPrefix(name, EnvPrefix)
		if !ok {
			continue
		}
		sec, key, ok := strings.Cut(rest, "__")
		if !ok || sec == "" || key == "" {
			problems = append(problems, &SourceFormatError{
				Source: "environment",
				Err:    fmt.Errorf("variable %s does not split into %sSECTION__KEY", name, EnvPrefix),
			})
			continue
		}
		section := strings.ToLower(sec)
		if l.values[section] == nil {
			l.values[section] = make(map[string]string)
		}
		l.values[section][strings.ToLower(key)] = value
	}
	return l, problems
}
