// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"errors"
	"fmt"
	"os"
)

// Loader assembles the layered sources for one resolution run: bundled
// defaults, the optional user override file, and environment overrides.
type Loader struct {
	schema *Schema
	boot   Bootstrap
}

// NewLoader reads the bootstrap environment and returns a loader over the
// default schema.
func NewLoader() (*Loader, error) {
	boot, err := loadBootstrap()
	if err != nil {
		return nil, err
	}
	return &Loader{schema: DefaultSchema(), boot: boot}, nil
}

// Bootstrap returns the bootstrap settings the loader was built with.
func (l *Loader) Bootstrap() Bootstrap { return l.boot }

// Load runs one full resolution: sources in increasing precedence are the
// bundled defaults, a DATABOOK_HOME override, the user file, and the process
// environment. The user file at the default location is optional; a file
// named explicitly via DATABOOK_CONFIG must exist. Any failure is returned as
// a single *ResolutionError.
func (l *Loader) Load() (*Config, error) {
	var layers []layer
	var problems []error

	if d, err := defaultsLayer(); err != nil {
		problems = append(problems, err)
	} else {
		layers = append(layers, d)
	}

	// DATABOOK_HOME in the environment repoints core.databook_home; it sits
	// below the user file so the file can still override it.
	if l.boot.explicitHome {
		layers = append(layers, layer{
			name:   "bootstrap environment",
			values: map[string]map[string]string{"core": {"databook_home": l.boot.Home}},
		})
	}

	if f, err := fileLayer(l.boot.ConfigPath); err != nil {
		var formatErr *SourceFormatError
		switch {
		case errors.As(err, &formatErr):
			problems = append(problems, err)
		case os.IsNotExist(err) && !l.boot.explicitConfig:
			// Optional source, skipped.
		default:
			problems = append(problems, &SourceFormatError{
				Source: l.boot.ConfigPath,
				Err:    fmt.Errorf("cannot read source: %w", err),
			})
		}
	} else {
		layers = append(layers, f)
	}

	env, envProblems := envLayer(os.Environ())
	problems = append(problems, envProblems...)
	layers = append(layers, env)

	if len(problems) > 0 {
		return nil, &ResolutionError{Problems: problems}
	}

	r := &Resolver{
		Schema: l.schema,
		Builtins: map[string]string{
			"DATABOOK_HOME": l.boot.Home,
			"HOME":          l.boot.userHome,
		},
	}
	return r.Resolve(layers)
}

// Load is the package entry point used at process startup: bootstrap from
// the environment, then resolve all layers into a frozen Config.
func Load() (*Config, error) {
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return l.Load()
}
