// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Bootstrap holds the engine's own knobs, read from the environment before
// any configuration layer is loaded: where the databook home folder is and
// where the optional user override file lives.
type Bootstrap struct {
	// Home is the databook home folder, seeded into interpolation as the
	// DATABOOK_HOME built-in. Env: DATABOOK_HOME. Defaults to ~/databook.
	Home string `env:"DATABOOK_HOME"`

	// ConfigPath is the path of the user override file.
	// Env: DATABOOK_CONFIG. Defaults to $DATABOOK_HOME/databook.cfg.
	ConfigPath string `env:"DATABOOK_CONFIG"`

	userHome       string
	explicitHome   bool
	explicitConfig bool
}

// loadBootstrap populates a Bootstrap from environment variables and fills
// in the home-derived defaults.
func loadBootstrap() (Bootstrap, error) {
	var b Bootstrap
	if err := env.Parse(&b); err != nil {
		return Bootstrap{}, fmt.Errorf("error getting env configs: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Bootstrap{}, fmt.Errorf("error resolving user home: %w", err)
	}
	b.userHome = home

	b.explicitHome = b.Home != ""
	if b.Home == "" {
		b.Home = filepath.Join(home, "databook")
	}

	b.explicitConfig = b.ConfigPath != ""
	if b.ConfigPath == "" {
		b.ConfigPath = filepath.Join(b.Home, "databook.cfg")
	}

	return b, nil
}
