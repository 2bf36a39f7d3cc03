// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"sync"
	"sync/atomic"
)

// Store holds the current frozen configuration snapshot and supports an
// explicit, serialized reload. Current is lock-free; consumers holding a
// snapshot keep observing it consistently until they fetch the next one.
type Store struct {
	load func() (*Config, error)

	mu  sync.Mutex
	cur atomic.Pointer[Config]
}

// NewStore performs the initial load and returns a store serving that
// snapshot. A failed initial load returns the resolution error and no store:
// dependent components must not start.
func NewStore(load func() (*Config, error)) (*Store, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	s := &Store{load: load}
	s.cur.Store(cfg)
	return s, nil
}

// Current returns the current snapshot.
func (s *Store) Current() *Config { return s.cur.Load() }

// Reload builds a brand-new snapshot from the sources and swaps it in
// atomically. Reloads are serialized: a call made while another reload is in
// flight waits for it, then runs against the then-current sources. On failure
// the previous snapshot stays current and the aggregated error is returned.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	s.cur.Store(cfg)
	return nil
}
