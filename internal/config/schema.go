// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

import (
	"fmt"
)

// SchemaVersion identifies the schema table revision. It is rendered in
// diagnostics so operators can tell which key set a binary recognizes.
const SchemaVersion = "1"

// Entry declares one recognized configuration key: its kind, default raw
// value, secrecy, and validation constraint.
//
// A Default of "" combined with Required means the key has no default and
// must be supplied by a source. AllowEmpty marks keys where an empty string
// is a deliberate "feature disabled" setting; empty values for such keys skip
// coercion and constraint checks entirely.
type Entry struct {
	Kind       Kind
	Default    string
	Required   bool
	Secret     bool
	AllowEmpty bool

	// Enum lists the allowed values for KindEnum entries. Matching is
	// case-insensitive; the declared spelling is the canonical one.
	Enum []string

	// Check is the per-key constraint predicate, run after coercion.
	// The returned error carries only the reason; the resolver attaches
	// section and key.
	Check func(v Value) error
}

// Rule is a named cross-key constraint evaluated over the fully coerced
// value set.
type Rule struct {
	Name  string
	Check func(get func(section, key string) Value) []*ConstraintViolationError
}

// Schema is the closed table of recognized sections and keys. It is consumed
// read-only by the resolver; adding a recognized key means adding a table
// entry in DefaultSchema, nothing else.
type Schema struct {
	sections []string
	keys     map[string][]string
	entries  map[string]map[string]Entry
	rules    []Rule
}

func newSchema() *Schema {
	return &Schema{
		keys:    make(map[string][]string),
		entries: make(map[string]map[string]Entry),
	}
}

func (s *Schema) add(section, key string, e Entry) {
	if _, ok := s.entries[section]; !ok {
		s.sections = append(s.sections, section)
		s.entries[section] = make(map[string]Entry)
	}
	s.keys[section] = append(s.keys[section], key)
	s.entries[section][key] = e
}

func (s *Schema) rule(name string, check func(get func(section, key string) Value) []*ConstraintViolationError) {
	s.rules = append(s.rules, Rule{Name: name, Check: check})
}

// Entry returns the schema entry for (section, key) and whether it exists.
func (s *Schema) Entry(section, key string) (Entry, bool) {
	e, ok := s.entries[section][key]
	return e, ok
}

// Sections returns the section names in declaration order.
func (s *Schema) Sections() []string { return s.sections }

// Keys returns the key names of a section in declaration order.
func (s *Schema) Keys(section string) []string { return s.keys[section] }

// Rules returns the cross-key rules.
func (s *Schema) Rules() []Rule { return s.rules }

func minInt(lo int64) func(Value) error {
	return func(v Value) error {
		if v.Int64() < lo {
			return fmt.Errorf("must be at least %d, got %d", lo, v.Int64())
		}
		return nil
	}
}

func intRange(lo, hi int64) func(Value) error {
	return func(v Value) error {
		if v.Int64() < lo || v.Int64() > hi {
			return fmt.Errorf("must be in range %d-%d, got %d", lo, hi, v.Int64())
		}
		return nil
	}
}

var logLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultSchema returns the schema table for the current SchemaVersion.
func DefaultSchema() *Schema {
	s := newSchema()

	s.add("core", "databook_home", Entry{Kind: KindPath, Default: "{HOME}/databook"})
	s.add("core", "base_log_folder", Entry{Kind: KindPath, Default: "{DATABOOK_HOME}/logs"})
	s.add("core", "logging_level", Entry{Kind: KindEnum, Default: "INFO", Enum: logLevels})
	s.add("core", "log_format", Entry{Kind: KindString, Default: "json"})
	s.add("core", "logging_buffer_size", Entry{Kind: KindInt, Default: "0", Check: minInt(0)})
	s.add("core", "logging_flush_level", Entry{Kind: KindEnum, Default: "ERROR", Enum: logLevels})

	s.add("webserver", "base_url", Entry{Kind: KindURL, Default: "http://localhost:8080"})
	s.add("webserver", "web_server_host", Entry{Kind: KindString, Default: "0.0.0.0"})
	s.add("webserver", "web_server_port", Entry{Kind: KindInt, Default: "8080", Check: intRange(1, 65535)})
	s.add("webserver", "web_server_ssl_cert", Entry{Kind: KindPath, AllowEmpty: true})
	s.add("webserver", "web_server_ssl_key", Entry{Kind: KindPath, AllowEmpty: true})
	s.add("webserver", "web_server_worker_timeout", Entry{Kind: KindInt, Default: "120", Check: minInt(1)})
	s.add("webserver", "worker_refresh_batch_size", Entry{Kind: KindInt, Default: "1", Check: minInt(1)})
	s.add("webserver", "worker_refresh_interval", Entry{Kind: KindInt, Default: "30", Check: minInt(0)})
	s.add("webserver", "workers", Entry{Kind: KindInt, Default: "4", Check: minInt(1)})
	s.add("webserver", "worker_class", Entry{Kind: KindEnum, Default: "sync", Enum: []string{"sync", "eventlet", "gevent"}})
	s.add("webserver", "access_logfile", Entry{Kind: KindPath, AllowEmpty: true})
	s.add("webserver", "error_logfile", Entry{Kind: KindPath, AllowEmpty: true})
	s.add("webserver", "authenticate", Entry{Kind: KindBool, Default: "False"})

	s.add("graphdb", "neo4j_url", Entry{Kind: KindURL, Default: "bolt://localhost:7687"})
	s.add("graphdb", "neo4j_user", Entry{Kind: KindString, Default: "neo4j"})
	s.add("graphdb", "neo4j_pass", Entry{Kind: KindSecret, Default: "neo4j", Secret: true})

	s.add("elasticsearch", "base_url", Entry{Kind: KindURL, Default: "http://localhost:9200"})

	s.add("ldap", "uri", Entry{Kind: KindURL, AllowEmpty: true})
	s.add("ldap", "user_filter", Entry{Kind: KindString, Default: "objectClass=*"})
	s.add("ldap", "user_name_attr", Entry{Kind: KindString, Default: "uid"})
	s.add("ldap", "group_member_attr", Entry{Kind: KindString, Default: "memberUid"})
	s.add("ldap", "bind_user", Entry{Kind: KindString, AllowEmpty: true})
	s.add("ldap", "bind_password", Entry{Kind: KindSecret, Secret: true, AllowEmpty: true})
	s.add("ldap", "basedn", Entry{Kind: KindString, AllowEmpty: true})
	s.add("ldap", "search_scope", Entry{Kind: KindEnum, Default: "subtree", Enum: []string{"base", "onelevel", "subtree"}})

	// SSL is enabled by setting both the certificate and the key; setting
	// only one is a misconfiguration, both empty means SSL is off.
	s.rule("ssl_pair", func(get func(section, key string) Value) []*ConstraintViolationError {
		cert := get("webserver", "web_server_ssl_cert")
		key := get("webserver", "web_server_ssl_key")
		if cert.IsEmpty() != key.IsEmpty() {
			which := "web_server_ssl_cert"
			if key.IsEmpty() {
				which = "web_server_ssl_key"
			}
			return []*ConstraintViolationError{{
				Section: "webserver",
				Key:     which,
				Reason:  "web_server_ssl_cert and web_server_ssl_key must both be set or both be empty",
			}}
		}
		return nil
	})

	// Authentication is backed by the directory service, so turning it on
	// without an LDAP URI cannot work.
	s.rule("authenticate_requires_ldap_uri", func(get func(section, key string) Value) []*ConstraintViolationError {
		if get("webserver", "authenticate").Bool() && get("ldap", "uri").IsEmpty() {
			return []*ConstraintViolationError{{
				Section: "ldap",
				Key:     "uri",
				Reason:  "ldap.uri must be set when webserver.authenticate is true",
			}}
		}
		return nil
	})

	return s
}
