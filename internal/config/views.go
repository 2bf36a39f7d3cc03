// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package config

// Typed section views. Each collaborator of the engine (logging subsystem,
// web server, graph-db client, search client, directory client) is handed
// exactly the struct it consumes, not the whole Config.

// Core holds the settings consumed by the logging subsystem.
type Core struct {
	DatabookHome      string
	BaseLogFolder     string
	LoggingLevel      string
	LogFormat         string
	LoggingBufferSize int
	LoggingFlushLevel string
}

// Webserver holds the settings consumed by the web server.
type Webserver struct {
	BaseURL                string
	Host                   string
	Port                   int
	SSLCert                string
	SSLKey                 string
	WorkerTimeout          int
	WorkerRefreshBatchSize int
	WorkerRefreshInterval  int
	Workers                int
	WorkerClass            string
	AccessLogfile          string
	ErrorLogfile           string
	Authenticate           bool
}

// SSLEnabled reports whether both halves of the certificate pair are set.
// The resolver guarantees they are set or empty together.
func (w Webserver) SSLEnabled() bool { return w.SSLCert != "" }

// GraphDB holds the settings consumed by the Neo4j client.
type GraphDB struct {
	URL  string
	User string
	Pass string
}

// Elasticsearch holds the settings consumed by the search client.
type Elasticsearch struct {
	BaseURL string
}

// LDAP holds the settings consumed by the directory client.
type LDAP struct {
	URI             string
	UserFilter      string
	UserNameAttr    string
	GroupMemberAttr string
	BindUser        string
	BindPassword    string
	BaseDN          string
	SearchScope     string
}

// Enabled reports whether directory integration is configured at all.
func (l LDAP) Enabled() bool { return l.URI != "" }

// Core returns the logging subsystem's view of the configuration.
func (c *Config) Core() Core {
	return Core{
		DatabookHome:      c.MustString("core", "databook_home"),
		BaseLogFolder:     c.MustString("core", "base_log_folder"),
		LoggingLevel:      c.MustString("core", "logging_level"),
		LogFormat:         c.MustString("core", "log_format"),
		LoggingBufferSize: c.MustInt("core", "logging_buffer_size"),
		LoggingFlushLevel: c.MustString("core", "logging_flush_level"),
	}
}

// Webserver returns the web server's view of the configuration.
func (c *Config) Webserver() Webserver {
	return Webserver{
		BaseURL:                c.MustString("webserver", "base_url"),
		Host:                   c.MustString("webserver", "web_server_host"),
		Port:                   c.MustInt("webserver", "web_server_port"),
		SSLCert:                c.MustString("webserver", "web_server_ssl_cert"),
		SSLKey:                 c.MustString("webserver", "web_server_ssl_key"),
		WorkerTimeout:          c.MustInt("webserver", "web_server_worker_timeout"),
		WorkerRefreshBatchSize: c.MustInt("webserver", "worker_refresh_batch_size"),
		WorkerRefreshInterval:  c.MustInt("webserver", "worker_refresh_interval"),
		Workers:                c.MustInt("webserver", "workers"),
		WorkerClass:            c.MustString("webserver", "worker_class"),
		AccessLogfile:          c.MustString("webserver", "access_logfile"),
		ErrorLogfile:           c.MustString("webserver", "error_logfile"),
		Authenticate:           c.MustBool("webserver", "authenticate"),
	}
}

// GraphDB returns the graph-database client's view of the configuration.
func (c *Config) GraphDB() GraphDB {
	return GraphDB{
		URL:  c.MustString("graphdb", "neo4j_url"),
		User: c.MustString("graphdb", "neo4j_user"),
		Pass: c.MustString("graphdb", "neo4j_pass"),
	}
}

// Elasticsearch returns the search client's view of the configuration.
func (c *Config) Elasticsearch() Elasticsearch {
	return Elasticsearch{
		BaseURL: c.MustString("elasticsearch", "base_url"),
	}
}

// LDAP returns the directory client's view of the configuration.
func (c *Config) LDAP() LDAP {
	return LDAP{
		URI:             c.MustString("ldap", "uri"),
		UserFilter:      c.MustString("ldap", "user_filter"),
		UserNameAttr:    c.MustString("ldap", "user_name_attr"),
		GroupMemberAttr: c.MustString("ldap", "group_member_attr"),
		BindUser:        c.MustString("ldap", "bind_user"),
		BindPassword:    c.MustString("ldap", "bind_password"),
		BaseDN:          c.MustString("ldap", "basedn"),
		SearchScope:     c.MustString("ldap", "search_scope"),
	}
}
