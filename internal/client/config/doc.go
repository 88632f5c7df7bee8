// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the pre-screen REST API
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//	-o string   directory previews are saved to
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "base_url": "http://localhost:8081/api",
//	  "request_timeout": "30s",
//	  "session_db": "portal.db",
//	  "download_dir": "download",
//	  "log_level": "info"
//	}
package config
