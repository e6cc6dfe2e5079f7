// Package config loads airshare's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/airshare/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	api_bind = "127.0.0.1:8631"    # AirPrint bridge daemon
//	locale = "en"                   # initial UI language
//	poll_interval = "5s"            # background refresh cadence
//	request_timeout = "5s"          # per HTTP request
//	log_capacity = 100              # activity log entries kept
//	log_file = "~/.local/state/airshare/airshare.log"
//	log_level = "info"              # debug, info, warn, error, off
//	log_format = "json"             # json or console
//
// Every field is optional. Durations use Go syntax and must be positive; a
// malformed duration fails Load rather than silently using the default.
// Tilde expansion is applied to the config path and log_file.
package config
