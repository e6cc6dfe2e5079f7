// Package app provides the orchestration layer for airshare.
//
// # Overview
//
// This package wires configuration, diagnostic logging, the AirPrint bridge
// client, translations and the sharing engine together. It is the
// composition root: Build creates every component once, and both the TUI
// (Run) and the headless CLI commands use the resulting Runtime.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Build()    │
//	└──────┬───────┘
//	       ├─────> config.Load()          ~/.config/airshare/config.toml
//	       ├─────> prefs.Load()           theme and remembered locale
//	       ├─────> logging.New()          zap logger to log_file
//	       ├─────> airprint.NewClient()   HTTP client for the bridge daemon
//	       ├─────> locale.NewSignal()     override > prefs > config > "en"
//	       ├─────> locale.NewCatalog()    embedded en/zh catalogs
//	       └─────> sharing.New()          engine over a logbuf.Buffer
//
//	Run():
//	       ├─────> StartPoller()          periodic Engine.Refresh
//	       └─────> ui.Run()               TUI (blocks)
//
// # Polling Behavior
//
// The poller refreshes immediately and then every poll_interval (default 5
// seconds). While refreshes fail the delay doubles per consecutive failure,
// capped at 30 seconds, and resets after the next success. Failures are
// already reported in the activity log by the engine; the poller only records
// them at debug level.
//
// # Error Handling
//
// Fatal errors (returned from Build/Run):
//   - Malformed config.toml, including invalid durations
//   - Unusable log file location
//   - Invalid api_bind
//
// Everything else, such as an unreachable daemon, is recoverable and shows up
// in the UI instead.
package app
