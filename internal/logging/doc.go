// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package logging provides centralized zerolog-based structured logging for Sideline.
//
// Every component logs through the global logger configured here. JSON output
// is the default; console output is available for local development.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("session_id", id).Msg("Session started")
//	logging.Error().Err(err).Msg("Stream poll failed")
//
//	// Context-aware logging (correlation_id, request_id, session_id)
//	logging.Ctx(ctx).Info().Msg("Preferences updated")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Adapters
//
// Two bridges route third-party logging into zerolog:
//
//   - NewSlogHandler / NewSlogLogger for sutureslog supervisor events
//   - NewWatermillLogger for the Watermill publisher, subscriber and router
//
// # Session Identities
//
// Session identities are derived from access-token cookies and must not be
// written to logs verbatim. Use SanitizeSessionID or the SessionLogger,
// which masks the identity automatically.
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
package logging
