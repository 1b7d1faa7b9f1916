// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package api provides the HTTP surface of the commentary server.

The router is built on Chi with go-chi/cors and go-chi/httprate. Every route
resolves the caller's session identity from the access-token cookies, so a
browser only ever addresses its own session.

# Endpoints

	GET  /api/v1/health/live          liveness probe
	GET  /api/v1/health/ready         readiness probe (stream and pipeline)
	POST /api/v1/session/start        start the session worker and producer
	POST /api/v1/session/stop         stop them and clear the display logs
	PUT  /api/v1/session/preferences  change language and/or style
	GET  /api/v1/session/view         current commentary and telemetry
	GET  /api/v1/session/status       lifecycle state of the session
	GET  /api/v1/session/ws           websocket view updates
	GET  /metrics                     Prometheus exposition

Responses use the models.APIResponse envelope. Errors carry a machine code
(VALIDATION_ERROR, SESSION_NOT_FOUND, START_FAILED, ...) and a message.
*/
package api
