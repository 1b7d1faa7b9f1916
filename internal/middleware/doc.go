// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package middleware provides HTTP middleware for the Sideline API.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID header plus request and correlation IDs in the
    logging context
  - SessionIdentity: resolves the viewer session from its cookie and
    stores it in the request context
  - PrometheusMetrics: request count, latency and in-flight gauges, labelled
    with the chi route pattern

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.SessionIdentity).Get("/api/v1/session/view", h.View)
*/
package middleware
