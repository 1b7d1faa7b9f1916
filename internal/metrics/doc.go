// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package metrics provides Prometheus metrics for Sideline.

Metrics are registered with promauto on the default registry and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Session Metrics:
  - sessions_active: sessions with a running stream worker (gauge)
  - session_lifecycle_total: start/stop/preference operations (counter)
    Labels: operation
  - stream_worker_exits_total: worker exits (counter)
    Labels: reason (stopped, failed)

Stream Metrics:
  - stream_records_polled_total: records returned by polls (counter)
  - stream_records_discarded_total: records skipped by a worker (counter)
    Labels: reason (other_session, malformed, no_match)
  - stream_commentary_appended_total: lines appended to session logs (counter)
  - stream_cursor_renewals_total: expired positions reopened at latest (counter)
  - stream_messages_published_total: messages published (counter)
    Labels: topic, result

Producer Metrics:
  - producer_launches_total: producer launches (counter)
    Labels: kind, relaunch
  - producer_rows_emitted_total: telemetry rows published by producers (counter)

Enrichment Metrics:
  - enrichment_records_total: enriched records published (counter)
  - enrichment_generator_errors_total: generator failures (counter)
  - enrichment_generator_duration_seconds: generator latency (histogram)

API and Resilience Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - ws_connections: open view websocket connections (gauge)
  - circuit_breaker_state, circuit_breaker_state_transitions_total

Record* helpers wrap the raw collectors so call sites stay one line.
*/
package metrics
