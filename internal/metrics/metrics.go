// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session Metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of sessions with a running stream worker",
		},
	)

	SessionLifecycle = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_lifecycle_total",
			Help: "Total number of session lifecycle operations",
		},
		[]string{"operation"}, // "start", "stop", "preferences"
	)

	WorkerExits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_worker_exits_total",
			Help: "Total number of stream worker exits",
		},
		[]string{"reason"}, // "stopped", "failed"
	)

	// Stream Metrics
	RecordsPolled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_records_polled_total",
			Help: "Total number of records returned by stream polls",
		},
	)

	RecordsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_records_discarded_total",
			Help: "Total number of records skipped by stream workers",
		},
		[]string{"reason"}, // "other_session", "malformed", "no_match"
	)

	CommentaryAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_commentary_appended_total",
			Help: "Total number of commentary lines appended to session logs",
		},
	)

	CursorRenewals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_cursor_renewals_total",
			Help: "Total number of expired stream positions reopened at latest",
		},
	)

	MessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_messages_published_total",
			Help: "Total number of messages published to streams",
		},
		[]string{"topic", "result"},
	)

	// Producer Metrics
	ProducerLaunches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producer_launches_total",
			Help: "Total number of telemetry producer launches",
		},
		[]string{"kind", "relaunch"},
	)

	ProducerRowsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "producer_rows_emitted_total",
			Help: "Total number of telemetry rows published by producers",
		},
	)

	// Enrichment Metrics
	EnrichmentRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_records_total",
			Help: "Total number of enriched records published",
		},
	)

	EnrichmentGeneratorErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_generator_errors_total",
			Help: "Total number of commentary generator failures",
		},
	)

	EnrichmentGeneratorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_generator_duration_seconds",
			Help:    "Commentary generator latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections",
			Help: "Current number of open view websocket connections",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// Discard reasons.
const (
	DiscardOtherSession = "other_session"
	DiscardMalformed    = "malformed"
	DiscardNoMatch      = "no_match"
)

// RecordSessionOperation counts a lifecycle operation.
func RecordSessionOperation(operation string) {
	SessionLifecycle.WithLabelValues(operation).Inc()
}

// RecordWorkerStart marks a worker as running.
func RecordWorkerStart() {
	SessionsActive.Inc()
}

// RecordWorkerExit marks a worker as exited.
func RecordWorkerExit(failed bool) {
	SessionsActive.Dec()
	reason := "stopped"
	if failed {
		reason = "failed"
	}
	WorkerExits.WithLabelValues(reason).Inc()
}

// RecordPoll counts records returned by one poll.
func RecordPoll(records int) {
	RecordsPolled.Add(float64(records))
}

// RecordDiscard counts a record skipped by a worker.
func RecordDiscard(reason string) {
	RecordsDiscarded.WithLabelValues(reason).Inc()
}

// RecordAppend counts a commentary line appended to a session log.
func RecordAppend() {
	CommentaryAppended.Inc()
}

// RecordCursorRenewal counts an expired position reopened at latest.
func RecordCursorRenewal() {
	CursorRenewals.Inc()
}

// RecordPublish counts a publish attempt.
func RecordPublish(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	MessagesPublished.WithLabelValues(topic, result).Inc()
}

// RecordProducerLaunch counts a producer launch.
func RecordProducerLaunch(kind string, relaunch bool) {
	ProducerLaunches.WithLabelValues(kind, strconv.FormatBool(relaunch)).Inc()
}

// RecordProducerRow counts a telemetry row emitted by a producer.
func RecordProducerRow() {
	ProducerRowsEmitted.Inc()
}

// RecordGeneration records one commentary generator call.
func RecordGeneration(duration time.Duration, err error) {
	EnrichmentGeneratorDuration.Observe(duration.Seconds())
	if err != nil {
		EnrichmentGeneratorErrors.Inc()
	}
}

// RecordEnrichedRecord counts an enriched record published.
func RecordEnrichedRecord() {
	EnrichmentRecords.Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCircuitBreakerTransition records a state change of a named breaker.
// States follow gobreaker: closed, half-open, open.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
