// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDiscard(t *testing.T) {
	before := testutil.ToFloat64(RecordsDiscarded.WithLabelValues(DiscardNoMatch))
	RecordDiscard(DiscardNoMatch)
	after := testutil.ToFloat64(RecordsDiscarded.WithLabelValues(DiscardNoMatch))

	if after-before != 1 {
		t.Errorf("no_match discards increased by %v, want 1", after-before)
	}
}

func TestRecordWorkerLifecycle(t *testing.T) {
	active := testutil.ToFloat64(SessionsActive)
	failed := testutil.ToFloat64(WorkerExits.WithLabelValues("failed"))

	RecordWorkerStart()
	if got := testutil.ToFloat64(SessionsActive); got != active+1 {
		t.Errorf("sessions_active = %v, want %v", got, active+1)
	}

	RecordWorkerExit(true)
	if got := testutil.ToFloat64(SessionsActive); got != active {
		t.Errorf("sessions_active = %v, want %v", got, active)
	}
	if got := testutil.ToFloat64(WorkerExits.WithLabelValues("failed")); got != failed+1 {
		t.Errorf("failed exits = %v, want %v", got, failed+1)
	}
}

func TestRecordPublish(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("nats: timeout"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MessagesPublished.WithLabelValues("commentary.enriched", tt.result)
			before := testutil.ToFloat64(c)
			RecordPublish("commentary.enriched", tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("published{result=%s} = %v, want %v", tt.result, got, before+1)
			}
		})
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	RecordCircuitBreakerTransition("test-breaker", "closed", "open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	RecordCircuitBreakerTransition("test-breaker", "open", "half-open")
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 1 {
		t.Errorf("circuit_breaker_state = %v, want 1", got)
	}
}

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(EnrichmentGeneratorErrors)
	RecordGeneration(5*time.Millisecond, errors.New("upstream 503"))
	RecordGeneration(5*time.Millisecond, nil)

	if got := testutil.ToFloat64(EnrichmentGeneratorErrors); got != before+1 {
		t.Errorf("generator errors = %v, want %v", got, before+1)
	}
}

func TestRecordProducerLaunch(t *testing.T) {
	c := ProducerLaunches.WithLabelValues("inprocess", "true")
	before := testutil.ToFloat64(c)
	RecordProducerLaunch("inprocess", true)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("producer launches = %v, want %v", got, before+1)
	}
}
