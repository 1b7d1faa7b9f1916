// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testSpecs() []StreamSpec {
	return []StreamSpec{
		{Name: "SPORTS_TELEMETRY", Subjects: []string{"telemetry.raw"}, MaxAge: time.Hour},
		{Name: "SPORTS_COMMENTARY", Subjects: []string{"commentary.enriched"}, MaxAge: time.Hour},
	}
}

func TestStreamManager_EnsureStreams(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	js := NewMockJetStreamContext()
	m, err := NewStreamManager(js, testSpecs()...)
	if err != nil {
		t.Fatalf("NewStreamManager() error = %v", err)
	}

	if m.IsHealthy(ctx) {
		t.Error("IsHealthy() = true before streams exist")
	}
	if err := m.EnsureStreams(ctx); err != nil {
		t.Fatalf("EnsureStreams() error = %v", err)
	}
	if js.createCalls != 2 || js.updateCalls != 0 {
		t.Errorf("create/update calls = %d/%d, want 2/0", js.createCalls, js.updateCalls)
	}

	cfg := js.streams["SPORTS_COMMENTARY"].config
	if !cfg.AllowDirect || cfg.Replicas != 1 || cfg.Subjects[0] != "commentary.enriched" {
		t.Errorf("stream config = %+v", cfg)
	}

	if err := m.EnsureStreams(ctx); err != nil {
		t.Fatalf("second EnsureStreams() error = %v", err)
	}
	if js.createCalls != 2 || js.updateCalls != 2 {
		t.Errorf("create/update calls = %d/%d, want 2/2", js.createCalls, js.updateCalls)
	}
	if !m.IsHealthy(ctx) {
		t.Error("IsHealthy() = false after EnsureStreams")
	}
}

func TestStreamManager_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(*MockJetStreamContext)
	}{
		{"create fails", func(js *MockJetStreamContext) { js.createErr = errors.New("insufficient resources") }},
		{"lookup fails", func(js *MockJetStreamContext) { js.streamErr = errors.New("nats: no responders") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			js := NewMockJetStreamContext()
			tt.setup(js)
			m, err := NewStreamManager(js, testSpecs()...)
			if err != nil {
				t.Fatalf("NewStreamManager() error = %v", err)
			}
			if err := m.EnsureStreams(ctx); err == nil {
				t.Error("EnsureStreams() error = nil, want error")
			}
		})
	}
}

func TestNewStreamManager_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewStreamManager(nil); err == nil {
		t.Error("expected error for nil context")
	}
	if _, err := NewStreamManager(NewMockJetStreamContext(), StreamSpec{Name: "X"}); err == nil {
		t.Error("expected error for spec without subjects")
	}
}
