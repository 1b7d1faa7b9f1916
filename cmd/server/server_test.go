// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package main

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/config"
	"github.com/tomtom215/sideline/internal/session"
	"github.com/tomtom215/sideline/internal/stream"
)

func TestStreamSpecs(t *testing.T) {
	cfg := config.Default()
	specs := streamSpecs(cfg)

	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
	telemetry, commentary := specs[0], specs[1]

	wantSubjects := []string{cfg.Stream.TelemetrySubject, cfg.Enrichment.PoisonQueueTopic}
	if telemetry.Name != cfg.Stream.TelemetryStream || !reflect.DeepEqual(telemetry.Subjects, wantSubjects) {
		t.Errorf("telemetry spec = %+v", telemetry)
	}
	if commentary.Name != cfg.Stream.CommentaryStream || !reflect.DeepEqual(commentary.Subjects, []string{cfg.Stream.CommentarySubject}) {
		t.Errorf("commentary spec = %+v", commentary)
	}
	if commentary.MaxMsgs != int64(cfg.Stream.MaxRecords) {
		t.Errorf("MaxMsgs = %d, want %d", commentary.MaxMsgs, cfg.Stream.MaxRecords)
	}
}

func TestInitStreamMemoryRetention(t *testing.T) {
	cfg := config.Default()
	cfg.Stream.Backend = config.BackendMemory
	cfg.Stream.MaxRecords = 3

	comps, err := InitStream(cfg)
	if err != nil {
		t.Fatalf("InitStream() error = %v", err)
	}
	t.Cleanup(func() { _ = comps.Close(context.Background()) })

	source, ok := comps.Source.(*stream.MemorySource)
	if !ok {
		t.Fatalf("Source = %T, want *stream.MemorySource", comps.Source)
	}
	for i := 0; i < 5; i++ {
		if _, err := source.Append(cfg.Stream.CommentarySubject, []byte("{}")); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if got := source.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestSimulatorArgs(t *testing.T) {
	cfg := config.Default()
	cfg.Producer.Args = []string{"--log-level", "debug"}
	cfg.Producer.EmitInterval = 2 * time.Second
	cfg.Producer.RunDuration = time.Minute

	got := strings.Join(simulatorArgs(cfg, "nats://127.0.0.1:4222"), " ")
	want := "--log-level debug --nats-url nats://127.0.0.1:4222 --subject telemetry.raw --interval 2s --duration 1m0s"
	if got != want {
		t.Errorf("args = %q\nwant   %q", got, want)
	}

	cfg.Producer.Dataset = "/data/game.csv"
	if got := simulatorArgs(cfg, "nats://x"); got[len(got)-1] != "/data/game.csv" {
		t.Errorf("dataset not passed: %v", got)
	}
}

// TestMemoryBackendEndToEnd runs one session through the in-memory wiring:
// producer, enrichment pipeline, stream worker and display logs.
func TestMemoryBackendEndToEnd(t *testing.T) {
	cfg := config.Default()
	cfg.Stream.Backend = config.BackendMemory
	cfg.Producer.EmitInterval = 10 * time.Millisecond
	cfg.Producer.RunDuration = time.Minute
	cfg.Session.PollInterval = 10 * time.Millisecond

	comps, err := InitStream(cfg)
	if err != nil {
		t.Fatalf("InitStream() error = %v", err)
	}
	t.Cleanup(func() { _ = comps.Close(context.Background()) })

	if comps.BrokerURL != "" {
		t.Errorf("BrokerURL = %q, want empty for memory backend", comps.BrokerURL)
	}

	launcher, err := InitLauncher(cfg, comps.RawPublisher, comps.BrokerURL)
	if err != nil {
		t.Fatalf("InitLauncher() error = %v", err)
	}
	if launcher.Kind() != "inprocess" {
		t.Errorf("Kind() = %q, want inprocess", launcher.Kind())
	}

	pipeline, err := InitPipeline(cfg, comps)
	if err != nil || pipeline == nil {
		t.Fatalf("InitPipeline() = %v, %v", pipeline, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := pipeline.Start(ctx); err != nil {
		t.Fatalf("pipeline.Start() error = %v", err)
	}
	t.Cleanup(func() { pipeline.Shutdown(context.Background()) })

	host := suture.NewSimple("test-sessions")
	host.ServeBackground(ctx)

	controller, err := session.NewController(session.NewRegistry(cfg.Session.MaxLines), comps.Source, launcher, host, session.Config{
		PollInterval: cfg.Session.PollInterval,
		PollLimit:    cfg.Session.PollLimit,
		StopTimeout:  cfg.Session.StopTimeout,
	})
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}

	if _, err := controller.StartSession(ctx, "abc"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	t.Cleanup(func() { _ = controller.Shutdown(context.Background()) })

	deadline := time.Now().Add(5 * time.Second)
	for {
		view := controller.ReadView("abc")
		if len(view.Commentary) >= 2 {
			if len(view.Telemetry) != len(view.Commentary) {
				t.Errorf("telemetry rows = %d, commentary lines = %d", len(view.Telemetry), len(view.Commentary))
			}
			if !strings.HasPrefix(view.Commentary[0], "(") {
				t.Errorf("commentary line %q lacks time prefix", view.Commentary[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no commentary after 5s: %+v", controller.Status("abc"))
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := controller.StopSession(ctx, "abc"); err != nil {
		t.Fatalf("StopSession() error = %v", err)
	}
	if view := controller.ReadView("abc"); len(view.Commentary) != 0 {
		t.Errorf("commentary after stop = %v, want empty", view.Commentary)
	}
}
