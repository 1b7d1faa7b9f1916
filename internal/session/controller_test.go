// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/sideline/internal/enrichment"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/producer"
	"github.com/tomtom215/sideline/internal/stream"
)

type controllerFixture struct {
	ctrl     *Controller
	source   *stream.MemorySource
	launcher *fakeLauncher
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	src := stream.NewMemorySource(stream.MemoryConfig{})
	launcher := &fakeLauncher{}
	ctrl, err := NewController(NewRegistry(10), src, launcher, newSupervisor(t), Config{
		PollInterval: testPollInterval,
		PollLimit:    1,
		StopTimeout:  waitTimeout,
	})
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return &controllerFixture{ctrl: ctrl, source: src, launcher: launcher}
}

func (f *controllerFixture) worker(t *testing.T, id string) *Worker {
	t.Helper()
	st, ok := f.ctrl.Registry().Get(id)
	if !ok {
		t.Fatalf("session %q missing", id)
	}
	w, _ := st.handles()
	return w
}

func TestNewControllerRequiresDependencies(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	host := newSupervisor(t)
	tests := []struct {
		name     string
		registry *Registry
		source   stream.Source
		launcher producer.Launcher
		host     ServiceHost
	}{
		{"no registry", nil, src, &fakeLauncher{}, host},
		{"no source", NewRegistry(1), nil, &fakeLauncher{}, host},
		{"no launcher", NewRegistry(1), src, nil, host},
		{"no host", NewRegistry(1), src, &fakeLauncher{}, nil},
	}
	for _, tt := range tests {
		if _, err := NewController(tt.registry, tt.source, tt.launcher, tt.host, Config{}); err == nil {
			t.Errorf("%s: NewController() error = nil, want error", tt.name)
		}
	}
}

func TestStartSessionIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	ctx := context.Background()

	st1, err := f.ctrl.StartSession(ctx, "s1")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	w1 := f.worker(t, "s1")

	st2, err := f.ctrl.StartSession(ctx, "s1")
	if err != nil {
		t.Fatalf("second StartSession() error = %v", err)
	}
	if st1 != st2 || f.worker(t, "s1") != w1 {
		t.Error("second StartSession() replaced the session or worker")
	}
	if f.launcher.launches() != 1 {
		t.Errorf("launches = %d, want 1", f.launcher.launches())
	}
	if f.launcher.ids[0] != "s1" {
		t.Errorf("producer tagged %q, want s1", f.launcher.ids[0])
	}

	status := f.ctrl.Status("s1")
	if !status.Exists || status.WorkerState != "running" || !status.ProducerAlive {
		t.Errorf("Status() = %+v, want running worker and live producer", status)
	}
}

func TestStartSessionRejectsEmptyID(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	if _, err := f.ctrl.StartSession(context.Background(), ""); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("StartSession(\"\") error = %v, want ErrEmptySessionID", err)
	}
}

func TestStartSessionLaunchError(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	f.launcher.err = errors.New("exec: not found")

	if _, err := f.ctrl.StartSession(context.Background(), "s1"); err == nil {
		t.Fatal("StartSession() error = nil, want launch error")
	}
	if f.ctrl.Status("s1").ProducerAlive {
		t.Error("ProducerAlive = true after failed launch")
	}
}

func TestStartSessionRelaunchesExitedProducer(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	ctx := context.Background()

	if _, err := f.ctrl.StartSession(ctx, "s1"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	w := f.worker(t, "s1")
	appendRecord(t, f.source, enrichedPayload(t, "s1", models.TelemetryRow{Down: "1"}, variant(models.English, models.StyleNFL, "kept")))
	eventually(t, "append", func() bool { return w.Appended() == 1 })

	f.launcher.last().exit()
	if f.ctrl.Status("s1").ProducerAlive {
		t.Fatal("ProducerAlive = true after exit")
	}

	if _, err := f.ctrl.StartSession(ctx, "s1"); err != nil {
		t.Fatalf("StartSession() after crash error = %v", err)
	}
	if f.launcher.launches() != 2 {
		t.Errorf("launches = %d, want 2", f.launcher.launches())
	}
	if f.worker(t, "s1") != w {
		t.Error("crash recovery replaced the worker")
	}
	if view := f.ctrl.ReadView("s1"); len(view.Commentary) != 1 || view.Commentary[0] != "kept" {
		t.Errorf("Commentary = %v, want logs untouched", view.Commentary)
	}
}

func TestStartSessionReplacesFailedWorker(t *testing.T) {
	t.Parallel()

	src := &failingSource{err: errTransport}
	ctrl, err := NewController(NewRegistry(10), src, &fakeLauncher{}, newSupervisor(t), Config{
		PollInterval: testPollInterval,
		StopTimeout:  waitTimeout,
	})
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}

	st, err := ctrl.StartSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	first, _ := st.handles()
	<-first.Done()

	status := ctrl.Status("s1")
	if status.WorkerState != "stopped" || !strings.Contains(status.WorkerError, errTransport.Error()) {
		t.Errorf("Status() = %+v, want stopped worker with transport error", status)
	}

	// Failed workers are not restarted automatically.
	time.Sleep(5 * testPollInterval)
	if w, _ := st.handles(); w != first {
		t.Fatal("failed worker was replaced without a StartSession call")
	}

	if _, err := ctrl.StartSession(context.Background(), "s1"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if w, _ := st.handles(); w == first {
		t.Error("StartSession() kept the failed worker")
	}
}

func TestStopSession(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	ctx := context.Background()

	if _, err := f.ctrl.StartSession(ctx, "s1"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	lang, style := models.Spanish, models.StyleTweeter
	if err := f.ctrl.UpdatePreferences("s1", PreferencesUpdate{Language: &lang, Style: &style}); err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}
	w := f.worker(t, "s1")
	appendRecord(t, f.source, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.Spanish, models.StyleTweeter, "hola")))
	eventually(t, "append", func() bool { return w.Appended() == 1 })
	prod := f.launcher.last()

	for i := 0; i < 2; i++ {
		if err := f.ctrl.StopSession(ctx, "s1"); err != nil {
			t.Fatalf("StopSession() #%d error = %v", i+1, err)
		}
		status := f.ctrl.Status("s1")
		if !status.Exists || status.CommentaryLen != 0 || status.TelemetryLen != 0 {
			t.Errorf("Status() after stop #%d = %+v, want empty logs", i+1, status)
		}
		if status.WorkerState != "none" || status.ProducerAlive {
			t.Errorf("Status() after stop #%d = %+v, want no handles", i+1, status)
		}
		if status.Preferences.Language != models.Spanish || status.Preferences.Style != models.StyleTweeter {
			t.Errorf("Preferences after stop = %+v, want retained", status.Preferences)
		}
	}

	if w.State() != WorkerStopped {
		t.Errorf("worker State() = %v, want stopped", w.State())
	}
	if prod.terminated.Load() != 1 {
		t.Errorf("producer terminated %d times, want 1", prod.terminated.Load())
	}

	// Records after the stop are not appended.
	appendRecord(t, f.source, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.Spanish, models.StyleTweeter, "late")))
	time.Sleep(5 * testPollInterval)
	if view := f.ctrl.ReadView("s1"); len(view.Commentary) != 0 {
		t.Errorf("Commentary after stop = %v, want empty", view.Commentary)
	}
}

func TestStopUnknownSessionIsNoop(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	if err := f.ctrl.StopSession(context.Background(), "ghost"); err != nil {
		t.Errorf("StopSession(unknown) error = %v", err)
	}
	if f.ctrl.Registry().Len() != 0 {
		t.Error("StopSession(unknown) created a session")
	}
}

func TestUpdatePreferences(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	f.ctrl.Registry().GetOrCreate("s1")

	german := models.German
	french := models.Language("French")
	haiku := models.Style("haiku")

	tests := []struct {
		name    string
		id      string
		update  PreferencesUpdate
		wantErr error
	}{
		{"language only", "s1", PreferencesUpdate{Language: &german}, nil},
		{"empty update", "s1", PreferencesUpdate{}, nil},
		{"bad language", "s1", PreferencesUpdate{Language: &french}, ErrInvalidPreference},
		{"bad style", "s1", PreferencesUpdate{Style: &haiku}, ErrInvalidPreference},
		{"unknown session", "ghost", PreferencesUpdate{Language: &german}, ErrSessionNotFound},
	}
	for _, tt := range tests {
		if err := f.ctrl.UpdatePreferences(tt.id, tt.update); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: UpdatePreferences() error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	want := models.Preferences{Language: models.German, Style: models.StyleNFL}
	if got := f.ctrl.Status("s1").Preferences; got != want {
		t.Errorf("Preferences = %+v, want %+v", got, want)
	}
}

func TestReadViewUnknownSession(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	view := f.ctrl.ReadView("ghost")
	if view.Commentary == nil || len(view.Commentary) != 0 || len(view.Telemetry) != 0 {
		t.Errorf("ReadView(unknown) = %+v, want empty non-nil logs", view)
	}
	if status := f.ctrl.Status("ghost"); status.Exists || status.WorkerState != "none" {
		t.Errorf("Status(unknown) = %+v", status)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if _, err := f.ctrl.StartSession(ctx, id); err != nil {
			t.Fatalf("StartSession(%s) error = %v", id, err)
		}
	}

	appendRecord(t, f.source, enrichedPayload(t, "a", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "for a")))
	appendRecord(t, f.source, enrichedPayload(t, "b", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "for b")))

	wa, wb := f.worker(t, "a"), f.worker(t, "b")
	eventually(t, "both appends", func() bool { return wa.Appended() == 1 && wb.Appended() == 1 })

	if got := f.ctrl.ReadView("a").Commentary; len(got) != 1 || got[0] != "for a" {
		t.Errorf("view a = %v", got)
	}
	if got := f.ctrl.ReadView("b").Commentary; len(got) != 1 || got[0] != "for b" {
		t.Errorf("view b = %v", got)
	}

	if err := f.ctrl.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if wa.State() != WorkerStopped || wb.State() != WorkerStopped {
		t.Error("Shutdown() left workers running")
	}
}

func TestEndToEndEnrichedPlayReachesView(t *testing.T) {
	t.Parallel()

	f := newControllerFixture(t)
	ctx := context.Background()
	if _, err := f.ctrl.StartSession(ctx, "S1"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	row := models.TelemetryRow{
		Time: "12:34", Qtr: "2", Down: "2", PlayType: "run", PosTeam: "SEA", DefTeam: "DEN",
		YardsGained: "5", RusherPlayerName: "K.Walker",
	}
	rec, err := enrichment.NewEnricher(enrichment.NewTemplateGenerator()).
		Enrich(ctx, &models.RawTelemetry{SessionID: "S1", TelemetryRow: row})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if len(rec.Variants) != 9 {
		t.Fatalf("variants = %d, want 9", len(rec.Variants))
	}
	data, err := rec.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	appendRecord(t, f.source, data)

	w := f.worker(t, "S1")
	eventually(t, "append", func() bool { return w.Appended() == 1 })

	view := f.ctrl.ReadView("S1")
	if len(view.Commentary) != 1 || !strings.HasPrefix(view.Commentary[0], "(12:34) ") {
		t.Errorf("Commentary = %v, want one line starting with (12:34)", view.Commentary)
	}
	if len(view.Telemetry) != 1 || view.Telemetry[0].Down != "2" {
		t.Errorf("Telemetry = %+v, want the down 2 row", view.Telemetry)
	}
}
