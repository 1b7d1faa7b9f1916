// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/stream"
)

// runWorker serves w in the background and returns its exit error channel.
func runWorker(t *testing.T, w *Worker) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Serve(ctx) }()
	t.Cleanup(cancel)

	select {
	case <-w.Ready():
	case <-time.After(waitTimeout):
		t.Fatal("worker never became ready")
	}
	return cancel, errCh
}

func TestWorkerStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state WorkerState
		want  string
	}{
		{WorkerCreated, "created"},
		{WorkerRunning, "running"},
		{WorkerStopping, "stopping"},
		{WorkerStopped, "stopped"},
		{WorkerState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("WorkerState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestWorkerAppendsMatchingVariant(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	st := NewState("s1", 10)
	w := NewWorker(st, src, WorkerConfig{PollInterval: testPollInterval, PollLimit: 1})
	runWorker(t, w)

	if w.State() != WorkerRunning {
		t.Fatalf("State() = %v, want running", w.State())
	}

	row := models.TelemetryRow{Time: "12:34", Down: "2"}
	appendRecord(t, src, enrichedPayload(t, "s1", row,
		variant(models.Spanish, models.StyleNFL, "(12:34) es"),
		variant(models.English, models.StyleNFL, "(12:34) en"),
		variant(models.English, models.StyleNFL, "(12:34) duplicate"),
	))

	eventually(t, "append", func() bool { return w.Appended() == 1 })
	view := st.View()
	if len(view.Commentary) != 1 || view.Commentary[0] != "(12:34) en" {
		t.Errorf("Commentary = %v, want first English/NFL variant", view.Commentary)
	}
	if len(view.Telemetry) != 1 || view.Telemetry[0] != row {
		t.Errorf("Telemetry = %+v, want %+v", view.Telemetry, row)
	}
}

func TestWorkerSkipsForeignMalformedAndUnmatched(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	st := NewState("s1", 10)
	w := NewWorker(st, src, WorkerConfig{PollInterval: testPollInterval, PollLimit: 10})
	runWorker(t, w)

	appendRecord(t, src, enrichedPayload(t, "s2", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "other")))
	appendRecord(t, src, []byte(`{"row":`))
	appendRecord(t, src, []byte(`{"row":{"down":"1"}}`))
	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.German, models.StylePoetic, "nope")))
	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{Down: "4"}, variant(models.English, models.StyleNFL, "mine")))

	eventually(t, "append", func() bool { return w.Appended() == 1 })
	time.Sleep(5 * testPollInterval)

	view := st.View()
	if len(view.Commentary) != 1 || view.Commentary[0] != "mine" || view.Telemetry[0].Down != "4" {
		t.Errorf("View() = %+v, want only the matching own record", view)
	}
	if w.State() != WorkerRunning {
		t.Errorf("State() = %v, want running after bad records", w.State())
	}
}

func TestWorkerIgnoresHistory(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "old")))

	st := NewState("s1", 10)
	w := NewWorker(st, src, WorkerConfig{PollInterval: testPollInterval})
	runWorker(t, w)

	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "new")))
	eventually(t, "append", func() bool { return w.Appended() == 1 })

	if view := st.View(); view.Commentary[0] != "new" {
		t.Errorf("Commentary = %v, want only records after start", view.Commentary)
	}
}

func TestWorkerFollowsPreferenceChanges(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	st := NewState("s1", 10)
	w := NewWorker(st, src, WorkerConfig{PollInterval: testPollInterval})
	runWorker(t, w)

	all := []models.CommentaryVariant{
		variant(models.English, models.StyleNFL, "en-nfl"),
		variant(models.German, models.StyleTweeter, "de-tweet"),
	}

	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, all...))
	eventually(t, "first append", func() bool { return w.Appended() == 1 })

	st.SetLanguage(models.German)
	st.SetStyle(models.StyleTweeter)
	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, all...))
	eventually(t, "second append", func() bool { return w.Appended() == 2 })

	view := st.View()
	if view.Commentary[0] != "en-nfl" || view.Commentary[1] != "de-tweet" {
		t.Errorf("Commentary = %v, want [en-nfl de-tweet]", view.Commentary)
	}
}

func TestWorkerRenewsExpiredPosition(t *testing.T) {
	t.Parallel()

	var nowNanos atomic.Int64
	nowNanos.Store(time.Now().UnixNano())
	src := stream.NewMemorySource(stream.MemoryConfig{
		PositionTTL: time.Minute,
		Now:         func() time.Time { return time.Unix(0, nowNanos.Load()) },
	})

	st := NewState("s1", 10)
	w := NewWorker(st, src, WorkerConfig{PollInterval: testPollInterval})
	runWorker(t, w)

	nowNanos.Add(int64(2 * time.Minute))
	eventually(t, "renewal", func() bool { return w.Renewals() == 1 })

	appendRecord(t, src, enrichedPayload(t, "s1", models.TelemetryRow{}, variant(models.English, models.StyleNFL, "after renewal")))
	eventually(t, "append", func() bool { return w.Appended() == 1 })

	if w.State() != WorkerRunning || w.Err() != nil {
		t.Errorf("State() = %v, Err() = %v, want running without error", w.State(), w.Err())
	}
}

func TestWorkerStopsOnTransportFailure(t *testing.T) {
	t.Parallel()

	st := NewState("s1", 10)
	w := NewWorker(st, &failingSource{err: errTransport}, WorkerConfig{PollInterval: testPollInterval})

	err := w.Serve(context.Background())
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Fatalf("Serve() error = %v, want ErrDoNotRestart", err)
	}
	if w.State() != WorkerStopped {
		t.Errorf("State() = %v, want stopped", w.State())
	}
	if !errors.Is(w.Err(), errTransport) {
		t.Errorf("Err() = %v, want transport error", w.Err())
	}
	select {
	case <-w.Done():
	default:
		t.Error("Done() not closed after failure")
	}

	if err := w.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("second Serve() error = %v, want ErrDoNotRestart", err)
	}
}

func TestWorkerRequestStop(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	w := NewWorker(NewState("s1", 10), src, WorkerConfig{PollInterval: time.Hour})
	_, errCh := runWorker(t, w)

	w.RequestStop()
	select {
	case err := <-errCh:
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve() error = %v, want ErrDoNotRestart", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("worker did not stop")
	}
	if w.State() != WorkerStopped || w.Err() != nil {
		t.Errorf("State() = %v, Err() = %v, want clean stop", w.State(), w.Err())
	}
	w.RequestStop()
}

func TestWorkerStopsOnCancel(t *testing.T) {
	t.Parallel()

	src := stream.NewMemorySource(stream.MemoryConfig{})
	w := NewWorker(NewState("s1", 10), src, WorkerConfig{PollInterval: time.Hour})
	cancel, errCh := runWorker(t, w)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("worker did not stop")
	}
	if w.Err() != nil {
		t.Errorf("Err() = %v, want nil on cancel", w.Err())
	}
}
