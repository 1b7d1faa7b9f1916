// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// waitForStarts polls until svc has been started at least n times.
func waitForStarts(svc *MockService, n int32) bool {
	for i := 0; i < 50; i++ {
		if svc.StartCount() >= n {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestSupervisorTreeConstruction(t *testing.T) {
	t.Run("creates hierarchical supervisor tree", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureThreshold: 5,
			FailureBackoff:   time.Second,
			ShutdownTimeout:  10 * time.Second,
		})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.Root() == nil || tree.SessionHost() == nil {
			t.Error("root and session supervisors should not be nil")
		}
	})

	t.Run("applies default values for zero config", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
		}
	})
}

func TestDefaultTreeConfig(t *testing.T) {
	config := DefaultTreeConfig()

	if config.FailureThreshold != 5.0 {
		t.Errorf("expected FailureThreshold 5.0, got %f", config.FailureThreshold)
	}
	if config.FailureDecay != 30.0 {
		t.Errorf("expected FailureDecay 30.0, got %f", config.FailureDecay)
	}
	if config.FailureBackoff != 15*time.Second {
		t.Errorf("expected FailureBackoff 15s, got %v", config.FailureBackoff)
	}
	if config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
	}
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	t.Run("tree starts every layer and stops gracefully", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureBackoff:  100 * time.Millisecond,
			ShutdownTimeout: time.Second,
		})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}

		streamSvc := NewMockService("mock-stream")
		sessionSvc := NewMockService("mock-session")
		apiSvc := NewMockService("mock-api")
		tree.AddStreamService(streamSvc)
		tree.AddSessionService(sessionSvc)
		tree.AddAPIService(apiSvc)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := tree.ServeBackground(ctx)

		for _, svc := range []*MockService{streamSvc, sessionSvc, apiSvc} {
			if !waitForStarts(svc, 1) {
				t.Errorf("%s was not started", svc)
			}
		}

		cancel()
		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("tree did not shut down in time")
		}
		if apiSvc.StopCount() != 1 {
			t.Errorf("api service stopped %d times, want 1", apiSvc.StopCount())
		}
	})
}

func TestSessionHost(t *testing.T) {
	t.Run("session services can be removed and awaited", func(t *testing.T) {
		tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		tree.ServeBackground(ctx)

		svc := NewMockService("stream-worker:s1")
		token := tree.SessionHost().Add(svc)
		if !waitForStarts(svc, 1) {
			t.Fatal("session service was not started")
		}

		if err := tree.RemoveSessionServiceAndWait(token, time.Second); err != nil {
			t.Fatalf("RemoveSessionServiceAndWait() error = %v", err)
		}
		if svc.StopCount() != 1 {
			t.Errorf("StopCount() = %d, want 1", svc.StopCount())
		}
	})

	t.Run("ErrDoNotRestart service is not restarted", func(t *testing.T) {
		tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureBackoff:  10 * time.Millisecond,
			ShutdownTimeout: time.Second,
		})

		svc := NewMockService("one-shot")
		svc.SetError(suture.ErrDoNotRestart)
		tree.AddSessionService(svc)

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()
		go tree.Serve(ctx) //nolint:errcheck // ends with ctx
		time.Sleep(150 * time.Millisecond)

		if svc.StartCount() != 1 {
			t.Errorf("expected exactly 1 start for ErrDoNotRestart, got %d", svc.StartCount())
		}
	})
}

func TestSupervisorTreeFailureIsolation(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := NewMockService("failing-pipeline")
	failing.SetError(errors.New("router crashed"))
	stable := NewMockService("stable-api")
	tree.AddStreamService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	go tree.Serve(ctx) //nolint:errcheck // ends with ctx

	if !waitForStarts(failing, 3) {
		t.Errorf("failing service started %d times, want restarts", failing.StartCount())
	}
	if stable.StartCount() != 1 {
		t.Errorf("stable service started %d times, want 1", stable.StartCount())
	}
}
