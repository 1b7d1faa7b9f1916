// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/producer"
	"github.com/tomtom215/sideline/internal/stream"
)

const (
	testSubject      = "commentary.enriched"
	testPollInterval = 5 * time.Millisecond
	waitTimeout      = 2 * time.Second
)

// fakeHandle is a producer.Handle controlled by the test.
type fakeHandle struct {
	done       chan struct{}
	once       sync.Once
	terminated atomic.Int32
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) IsAlive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *fakeHandle) exit() {
	h.once.Do(func() { close(h.done) })
}

func (h *fakeHandle) Terminate() error {
	h.terminated.Add(1)
	h.exit()
	return nil
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

func (h *fakeHandle) Err() error { return nil }

// fakeLauncher records launches and hands out fakeHandles.
type fakeLauncher struct {
	mu      sync.Mutex
	handles []*fakeHandle
	ids     []string
	err     error
}

func (l *fakeLauncher) Kind() string { return "fake" }

func (l *fakeLauncher) Launch(_ context.Context, sessionID string) (producer.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	h := newFakeHandle()
	l.handles = append(l.handles, h)
	l.ids = append(l.ids, sessionID)
	return h, nil
}

func (l *fakeLauncher) launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handles)
}

func (l *fakeLauncher) last() *fakeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handles[len(l.handles)-1]
}

// failingSource opens normally and fails every poll.
type failingSource struct {
	err error
}

func (s *failingSource) Open(context.Context) (stream.Position, error) {
	return stream.Position{Sequence: 1, IssuedAt: time.Now()}, nil
}

func (s *failingSource) Poll(context.Context, stream.Position, int) ([]stream.Record, stream.Position, error) {
	return nil, stream.Position{}, s.err
}

var errTransport = errors.New("connection reset by peer")

func newSupervisor(t *testing.T) *suture.Supervisor {
	t.Helper()
	sup := suture.NewSimple("session-test")
	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	t.Cleanup(func() {
		cancel()
		<-errCh
	})
	return sup
}

func enrichedPayload(t *testing.T, sessionID string, row models.TelemetryRow, variants ...models.CommentaryVariant) []byte {
	t.Helper()
	rec := models.EnrichedRecord{SessionID: sessionID, Row: row, Variants: variants}
	data, err := rec.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return data
}

func variant(lang models.Language, style models.Style, text string) models.CommentaryVariant {
	return models.CommentaryVariant{Language: lang, Style: style, Text: text}
}

func appendRecord(t *testing.T, src *stream.MemorySource, data []byte) {
	t.Helper()
	if _, err := src.Append(testSubject, data); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}

// eventually polls cond until it holds or the wait times out.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
