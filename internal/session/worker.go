// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/commentary"
	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/stream"
)

// WorkerState is the lifecycle state of a Worker.
type WorkerState int32

const (
	WorkerCreated WorkerState = iota
	WorkerRunning
	WorkerStopping
	WorkerStopped
)

// String implements fmt.Stringer.
func (s WorkerState) String() string {
	switch s {
	case WorkerCreated:
		return "created"
	case WorkerRunning:
		return "running"
	case WorkerStopping:
		return "stopping"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Default worker settings.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollLimit    = 1
)

// WorkerConfig controls how a Worker polls.
type WorkerConfig struct {
	// PollInterval is the sleep after an empty poll.
	PollInterval time.Duration

	// PollLimit is the maximum number of records fetched per poll.
	PollLimit int
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.PollLimit <= 0 {
		c.PollLimit = DefaultPollLimit
	}
	return c
}

// Worker tails the commentary stream for one session and appends matching
// variants to its State. A Worker runs at most once; it implements
// suture.Service and refuses to be restarted.
type Worker struct {
	state  *State
	cursor *stream.Cursor
	cfg    WorkerConfig
	log    *logging.SessionLogger

	status   atomic.Int32
	appended atomic.Int64

	ready     chan struct{}
	readyOnce sync.Once
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}

	errMu sync.Mutex
	err   error
}

// NewWorker creates a worker that reads source on behalf of state.
func NewWorker(state *State, source stream.Source, cfg WorkerConfig) *Worker {
	w := &Worker{
		state: state,
		cfg:   cfg.withDefaults(),
		log:   logging.NewSessionLogger("stream-worker", state.ID()),
		ready: make(chan struct{}),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	w.cursor = stream.NewCursor(source, stream.WithRenewHook(w.log.LogCursorRenewed))
	return w
}

// String implements fmt.Stringer for suture logging.
func (w *Worker) String() string {
	return "stream-worker:" + logging.SanitizeSessionID(w.state.ID())
}

// State returns the current lifecycle state.
func (w *Worker) State() WorkerState {
	return WorkerState(w.status.Load())
}

// Ready is closed once the cursor is open, or when the worker exits.
func (w *Worker) Ready() <-chan struct{} {
	return w.ready
}

// opened reports whether the cursor was ever positioned.
func (w *Worker) opened() bool {
	_, ok := w.cursor.Position()
	return ok
}

// Done is closed when Serve returns.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Err returns the fatal error that ended the worker, if any.
func (w *Worker) Err() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.err
}

// Appended returns how many commentary lines the worker appended.
func (w *Worker) Appended() int64 {
	return w.appended.Load()
}

// Renewals returns how many times the worker's cursor was reopened.
func (w *Worker) Renewals() int64 {
	return w.cursor.Renewals()
}

// RequestStop asks a running worker to exit after its current batch.
func (w *Worker) RequestStop() {
	w.status.CompareAndSwap(int32(WorkerRunning), int32(WorkerStopping))
	w.stopOnce.Do(func() { close(w.stop) })
}

// Serve implements suture.Service.
func (w *Worker) Serve(ctx context.Context) (err error) {
	if !w.status.CompareAndSwap(int32(WorkerCreated), int32(WorkerRunning)) {
		return suture.ErrDoNotRestart
	}

	metrics.RecordWorkerStart()
	w.log.LogWorkerStarted(w.cfg.PollLimit)

	defer func() {
		if r := recover(); r != nil {
			w.fail(fmt.Errorf("stream worker panic: %v", r))
			err = suture.ErrDoNotRestart
		}
		failed := w.Err() != nil
		w.status.Store(int32(WorkerStopped))
		w.readyOnce.Do(func() { close(w.ready) })
		close(w.done)
		metrics.RecordWorkerExit(failed)
		if !failed {
			w.log.LogWorkerStopped(w.appended.Load())
		}
	}()

	if err := w.cursor.Open(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.fail(err)
		return suture.ErrDoNotRestart
	}
	w.readyOnce.Do(func() { close(w.ready) })

	return w.loop(ctx)
}

func (w *Worker) loop(ctx context.Context) error {
	timer := time.NewTimer(w.cfg.PollInterval)
	defer timer.Stop()

	for {
		if w.stopped(ctx) {
			return exitErr(ctx)
		}

		records, err := w.cursor.Poll(ctx, w.cfg.PollLimit)
		if err != nil {
			if w.stopped(ctx) {
				return exitErr(ctx)
			}
			w.fail(err)
			return suture.ErrDoNotRestart
		}
		metrics.RecordPoll(len(records))

		if len(records) == 0 {
			timer.Reset(w.cfg.PollInterval)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.stop:
				return suture.ErrDoNotRestart
			case <-timer.C:
			}
			continue
		}

		for i := range records {
			w.process(&records[i])
		}
	}
}

func (w *Worker) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// process applies one record: decode, filter by session, select the
// variant for the current preferences and append.
func (w *Worker) process(rec *stream.Record) {
	enriched, err := models.DecodeEnrichedRecord(rec.Data)
	if err != nil {
		metrics.RecordDiscard(metrics.DiscardMalformed)
		w.log.LogMalformedRecord(err)
		return
	}
	if enriched.SessionID != w.state.ID() {
		metrics.RecordDiscard(metrics.DiscardOtherSession)
		return
	}

	prefs := w.state.Preferences()
	text, err := commentary.Select(enriched, prefs)
	if errors.Is(err, commentary.ErrNoMatch) {
		metrics.RecordDiscard(metrics.DiscardNoMatch)
		w.log.LogNoMatch(string(prefs.Language), string(prefs.Style))
		return
	}

	w.state.Append(text, enriched.Row)
	w.appended.Add(1)
	metrics.RecordAppend()
}

// exitErr returns the context error, or suture.ErrDoNotRestart for a
// cooperative stop so the supervisor drops the service.
func exitErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return suture.ErrDoNotRestart
}

func (w *Worker) fail(err error) {
	w.errMu.Lock()
	w.err = err
	w.errMu.Unlock()
	w.log.LogWorkerFailed(err)
}
