// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/producer"
	"github.com/tomtom215/sideline/internal/stream"
)

// ServiceHost runs workers. *suture.Supervisor satisfies it.
type ServiceHost interface {
	Add(service suture.Service) suture.ServiceToken
	RemoveAndWait(token suture.ServiceToken, timeout time.Duration) error
}

// DefaultStopTimeout bounds how long a stop waits for a worker to exit.
const DefaultStopTimeout = 5 * time.Second

// Config controls session workers and lifecycle timeouts.
type Config struct {
	PollInterval time.Duration
	PollLimit    int

	// StopTimeout bounds waits on worker start and stop.
	StopTimeout time.Duration
}

// PreferencesUpdate carries the preference fields to change. Nil fields are
// left as they are.
type PreferencesUpdate struct {
	Language *models.Language
	Style    *models.Style
}

// Controller implements the session lifecycle on top of a Registry.
type Controller struct {
	registry *Registry
	source   stream.Source
	launcher producer.Launcher
	host     ServiceHost
	cfg      Config
}

// NewController wires a controller. All dependencies are required.
func NewController(registry *Registry, source stream.Source, launcher producer.Launcher, host ServiceHost, cfg Config) (*Controller, error) {
	switch {
	case registry == nil:
		return nil, errors.New("session controller: registry is required")
	case source == nil:
		return nil, errors.New("session controller: stream source is required")
	case launcher == nil:
		return nil, errors.New("session controller: producer launcher is required")
	case host == nil:
		return nil, errors.New("session controller: service host is required")
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	return &Controller{
		registry: registry,
		source:   source,
		launcher: launcher,
		host:     host,
		cfg:      cfg,
	}, nil
}

// Registry returns the controller's registry.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// StartSession makes sure the session exists with a live producer and a
// running worker. Calling it again for a healthy session changes nothing.
// A dead producer is relaunched and a stopped worker is replaced; the
// session logs are kept in both cases.
func (c *Controller) StartSession(ctx context.Context, id string) (*State, error) {
	if id == "" {
		return nil, ErrEmptySessionID
	}
	st := c.registry.GetOrCreate(id)
	log := logging.NewSessionLogger("session-controller", id)

	st.lifecycle.Lock()
	defer st.lifecycle.Unlock()

	metrics.RecordSessionOperation("start")

	// The worker opens its cursor before the producer emits, so the
	// first play is not missed.
	if err := c.ensureWorker(ctx, st); err != nil {
		return st, err
	}

	_, handle := st.handles()
	if handle == nil || !handle.IsAlive() {
		relaunch := handle != nil
		next, err := c.launcher.Launch(ctx, id)
		if err != nil {
			return st, fmt.Errorf("launch producer: %w", err)
		}
		st.setProducer(next)
		metrics.RecordProducerLaunch(c.launcher.Kind(), relaunch)
		log.LogProducerLaunched(c.launcher.Kind(), relaunch)
	}

	return st, nil
}

func (c *Controller) ensureWorker(ctx context.Context, st *State) error {
	prev, _ := st.handles()
	if prev != nil && prev.State() != WorkerStopped {
		return nil
	}
	if prev != nil {
		// A failed worker has already left the supervisor; the error is
		// expected and ignored.
		_ = c.host.RemoveAndWait(st.workerToken, c.cfg.StopTimeout) //nolint:errcheck // best effort
	}

	w := NewWorker(st, c.source, WorkerConfig{
		PollInterval: c.cfg.PollInterval,
		PollLimit:    c.cfg.PollLimit,
	})
	st.setWorker(w, c.host.Add(w))

	timer := time.NewTimer(c.cfg.StopTimeout)
	defer timer.Stop()
	select {
	case <-w.Ready():
		if !w.opened() {
			if err := w.Err(); err != nil {
				return fmt.Errorf("start stream worker: %w", err)
			}
			return ErrWorkerNotReady
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWorkerNotReady
	}
}

// UpdatePreferences validates and applies a preference change. The worker
// reads preferences per record, so the change affects the next record.
func (c *Controller) UpdatePreferences(id string, update PreferencesUpdate) error {
	if update.Language != nil && !update.Language.Valid() {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidPreference, *update.Language)
	}
	if update.Style != nil && !update.Style.Valid() {
		return fmt.Errorf("%w: unsupported style %q", ErrInvalidPreference, *update.Style)
	}

	st, ok := c.registry.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	if update.Language != nil {
		st.SetLanguage(*update.Language)
	}
	if update.Style != nil {
		st.SetStyle(*update.Style)
	}
	metrics.RecordSessionOperation("preferences")
	return nil
}

// StopSession clears the session logs, stops its worker and terminates its
// producer. Stopping an unknown or already stopped session is a no-op.
// Preferences survive a stop.
func (c *Controller) StopSession(ctx context.Context, id string) error {
	st, ok := c.registry.Get(id)
	if !ok {
		return nil
	}
	log := logging.NewSessionLogger("session-controller", id)

	st.lifecycle.Lock()
	defer st.lifecycle.Unlock()

	metrics.RecordSessionOperation("stop")
	st.Reset()

	var errs []error
	w, handle := st.handles()
	if w != nil {
		w.RequestStop()
		if err := c.host.RemoveAndWait(st.workerToken, c.cfg.StopTimeout); err != nil {
			log.Logger().Debug().Err(err).Msg("worker already left supervisor")
		}
		if err := c.waitWorker(ctx, w); err != nil {
			errs = append(errs, err)
		}
		st.setWorker(nil, suture.ServiceToken{})
	}
	if handle != nil {
		err := handle.Terminate()
		log.LogProducerTerminated(err)
		st.setProducer(nil)
	}

	// A record in flight during the stop may have landed after the first reset.
	st.Reset()
	return errors.Join(errs...)
}

func (c *Controller) waitWorker(ctx context.Context, w *Worker) error {
	timer := time.NewTimer(c.cfg.StopTimeout)
	defer timer.Stop()
	select {
	case <-w.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("stream worker %s did not stop within %s", w, c.cfg.StopTimeout)
	}
}

// ReadView returns the session's display snapshot. Unknown sessions yield
// empty logs.
func (c *Controller) ReadView(id string) models.SessionView {
	if st, ok := c.registry.Get(id); ok {
		return st.View()
	}
	return models.SessionView{
		SessionID:  id,
		Commentary: []string{},
		Telemetry:  []models.TelemetryRow{},
		Columns:    models.DisplayColumns(),
	}
}

// Status describes the session's lifecycle state.
func (c *Controller) Status(id string) models.SessionStatus {
	st, ok := c.registry.Get(id)
	if !ok {
		return models.SessionStatus{
			SessionID:   id,
			Preferences: models.DefaultPreferences(),
			WorkerState: "none",
		}
	}

	status := models.SessionStatus{
		SessionID:   id,
		Exists:      true,
		Preferences: st.Preferences(),
		WorkerState: "none",
	}
	status.CommentaryLen, status.TelemetryLen = st.Lens()

	w, handle := st.handles()
	if w != nil {
		status.WorkerState = w.State().String()
		status.CursorRenewals = w.Renewals()
		if err := w.Err(); err != nil {
			status.WorkerError = err.Error()
		}
	}
	status.ProducerAlive = handle != nil && handle.IsAlive()
	return status
}

// Shutdown stops every session.
func (c *Controller) Shutdown(ctx context.Context) error {
	var errs []error
	for _, id := range c.registry.IDs() {
		if err := c.StopSession(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("stop session %s: %w", logging.SanitizeSessionID(id), err))
		}
	}
	return errors.Join(errs...)
}
