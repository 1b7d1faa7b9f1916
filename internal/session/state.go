// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"sync"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/sideline/internal/cache"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/producer"
)

// DefaultMaxLines bounds each session log when no capacity is configured.
const DefaultMaxLines = 50

// State is the per-session display state. The two logs are appended and
// reset together under one lock, so a reader never sees them out of step.
type State struct {
	id string

	mu         sync.RWMutex
	prefs      models.Preferences
	commentary *cache.Ring[string]
	telemetry  *cache.Ring[models.TelemetryRow]

	// lifecycle serializes controller operations on this session.
	lifecycle   sync.Mutex
	worker      *Worker
	workerToken suture.ServiceToken
	producer    producer.Handle
}

// NewState creates a session with default preferences and empty logs.
func NewState(id string, maxLines int) *State {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &State{
		id:         id,
		prefs:      models.DefaultPreferences(),
		commentary: cache.NewRing[string](maxLines),
		telemetry:  cache.NewRing[models.TelemetryRow](maxLines),
	}
}

// ID returns the session identity.
func (s *State) ID() string {
	return s.id
}

// Preferences returns a copy of the current preferences.
func (s *State) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetLanguage replaces the language preference.
func (s *State) SetLanguage(l models.Language) {
	s.mu.Lock()
	s.prefs.Language = l
	s.mu.Unlock()
}

// SetStyle replaces the style preference.
func (s *State) SetStyle(st models.Style) {
	s.mu.Lock()
	s.prefs.Style = st
	s.mu.Unlock()
}

// Append adds a commentary line and its telemetry row, evicting the oldest
// entry of each log when full.
func (s *State) Append(line string, row models.TelemetryRow) {
	s.mu.Lock()
	s.commentary.Push(line)
	s.telemetry.Push(row)
	s.mu.Unlock()
}

// Reset empties both logs. Preferences are kept.
func (s *State) Reset() {
	s.mu.Lock()
	s.commentary.Reset()
	s.telemetry.Reset()
	s.mu.Unlock()
}

// Lens returns the number of commentary lines and telemetry rows.
func (s *State) Lens() (commentary, telemetry int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commentary.Len(), s.telemetry.Len()
}

// View returns a consistent snapshot of both logs, oldest first.
func (s *State) View() models.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SessionView{
		SessionID:  s.id,
		Commentary: s.commentary.Snapshot(),
		Telemetry:  s.telemetry.Snapshot(),
		Columns:    models.DisplayColumns(),
	}
}

// handles returns the current worker and producer.
func (s *State) handles() (*Worker, producer.Handle) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.worker, s.producer
}

func (s *State) setWorker(w *Worker, token suture.ServiceToken) {
	s.mu.Lock()
	s.worker, s.workerToken = w, token
	s.mu.Unlock()
}

func (s *State) setProducer(h producer.Handle) {
	s.mu.Lock()
	s.producer = h
	s.mu.Unlock()
}
