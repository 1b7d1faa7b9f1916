// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/session"
	ws "github.com/tomtom215/sideline/internal/websocket"
)

// SessionService is the lifecycle surface the handlers drive.
// Satisfied by *session.Controller.
type SessionService interface {
	StartSession(ctx context.Context, id string) (*session.State, error)
	StopSession(ctx context.Context, id string) error
	UpdatePreferences(id string, update session.PreferencesUpdate) error
	ReadView(id string) models.SessionView
	Status(id string) models.SessionStatus
}

// ReadinessCheck is one named dependency of the readiness probe.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	sessions    SessionService
	wsHub       *ws.Hub
	corsOrigins []string
	checks      []ReadinessCheck
	startTime   time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHub enables websocket view updates.
func WithHub(hub *ws.Hub) HandlerOption {
	return func(h *Handler) { h.wsHub = hub }
}

// WithAllowedOrigins sets the origins accepted for websocket upgrades.
// "*" accepts any origin.
func WithAllowedOrigins(origins []string) HandlerOption {
	return func(h *Handler) { h.corsOrigins = origins }
}

// WithReadinessCheck adds a dependency to the readiness probe.
func WithReadinessCheck(name string, check func(ctx context.Context) error) HandlerOption {
	return func(h *Handler) {
		h.checks = append(h.checks, ReadinessCheck{Name: name, Check: check})
	}
}

// NewHandler creates the HTTP handlers for sessions.
func NewHandler(sessions SessionService, opts ...HandlerOption) *Handler {
	h := &Handler{
		sessions:  sessions,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts only configured origins. Browsers always
// send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
