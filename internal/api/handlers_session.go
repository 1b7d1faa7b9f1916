// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package api

import (
	"net/http"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/middleware"
	ws "github.com/tomtom215/sideline/internal/websocket"
)

// StartSession starts streaming for the caller's session. Repeated calls
// are idempotent; a dead producer is relaunched.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionIDFromContext(r.Context())

	if _, err := h.sessions.StartSession(r.Context(), id); err != nil {
		status, code := sessionErrorStatus(err, CodeStartFailed)
		respondError(w, status, code, "Failed to start session", err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("session started")
	respondSuccess(w, r, h.sessions.Status(id))
}

// StopSession stops the caller's session and clears its display logs.
// Stopping a session that was never started succeeds.
func (h *Handler) StopSession(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionIDFromContext(r.Context())

	if err := h.sessions.StopSession(r.Context(), id); err != nil {
		status, code := sessionErrorStatus(err, CodeStopFailed)
		respondError(w, status, code, "Failed to stop session", err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("session stopped")
	respondSuccess(w, r, h.sessions.Status(id))
}

// UpdatePreferences changes the caller's language and/or style. The new
// values apply to the next record the worker reads.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionIDFromContext(r.Context())

	var req PreferencesRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidBody, "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if req.Empty() {
		respondError(w, http.StatusBadRequest, CodeValidation, "language or style is required", nil)
		return
	}

	if err := h.sessions.UpdatePreferences(id, req.Update()); err != nil {
		status, code := sessionErrorStatus(err, CodeValidation)
		respondError(w, status, code, err.Error(), nil)
		return
	}

	respondSuccess(w, r, h.sessions.Status(id).Preferences)
}

// View returns the caller's recent commentary and telemetry, oldest first.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionIDFromContext(r.Context())
	respondSuccess(w, r, h.sessions.ReadView(id))
}

// Status returns the lifecycle state of the caller's session.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id := middleware.SessionIDFromContext(r.Context())
	respondSuccess(w, r, h.sessions.Status(id))
}

// WebSocket upgrades the connection and subscribes it to the caller's
// session view.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "WebSocket service unavailable", ErrHubUnavailable)
		return
	}

	id := middleware.SessionIDFromContext(r.Context())

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn, id)
	select {
	case h.wsHub.Register <- client:
		client.Start()
	case <-h.wsHub.Done():
		_ = conn.Close()
	}
}
