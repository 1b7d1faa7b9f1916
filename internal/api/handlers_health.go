// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/sideline/internal/models"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests. It returns 200 while the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r),
	})
}

// HealthReady handles readiness probe requests. It returns 503 when any
// registered dependency check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := true
	components := make(map[string]interface{}, len(h.checks))

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			ready = false
			components[c.Name] = map[string]interface{}{"ready": false, "error": err.Error()}
			continue
		}
		components[c.Name] = map[string]interface{}{"ready": true}
	}

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"components":     components,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r),
	})
}
