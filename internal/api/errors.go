// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/sideline/internal/session"
)

// Error codes of the response envelope.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidBody     = "INVALID_REQUEST"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeStartFailed     = "START_FAILED"
	CodeStopFailed      = "STOP_FAILED"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
	CodeTimeout         = "TIMEOUT"
)

// ErrHubUnavailable is reported when websocket updates are not configured.
var ErrHubUnavailable = errors.New("websocket hub is not available")

// sessionErrorStatus maps a lifecycle error to a status code and error code.
func sessionErrorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, session.ErrInvalidPreference), errors.Is(err, session.ErrEmptySessionID):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, session.ErrWorkerNotReady):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, fallback
	}
}
