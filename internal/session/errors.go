// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import "errors"

var (
	// ErrSessionNotFound is returned when an operation requires an existing session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidPreference is returned for an unsupported language or style.
	ErrInvalidPreference = errors.New("invalid preference")

	// ErrEmptySessionID is returned when an identity is blank.
	ErrEmptySessionID = errors.New("session id is empty")

	// ErrWorkerNotReady is returned when a new worker does not open its
	// cursor before the start deadline.
	ErrWorkerNotReady = errors.New("stream worker did not become ready")
)
