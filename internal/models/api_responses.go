// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package models

import (
	"time"
)

// APIResponse represents the standardized response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "unsupported language \"French\""},
//	  "metadata": {"timestamp": "2026-10-17T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SessionView is the display payload of a session: recent commentary lines
// and telemetry rows, oldest first.
type SessionView struct {
	SessionID  string         `json:"session_id"`
	Commentary []string       `json:"commentary"`
	Telemetry  []TelemetryRow `json:"telemetry"`
	Columns    []string       `json:"columns"`
}

// SessionStatus describes the lifecycle state of a session.
type SessionStatus struct {
	SessionID      string      `json:"session_id"`
	Exists         bool        `json:"exists"`
	Preferences    Preferences `json:"preferences"`
	WorkerState    string      `json:"worker_state"`
	WorkerError    string      `json:"worker_error,omitempty"`
	ProducerAlive  bool        `json:"producer_alive"`
	CommentaryLen  int         `json:"commentary_lines"`
	TelemetryLen   int         `json:"telemetry_rows"`
	CursorRenewals int64       `json:"cursor_renewals"`
}
