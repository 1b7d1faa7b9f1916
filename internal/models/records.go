// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package models

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMalformedRecord marks a payload that cannot be decoded into a usable record.
var ErrMalformedRecord = errors.New("malformed record")

// CommentaryVariant is one rendering of a play in a language and style.
type CommentaryVariant struct {
	Language Language `json:"language"`
	Style    Style    `json:"style"`
	Text     string   `json:"commentary"`
	Prompt   string   `json:"prompt,omitempty"`
}

// EnrichedRecord is a telemetry row with its commentary variants.
// Variant order is significant: the first match for a preference wins.
type EnrichedRecord struct {
	SessionID string              `json:"sess_id"`
	Row       TelemetryRow        `json:"row"`
	Variants  []CommentaryVariant `json:"commentary_objs"`
}

// RawTelemetry is a producer's output: a flat row tagged with its session.
type RawTelemetry struct {
	SessionID string `json:"sess_id"`
	TelemetryRow
}

// DecodeEnrichedRecord decodes an enriched record from JSON.
func DecodeEnrichedRecord(data []byte) (*EnrichedRecord, error) {
	var rec EnrichedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if rec.SessionID == "" {
		return nil, fmt.Errorf("%w: missing sess_id", ErrMalformedRecord)
	}
	return &rec, nil
}

// Encode serializes the record to JSON.
func (r *EnrichedRecord) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRawTelemetry decodes a producer payload from JSON.
func DecodeRawTelemetry(data []byte) (*RawTelemetry, error) {
	var raw RawTelemetry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if raw.SessionID == "" {
		return nil, fmt.Errorf("%w: missing sess_id", ErrMalformedRecord)
	}
	return &raw, nil
}

// Encode serializes the payload to JSON.
func (r *RawTelemetry) Encode() ([]byte, error) {
	return json.Marshal(r)
}
