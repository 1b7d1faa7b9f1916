// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"time"
)

// Record is one entry of an ordered stream.
type Record struct {
	Sequence  uint64
	Subject   string
	Data      []byte
	Timestamp time.Time
}

// Position is an opaque read position. Sequence is the next sequence to
// read; IssuedAt is when the token was handed out.
type Position struct {
	Sequence uint64
	IssuedAt time.Time
}

// Source is an ordered record source read through position tokens.
type Source interface {
	// Open returns a position at the end of the stream.
	Open(ctx context.Context) (Position, error)

	// Poll returns up to limit records at or after pos and the position
	// following them. The returned position is fresh even when no records
	// are returned.
	Poll(ctx context.Context, pos Position, limit int) ([]Record, Position, error)
}

// HealthChecker is implemented by sources that can report readiness.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// expired reports whether pos has outlived ttl at now. A zero ttl never expires.
func expired(pos Position, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(pos.IssuedAt) > ttl
}
