// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/tomtom215/sideline/internal/metrics"
)

// Cursor holds a single position in a Source and renews it transparently
// when it expires. A Cursor is owned by one goroutine; Renewals and
// Position may be read concurrently.
type Cursor struct {
	source   Source
	pos      atomic.Pointer[Position]
	renewals atomic.Int64
	onRenew  func()
}

// CursorOption configures a Cursor.
type CursorOption func(*Cursor)

// WithRenewHook registers fn to run after each renewal.
func WithRenewHook(fn func()) CursorOption {
	return func(c *Cursor) {
		c.onRenew = fn
	}
}

// NewCursor creates an unopened cursor over source.
func NewCursor(source Source, opts ...CursorOption) *Cursor {
	c := &Cursor{source: source}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open positions the cursor at the end of the stream, replacing any
// previous position.
func (c *Cursor) Open(ctx context.Context) error {
	pos, err := c.source.Open(ctx)
	if err != nil {
		return fmt.Errorf("open stream position: %w", err)
	}
	c.pos.Store(&pos)
	return nil
}

// Poll fetches up to limit records. An expired position is reopened at
// latest and the poll is retried once; a second expiry is returned.
// On error the current position is kept.
func (c *Cursor) Poll(ctx context.Context, limit int) ([]Record, error) {
	if c.pos.Load() == nil {
		if err := c.Open(ctx); err != nil {
			return nil, err
		}
	}

	records, next, err := c.source.Poll(ctx, *c.pos.Load(), limit)
	if errors.Is(err, ErrExpiredPosition) {
		if err := c.Open(ctx); err != nil {
			return nil, err
		}
		c.renewals.Add(1)
		metrics.RecordCursorRenewal()
		if c.onRenew != nil {
			c.onRenew()
		}
		records, next, err = c.source.Poll(ctx, *c.pos.Load(), limit)
	}
	if err != nil {
		return nil, err
	}

	c.pos.Store(&next)
	return records, nil
}

// Position returns the current position and whether the cursor is open.
func (c *Cursor) Position() (Position, bool) {
	p := c.pos.Load()
	if p == nil {
		return Position{}, false
	}
	return *p, true
}

// Renewals returns how many times the cursor reopened an expired position.
func (c *Cursor) Renewals() int64 {
	return c.renewals.Load()
}
