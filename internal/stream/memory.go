// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/sideline/internal/metrics"
)

// MemoryConfig configures a MemorySource.
type MemoryConfig struct {
	// MaxRecords bounds retention; the oldest records are discarded first.
	// Zero means unbounded.
	MaxRecords int

	// PositionTTL is the staleness window of position tokens. Zero disables expiry.
	PositionTTL time.Duration

	// Now overrides the clock.
	Now func() time.Time
}

// MemorySource is an in-process ordered log. It implements Source and
// message.Publisher.
type MemorySource struct {
	mu       sync.RWMutex
	records  []Record
	firstSeq uint64
	nextSeq  uint64
	closed   bool

	maxRecords int
	ttl        time.Duration
	now        func() time.Time
}

// NewMemorySource creates an empty source. Sequences start at 1.
func NewMemorySource(cfg MemoryConfig) *MemorySource {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &MemorySource{
		firstSeq:   1,
		nextSeq:    1,
		maxRecords: cfg.MaxRecords,
		ttl:        cfg.PositionTTL,
		now:        now,
	}
}

// Append adds one record and returns its sequence.
func (s *MemorySource) Append(subject string, data []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSourceClosed
	}

	seq := s.nextSeq
	s.nextSeq++
	s.records = append(s.records, Record{
		Sequence:  seq,
		Subject:   subject,
		Data:      data,
		Timestamp: s.now(),
	})

	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		drop := len(s.records) - s.maxRecords
		s.records = append(s.records[:0:0], s.records[drop:]...)
	}
	if len(s.records) > 0 {
		s.firstSeq = s.records[0].Sequence
	} else {
		s.firstSeq = s.nextSeq
	}
	return seq, nil
}

// Publish implements message.Publisher. Every message payload is appended
// under topic as subject.
func (s *MemorySource) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		_, err := s.Append(topic, msg.Payload)
		metrics.RecordPublish(topic, err)
		if err != nil {
			return err
		}
	}
	return nil
}

// Open implements Source.
func (s *MemorySource) Open(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Position{}, ErrSourceClosed
	}
	return Position{Sequence: s.nextSeq, IssuedAt: s.now()}, nil
}

// Poll implements Source.
func (s *MemorySource) Poll(ctx context.Context, pos Position, limit int) ([]Record, Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, pos, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, pos, ErrSourceClosed
	}

	now := s.now()
	if expired(pos, s.ttl, now) || pos.Sequence < s.firstSeq {
		return nil, pos, ErrExpiredPosition
	}
	if limit <= 0 {
		limit = 1
	}

	next := Position{Sequence: pos.Sequence, IssuedAt: now}
	if pos.Sequence >= s.nextSeq {
		return nil, next, nil
	}

	start := int(pos.Sequence - s.firstSeq)
	end := start + limit
	if end > len(s.records) {
		end = len(s.records)
	}

	out := make([]Record, end-start)
	copy(out, s.records[start:end])
	next.Sequence = out[len(out)-1].Sequence + 1
	return out, next, nil
}

// Len returns the number of retained records.
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Health implements HealthChecker.
func (s *MemorySource) Health(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSourceClosed
	}
	return nil
}

// Close implements message.Publisher. Subsequent reads and writes fail
// with ErrSourceClosed.
func (s *MemorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
