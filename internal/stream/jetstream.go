// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// StreamLookup is the subset of jetstream.JetStream used to read a stream.
type StreamLookup interface {
	Stream(ctx context.Context, name string) (jetstream.Stream, error)
}

// JetStreamSource reads a JetStream stream through the direct get API.
// Positions are stream sequences stamped with an issue time; the
// configured staleness window is enforced on every poll.
type JetStreamSource struct {
	js         StreamLookup
	streamName string
	ttl        time.Duration
	now        func() time.Time

	mu     sync.RWMutex
	stream jetstream.Stream
	closed bool
	close  func()
}

// JetStreamSourceOption configures a JetStreamSource.
type JetStreamSourceOption func(*JetStreamSource)

// WithClock overrides the clock used for position expiry.
func WithClock(now func() time.Time) JetStreamSourceOption {
	return func(s *JetStreamSource) {
		s.now = now
	}
}

// WithCloser registers fn to run on Close, typically closing the NATS connection.
func WithCloser(fn func()) JetStreamSourceOption {
	return func(s *JetStreamSource) {
		s.close = fn
	}
}

// NewJetStreamSource creates a source over streamName.
func NewJetStreamSource(js StreamLookup, streamName string, ttl time.Duration, opts ...JetStreamSourceOption) (*JetStreamSource, error) {
	if js == nil {
		return nil, fmt.Errorf("JetStream context required")
	}
	if streamName == "" {
		return nil, fmt.Errorf("stream name required")
	}

	s := &JetStreamSource{
		js:         js,
		streamName: streamName,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *JetStreamSource) handle(ctx context.Context) (jetstream.Stream, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrSourceClosed
	}
	stream := s.stream
	s.mu.RUnlock()
	if stream != nil {
		return stream, nil
	}

	stream, err := s.js.Stream(ctx, s.streamName)
	if err != nil {
		return nil, fmt.Errorf("get stream %s: %w", s.streamName, err)
	}

	s.mu.Lock()
	s.stream = stream
	s.mu.Unlock()
	return stream, nil
}

func (s *JetStreamSource) state(ctx context.Context) (jetstream.Stream, jetstream.StreamState, error) {
	stream, err := s.handle(ctx)
	if err != nil {
		return nil, jetstream.StreamState{}, err
	}
	info, err := stream.Info(ctx)
	if err != nil {
		return nil, jetstream.StreamState{}, fmt.Errorf("get stream info: %w", err)
	}
	return stream, info.State, nil
}

// Open implements Source.
func (s *JetStreamSource) Open(ctx context.Context) (Position, error) {
	_, st, err := s.state(ctx)
	if err != nil {
		return Position{}, err
	}
	return Position{Sequence: st.LastSeq + 1, IssuedAt: s.now()}, nil
}

// Poll implements Source. Deleted sequences are skipped.
func (s *JetStreamSource) Poll(ctx context.Context, pos Position, limit int) ([]Record, Position, error) {
	now := s.now()
	if expired(pos, s.ttl, now) {
		return nil, pos, ErrExpiredPosition
	}

	stream, st, err := s.state(ctx)
	if err != nil {
		return nil, pos, err
	}
	if st.Msgs > 0 && pos.Sequence < st.FirstSeq {
		return nil, pos, ErrExpiredPosition
	}
	if limit <= 0 {
		limit = 1
	}

	next := Position{Sequence: pos.Sequence, IssuedAt: now}
	var records []Record
	for seq := pos.Sequence; seq <= st.LastSeq && len(records) < limit; seq++ {
		msg, err := stream.GetMsg(ctx, seq)
		if errors.Is(err, jetstream.ErrMsgNotFound) {
			next.Sequence = seq + 1
			continue
		}
		if err != nil {
			return nil, pos, fmt.Errorf("get message %d: %w", seq, err)
		}

		records = append(records, Record{
			Sequence:  seq,
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: msg.Time,
		})
		next.Sequence = seq + 1
	}

	return records, next, nil
}

// Health implements HealthChecker.
func (s *JetStreamSource) Health(ctx context.Context) error {
	_, _, err := s.state(ctx)
	return err
}

// Close releases the source.
func (s *JetStreamSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stream = nil
	if s.close != nil {
		s.close()
	}
	return nil
}
