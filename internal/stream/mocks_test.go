// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 9, 13, 13, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// MockStream implements jetstream.Stream over an in-memory message map.
type MockStream struct {
	mu       sync.Mutex
	config   jetstream.StreamConfig
	msgs     map[uint64]*jetstream.RawStreamMsg
	firstSeq uint64
	lastSeq  uint64
	infoErr  error
	getErr   error
}

func NewMockStream(name string) *MockStream {
	return &MockStream{
		config: jetstream.StreamConfig{Name: name},
		msgs:   make(map[uint64]*jetstream.RawStreamMsg),
	}
}

// add stores a message under the next sequence.
func (m *MockStream) add(subject string, data []byte) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeq++
	if m.firstSeq == 0 {
		m.firstSeq = m.lastSeq
	}
	m.msgs[m.lastSeq] = &jetstream.RawStreamMsg{
		Subject:  subject,
		Sequence: m.lastSeq,
		Data:     data,
		Time:     time.Now(),
	}
	return m.lastSeq
}

// remove deletes seq as an interior delete.
func (m *MockStream) remove(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.msgs, seq)
}

// trim discards all messages below seq.
func (m *MockStream) trim(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for s := range m.msgs {
		if s < seq {
			delete(m.msgs, s)
		}
	}
	m.firstSeq = seq
}

func (m *MockStream) Info(ctx context.Context, opts ...jetstream.StreamInfoOpt) (*jetstream.StreamInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return &jetstream.StreamInfo{
		Config: m.config,
		State: jetstream.StreamState{
			Msgs:     uint64(len(m.msgs)),
			FirstSeq: m.firstSeq,
			LastSeq:  m.lastSeq,
		},
	}, nil
}

func (m *MockStream) CachedInfo() *jetstream.StreamInfo {
	return &jetstream.StreamInfo{Config: m.config}
}

func (m *MockStream) GetMsg(ctx context.Context, seq uint64, opts ...jetstream.GetMsgOpt) (*jetstream.RawStreamMsg, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	msg, ok := m.msgs[seq]
	if !ok {
		return nil, jetstream.ErrMsgNotFound
	}
	return msg, nil
}

func (m *MockStream) Purge(ctx context.Context, opts ...jetstream.StreamPurgeOpt) error { return nil }

func (m *MockStream) CreateOrUpdateConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.Consumer, error) {
	return nil, nil
}

func (m *MockStream) OrderedConsumer(ctx context.Context, cfg jetstream.OrderedConsumerConfig) (jetstream.Consumer, error) {
	return nil, nil
}

func (m *MockStream) Consumer(ctx context.Context, name string) (jetstream.Consumer, error) {
	return nil, nil
}

func (m *MockStream) DeleteConsumer(ctx context.Context, name string) error { return nil }

func (m *MockStream) CreateConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.Consumer, error) {
	return nil, nil
}

func (m *MockStream) UpdateConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.Consumer, error) {
	return nil, nil
}

func (m *MockStream) ListConsumers(ctx context.Context) jetstream.ConsumerInfoLister { return nil }

func (m *MockStream) ConsumerNames(ctx context.Context) jetstream.ConsumerNameLister { return nil }

func (m *MockStream) CreateOrUpdatePushConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.PushConsumer, error) {
	return nil, nil
}

func (m *MockStream) CreatePushConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.PushConsumer, error) {
	return nil, nil
}

func (m *MockStream) UpdatePushConsumer(ctx context.Context, cfg jetstream.ConsumerConfig) (jetstream.PushConsumer, error) {
	return nil, nil
}

func (m *MockStream) PushConsumer(ctx context.Context, name string) (jetstream.PushConsumer, error) {
	return nil, nil
}

func (m *MockStream) PauseConsumer(ctx context.Context, name string, pauseUntil time.Time) (*jetstream.ConsumerPauseResponse, error) {
	return nil, nil
}

func (m *MockStream) ResumeConsumer(ctx context.Context, name string) (*jetstream.ConsumerPauseResponse, error) {
	return nil, nil
}

func (m *MockStream) UnpinConsumer(ctx context.Context, name string, group string) error {
	return nil
}

func (m *MockStream) GetLastMsgForSubject(ctx context.Context, subject string) (*jetstream.RawStreamMsg, error) {
	return nil, nil
}

func (m *MockStream) DeleteMsg(ctx context.Context, seq uint64) error { return nil }

func (m *MockStream) SecureDeleteMsg(ctx context.Context, seq uint64) error { return nil }

// MockJetStreamContext implements JetStreamContext.
type MockJetStreamContext struct {
	mu          sync.Mutex
	streams     map[string]*MockStream
	streamErr   error
	createErr   error
	updateErr   error
	createCalls int
	updateCalls int
}

func NewMockJetStreamContext() *MockJetStreamContext {
	return &MockJetStreamContext{streams: make(map[string]*MockStream)}
}

func (m *MockJetStreamContext) Stream(ctx context.Context, name string) (jetstream.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	s, ok := m.streams[name]
	if !ok {
		return nil, jetstream.ErrStreamNotFound
	}
	return s, nil
}

func (m *MockJetStreamContext) CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	s := NewMockStream(cfg.Name)
	s.config = cfg
	m.streams[cfg.Name] = s
	return s, nil
}

func (m *MockJetStreamContext) UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	s, ok := m.streams[cfg.Name]
	if !ok {
		return nil, jetstream.ErrStreamNotFound
	}
	s.config = cfg
	return s, nil
}
