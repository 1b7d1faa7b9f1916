// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamContext is the subset of jetstream.JetStream used by StreamManager.
type JetStreamContext interface {
	StreamLookup
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// StreamManager ensures the configured streams exist before publishers,
// subscribers and sources start.
type StreamManager struct {
	js    JetStreamContext
	specs []StreamSpec
}

// NewStreamManager creates a manager for specs.
func NewStreamManager(js JetStreamContext, specs ...StreamSpec) (*StreamManager, error) {
	if js == nil {
		return nil, fmt.Errorf("JetStream context required")
	}
	for _, spec := range specs {
		if spec.Name == "" || len(spec.Subjects) == 0 {
			return nil, fmt.Errorf("stream spec requires a name and subjects")
		}
	}
	return &StreamManager{js: js, specs: specs}, nil
}

// EnsureStreams creates or updates every stream. Idempotent.
func (m *StreamManager) EnsureStreams(ctx context.Context) error {
	for _, spec := range m.specs {
		if _, err := m.EnsureStream(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

// EnsureStream creates spec's stream, or updates it when it already exists.
// Streams use file storage, discard-old limits retention and allow direct
// get, which JetStreamSource reads through.
func (m *StreamManager) EnsureStream(ctx context.Context, spec StreamSpec) (jetstream.Stream, error) {
	replicas := spec.Replicas
	if replicas <= 0 {
		replicas = 1
	}
	cfg := jetstream.StreamConfig{
		Name:        spec.Name,
		Subjects:    spec.Subjects,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      spec.MaxAge,
		MaxBytes:    spec.MaxBytes,
		MaxMsgs:     spec.MaxMsgs,
		Duplicates:  spec.DuplicateWindow,
		Replicas:    replicas,
		Storage:     jetstream.FileStorage,
		AllowDirect: true,
		Discard:     jetstream.DiscardOld,
	}

	_, err := m.js.Stream(ctx, spec.Name)
	if err == nil {
		stream, err := m.js.UpdateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("update stream %s: %w", spec.Name, err)
		}
		return stream, nil
	}

	if errors.Is(err, jetstream.ErrStreamNotFound) {
		stream, err := m.js.CreateStream(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create stream %s: %w", spec.Name, err)
		}
		return stream, nil
	}

	return nil, fmt.Errorf("check stream %s: %w", spec.Name, err)
}

// IsHealthy reports whether every managed stream is reachable.
func (m *StreamManager) IsHealthy(ctx context.Context) bool {
	for _, spec := range m.specs {
		if _, err := m.js.Stream(ctx, spec.Name); err != nil {
			return false
		}
	}
	return true
}
