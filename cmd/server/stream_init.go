// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/sideline/internal/config"
	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/stream"
)

// streamInitTimeout bounds stream provisioning at startup.
const streamInitTimeout = 30 * time.Second

// StreamComponents holds the transport of one server process.
//
// Raw telemetry flows from producers through RawPublisher to RawSubscriber.
// The enrichment pipeline publishes enriched records with
// CommentaryPublisher, and session workers read them back through Source.
type StreamComponents struct {
	Source              stream.Source
	Health              func(ctx context.Context) error
	RawPublisher        message.Publisher
	RawSubscriber       message.Subscriber
	CommentaryPublisher message.Publisher
	PoisonPublisher     message.Publisher

	// BrokerURL is the address child producers publish to. Empty for the
	// memory backend.
	BrokerURL string

	closers []func(ctx context.Context) error
}

// Close releases every component in reverse creation order.
func (c *StreamComponents) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *StreamComponents) onClose(fn func(ctx context.Context) error) {
	c.closers = append(c.closers, fn)
}

// InitStream builds the configured stream backend.
func InitStream(cfg *config.Config) (*StreamComponents, error) {
	if cfg.UsesNATS() {
		return initNATS(cfg)
	}
	return initMemory(cfg), nil
}

// initMemory wires a single-process pipeline: a Go channel carries raw
// telemetry and an in-memory log holds enriched records.
func initMemory(cfg *config.Config) *StreamComponents {
	raw := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, logging.NewWatermillLogger("gochannel"))

	source := stream.NewMemorySource(stream.MemoryConfig{
		MaxRecords:  int(cfg.Stream.MaxRecords),
		PositionTTL: cfg.Stream.PositionTTL,
	})

	c := &StreamComponents{
		Source:              source,
		Health:              source.Health,
		RawPublisher:        raw,
		RawSubscriber:       raw,
		CommentaryPublisher: source,
		PoisonPublisher:     raw,
	}
	c.onClose(func(context.Context) error { return raw.Close() })
	c.onClose(func(context.Context) error { return source.Close() })

	logging.Info().
		Int64("max_records", cfg.Stream.MaxRecords).
		Msg("Using in-memory stream backend")
	return c
}

//nolint:gocyclo // sequential setup with cleanup on each failure
func initNATS(cfg *config.Config) (_ *StreamComponents, err error) {
	comps := &StreamComponents{}
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = comps.Close(ctx)
		}
	}()

	url := cfg.Stream.URL
	if cfg.Stream.EmbeddedServer {
		serverCfg := stream.DefaultServerConfig()
		serverCfg.StoreDir = cfg.Stream.StoreDir
		serverCfg.JetStreamMaxMem = cfg.Stream.MaxMemory
		serverCfg.JetStreamMaxStore = cfg.Stream.MaxStore

		srv, err := stream.NewEmbeddedServer(serverCfg)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", err)
		}
		comps.onClose(srv.Shutdown)
		url = srv.ClientURL()
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}
	comps.BrokerURL = url

	wmLogger := logging.NewWatermillLogger("nats")

	nc, js, err := stream.Connect(stream.DefaultConnConfig(url), wmLogger)
	if err != nil {
		return nil, err
	}
	comps.onClose(func(context.Context) error { nc.Close(); return nil })

	manager, err := stream.NewStreamManager(js, streamSpecs(cfg)...)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), streamInitTimeout)
	defer cancel()
	if err := manager.EnsureStreams(ctx); err != nil {
		return nil, fmt.Errorf("provision streams: %w", err)
	}

	source, err := stream.NewJetStreamSource(js, cfg.Stream.CommentaryStream, cfg.Stream.PositionTTL)
	if err != nil {
		return nil, err
	}
	comps.onClose(func(context.Context) error { return source.Close() })
	comps.Source = source
	comps.Health = source.Health

	publisher, err := stream.NewPublisher(stream.DefaultPublisherConfig(url), wmLogger)
	if err != nil {
		return nil, err
	}
	breakerCfg := stream.DefaultBreakerConfig("nats-publisher")
	breakerCfg.FailureThreshold = cfg.Stream.BreakerFailureThreshold
	breakerCfg.Timeout = cfg.Stream.BreakerTimeout
	publisher.SetCircuitBreaker(stream.NewCircuitBreaker(breakerCfg))
	comps.onClose(func(context.Context) error { return publisher.Close() })
	comps.RawPublisher = publisher
	comps.CommentaryPublisher = publisher
	comps.PoisonPublisher = publisher

	subscriber, err := stream.NewSubscriber(stream.DefaultSubscriberConfig(url, cfg.Stream.TelemetryStream), wmLogger)
	if err != nil {
		return nil, err
	}
	comps.onClose(func(context.Context) error { return subscriber.Close() })
	comps.RawSubscriber = subscriber

	logging.Info().
		Str("telemetry_stream", cfg.Stream.TelemetryStream).
		Str("commentary_stream", cfg.Stream.CommentaryStream).
		Msg("NATS JetStream backend initialized")
	return comps, nil
}

// streamSpecs returns the two streams. Poisoned raw messages are kept next
// to the telemetry they came from.
func streamSpecs(cfg *config.Config) []stream.StreamSpec {
	telemetrySubjects := []string{cfg.Stream.TelemetrySubject}
	if topic := cfg.Enrichment.PoisonQueueTopic; topic != "" {
		telemetrySubjects = append(telemetrySubjects, topic)
	}

	return []stream.StreamSpec{
		{
			Name:            cfg.Stream.TelemetryStream,
			Subjects:        telemetrySubjects,
			MaxAge:          cfg.Stream.MaxAge,
			MaxMsgs:         int64(cfg.Stream.MaxRecords),
			DuplicateWindow: cfg.Stream.DuplicateWindow,
			Replicas:        1,
		},
		{
			Name:            cfg.Stream.CommentaryStream,
			Subjects:        []string{cfg.Stream.CommentarySubject},
			MaxAge:          cfg.Stream.MaxAge,
			MaxMsgs:         int64(cfg.Stream.MaxRecords),
			DuplicateWindow: cfg.Stream.DuplicateWindow,
			Replicas:        1,
		},
	}
}
