// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/stream"
)

const handlerName = "enrich-telemetry"

// recordNamespace derives enriched record IDs from raw message IDs so a
// redelivered row produces the same Nats-Msg-Id.
var recordNamespace = uuid.MustParse("6f1c1f7e-5a43-4c1e-9a39-2f5d0c7e8b11")

// RouterConfig configures the Watermill router.
type RouterConfig struct {
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// ThrottlePerSecond limits handled messages; zero disables throttling.
	ThrottlePerSecond int64

	// PoisonQueueTopic receives messages that still fail after retries.
	// Empty disables the poison queue.
	PoisonQueueTopic string

	// DeduplicationTTL drops messages whose UUID was seen within the window.
	// Zero disables deduplication.
	DeduplicationTTL time.Duration
}

// DefaultRouterConfig returns router defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 200 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
		PoisonQueueTopic:     "commentary.poison",
		DeduplicationTTL:     2 * time.Minute,
	}
}

// PipelineConfig configures a Pipeline.
type PipelineConfig struct {
	Router          RouterConfig
	RawTopic        string
	CommentaryTopic string
}

// Pipeline consumes raw telemetry and publishes enriched records. Each
// Start builds a fresh router, so a Pipeline can be restarted by its
// supervisor. The subscriber and publisher are shared with the rest of the
// process and are never closed by the Pipeline.
type Pipeline struct {
	cfg        PipelineConfig
	subscriber message.Subscriber
	publisher  message.Publisher
	poison     message.Publisher
	enricher   *Enricher
	logger     watermill.LoggerAdapter

	mu      sync.Mutex
	router  *message.Router
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

// NewPipeline creates a pipeline. poison may be nil.
func NewPipeline(
	cfg PipelineConfig,
	subscriber message.Subscriber,
	publisher message.Publisher,
	poison message.Publisher,
	enricher *Enricher,
	logger watermill.LoggerAdapter,
) (*Pipeline, error) {
	if subscriber == nil || publisher == nil || enricher == nil {
		return nil, errors.New("pipeline requires a subscriber, a publisher and an enricher")
	}
	if cfg.RawTopic == "" || cfg.CommentaryTopic == "" {
		return nil, errors.New("pipeline topics required")
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	return &Pipeline{
		cfg:        cfg,
		subscriber: keepOpenSubscriber{subscriber},
		publisher:  keepOpenPublisher{publisher},
		poison:     poison,
		enricher:   enricher,
		logger:     logger,
	}, nil
}

func (p *Pipeline) newRouter() (*message.Router, error) {
	cfg := p.cfg.Router
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	if cfg.ThrottlePerSecond > 0 {
		throttle := middleware.NewThrottle(cfg.ThrottlePerSecond, time.Second)
		router.AddMiddleware(throttle.Middleware)
	}

	if cfg.DeduplicationTTL > 0 {
		repo, err := middleware.NewMapExpiringKeyRepository(cfg.DeduplicationTTL)
		if err != nil {
			return nil, fmt.Errorf("create deduplication repository: %w", err)
		}
		dedup := middleware.Deduplicator{
			KeyFactory: func(msg *message.Message) (string, error) {
				return msg.UUID, nil
			},
			Repository: repo,
		}
		router.AddMiddleware(dedup.Middleware)
	}

	if p.poison != nil && cfg.PoisonQueueTopic != "" {
		poisonQueue, err := middleware.PoisonQueue(p.poison, cfg.PoisonQueueTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		router.AddMiddleware(poisonQueue)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          p.logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddHandler(
		handlerName,
		p.cfg.RawTopic,
		p.subscriber,
		p.cfg.CommentaryTopic,
		p.publisher,
		p.Handle,
	)
	return router, nil
}

// Handle enriches one raw telemetry message. Undecodable rows and rows
// without a session ID are acknowledged and dropped.
func (p *Pipeline) Handle(msg *message.Message) ([]*message.Message, error) {
	raw, err := models.DecodeRawTelemetry(msg.Payload)
	if err != nil {
		metrics.RecordDiscard(metrics.DiscardMalformed)
		logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable telemetry")
		return nil, nil
	}

	rec, err := p.enricher.Enrich(msg.Context(), raw)
	if err != nil {
		return nil, err
	}

	data, err := rec.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode enriched record: %w", err)
	}

	out := message.NewMessage(uuid.NewSHA1(recordNamespace, []byte(msg.UUID)).String(), data)
	out.Metadata.Set(stream.PartitionKeyMetadata, uuid.NewString())
	metrics.RecordEnrichedRecord()

	logging.Debug().
		Str("session_id", logging.SanitizeSessionID(raw.SessionID)).
		Str("play_type", raw.PlayType).
		Int("variants", len(rec.Variants)).
		Msg("Enriched telemetry row")

	return []*message.Message{out}, nil
}

// Start runs a new router and returns once it is consuming.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.router != nil {
		return errors.New("pipeline already started")
	}

	router, err := p.newRouter()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		defer close(done)
		p.running.Store(true)
		defer p.running.Store(false)
		errCh <- router.Run(runCtx)
	}()

	select {
	case <-router.Running():
	case err := <-errCh:
		cancel()
		if err == nil {
			err = errors.New("router stopped before running")
		}
		return fmt.Errorf("run enrichment router: %w", err)
	case <-ctx.Done():
		cancel()
		_ = router.Close()
		<-done
		return ctx.Err()
	}

	p.router = router
	p.cancel = cancel
	p.done = done
	return nil
}

// Shutdown closes the router and waits for in-flight messages or ctx.
func (p *Pipeline) Shutdown(ctx context.Context) {
	p.mu.Lock()
	router, cancel, done := p.router, p.cancel, p.done
	p.router, p.cancel, p.done = nil, nil, nil
	p.mu.Unlock()

	if router == nil {
		return
	}

	if err := router.Close(); err != nil {
		logging.Warn().Err(err).Msg("Enrichment router close failed")
	}
	cancel()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// IsRunning reports whether the router is running.
func (p *Pipeline) IsRunning() bool {
	return p.running.Load()
}

// keepOpenSubscriber stops the router from closing a shared subscriber.
type keepOpenSubscriber struct {
	message.Subscriber
}

func (keepOpenSubscriber) Close() error { return nil }

// keepOpenPublisher stops a stopping handler from closing the shared
// output publisher.
type keepOpenPublisher struct {
	message.Publisher
}

func (keepOpenPublisher) Close() error { return nil }
