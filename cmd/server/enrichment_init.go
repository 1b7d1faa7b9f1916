// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package main

import (
	"github.com/tomtom215/sideline/internal/config"
	"github.com/tomtom215/sideline/internal/enrichment"
	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/stream"
)

// InitPipeline builds the enrichment pipeline, or returns nil when
// enrichment runs elsewhere.
func InitPipeline(cfg *config.Config, comps *StreamComponents) (*enrichment.Pipeline, error) {
	if !cfg.Enrichment.Enabled {
		logging.Info().Msg("Enrichment disabled in this process (ENRICHMENT_ENABLED=false)")
		return nil, nil
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	routerCfg := enrichment.DefaultRouterConfig()
	routerCfg.CloseTimeout = cfg.Enrichment.CloseTimeout
	routerCfg.RetryMaxRetries = cfg.Enrichment.RetryCount
	routerCfg.RetryInitialInterval = cfg.Enrichment.RetryInterval
	routerCfg.PoisonQueueTopic = cfg.Enrichment.PoisonQueueTopic
	routerCfg.DeduplicationTTL = cfg.Stream.DuplicateWindow

	return enrichment.NewPipeline(
		enrichment.PipelineConfig{
			Router:          routerCfg,
			RawTopic:        cfg.Stream.TelemetrySubject,
			CommentaryTopic: cfg.Stream.CommentarySubject,
		},
		comps.RawSubscriber,
		comps.CommentaryPublisher,
		comps.PoisonPublisher,
		enrichment.NewEnricher(gen),
		logging.NewWatermillLogger("enrichment"),
	)
}

func newGenerator(cfg *config.Config) (enrichment.Generator, error) {
	if cfg.Enrichment.Generator != config.GeneratorHTTP {
		logging.Info().Msg("Commentary generated from templates")
		return enrichment.NewTemplateGenerator(), nil
	}

	breaker := stream.DefaultBreakerConfig("commentary-generator")
	gen, err := enrichment.NewHTTPGenerator(enrichment.HTTPConfig{
		Endpoint:    cfg.Enrichment.Endpoint,
		Model:       cfg.Enrichment.Model,
		Timeout:     cfg.Enrichment.Timeout,
		MaxTokens:   cfg.Enrichment.MaxTokens,
		Temperature: cfg.Enrichment.Temperature,
		RateLimit:   cfg.Enrichment.RateLimit,
		RateBurst:   cfg.Enrichment.RateBurst,
		Breaker:     breaker,
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("endpoint", cfg.Enrichment.Endpoint).
		Str("model", cfg.Enrichment.Model).
		Msg("Commentary generated by completion endpoint")
	return gen, nil
}
