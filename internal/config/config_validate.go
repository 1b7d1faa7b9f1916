// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/sideline/internal/logging"
)

// Limits
const (
	maxLinesLimit      = 10000
	maxPollLimit       = 1000
	minPollInterval    = 10 * time.Millisecond
	minPositionTTL     = time.Second
	natsMinMemory      = 16 * 1024 * 1024 // 16MB
	natsMinStore       = 64 * 1024 * 1024 // 64MB
	minProducerEmit    = 10 * time.Millisecond
	maxGeneratorTokens = 4096
)

// Validate checks that configuration values are present and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateStream,
		c.validateSession,
		c.validateProducer,
		c.validateEnrichment,
		c.validateServer,
		c.validateLogging,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateStream() error {
	switch c.Stream.Backend {
	case BackendMemory:
	case BackendNATS:
		if err := c.validateNATS(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STREAM_BACKEND must be nats or memory, got %q", c.Stream.Backend)
	}

	if c.Stream.TelemetrySubject == "" || c.Stream.CommentarySubject == "" {
		return fmt.Errorf("TELEMETRY_SUBJECT and COMMENTARY_SUBJECT are required")
	}
	if c.Stream.TelemetrySubject == c.Stream.CommentarySubject {
		return fmt.Errorf("TELEMETRY_SUBJECT and COMMENTARY_SUBJECT must differ")
	}
	if c.Stream.PositionTTL < minPositionTTL {
		return fmt.Errorf("STREAM_POSITION_TTL must be at least 1s")
	}
	if c.Stream.MaxRecords < 1 {
		return fmt.Errorf("STREAM_MAX_RECORDS must be positive")
	}
	return nil
}

func (c *Config) validateNATS() error {
	if c.Stream.TelemetryStream == "" || c.Stream.CommentaryStream == "" {
		return fmt.Errorf("TELEMETRY_STREAM and COMMENTARY_STREAM are required")
	}
	if c.Stream.TelemetryStream == c.Stream.CommentaryStream {
		return fmt.Errorf("TELEMETRY_STREAM and COMMENTARY_STREAM must differ")
	}

	if c.Stream.EmbeddedServer {
		if c.Stream.MaxMemory < natsMinMemory {
			return fmt.Errorf("NATS_MAX_MEMORY must be at least 16MB (16777216 bytes)")
		}
		if c.Stream.MaxStore < natsMinStore {
			return fmt.Errorf("NATS_MAX_STORE must be at least 64MB (67108864 bytes)")
		}
		return nil
	}

	if err := validateNATSURL(c.Stream.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateSession() error {
	if c.Session.MaxLines < 1 || c.Session.MaxLines > maxLinesLimit {
		return fmt.Errorf("SESSION_MAX_LINES must be between 1 and %d", maxLinesLimit)
	}
	if c.Session.PollLimit < 1 || c.Session.PollLimit > maxPollLimit {
		return fmt.Errorf("SESSION_POLL_LIMIT must be between 1 and %d", maxPollLimit)
	}
	if c.Session.PollInterval < minPollInterval {
		return fmt.Errorf("SESSION_POLL_INTERVAL must be at least 10ms")
	}
	if c.Session.StopTimeout <= 0 {
		return fmt.Errorf("SESSION_STOP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateProducer() error {
	switch c.Producer.Mode {
	case ProducerModeInProcess:
	case ProducerModeProcess:
		if c.Producer.Command == "" {
			return fmt.Errorf("PRODUCER_COMMAND is required when PRODUCER_MODE=process")
		}
		// A child process can only reach a network broker.
		if !c.UsesNATS() {
			return fmt.Errorf("PRODUCER_MODE=process requires STREAM_BACKEND=nats")
		}
	default:
		return fmt.Errorf("PRODUCER_MODE must be inprocess or process, got %q", c.Producer.Mode)
	}

	if c.Producer.EmitInterval < minProducerEmit {
		return fmt.Errorf("PRODUCER_EMIT_INTERVAL must be at least 10ms")
	}
	if c.Producer.RunDuration <= 0 {
		return fmt.Errorf("PRODUCER_RUN_DURATION must be positive")
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if !c.Enrichment.Enabled {
		return nil
	}

	switch c.Enrichment.Generator {
	case GeneratorTemplate:
	case GeneratorHTTP:
		if err := validateHTTPURL(c.Enrichment.Endpoint, "ENRICHMENT_ENDPOINT"); err != nil {
			return err
		}
		if c.Enrichment.MaxTokens < 1 || c.Enrichment.MaxTokens > maxGeneratorTokens {
			return fmt.Errorf("ENRICHMENT_MAX_TOKENS must be between 1 and %d", maxGeneratorTokens)
		}
		if c.Enrichment.RateLimit <= 0 {
			return fmt.Errorf("ENRICHMENT_RATE_LIMIT must be positive")
		}
	default:
		return fmt.Errorf("ENRICHMENT_GENERATOR must be template or http, got %q", c.Enrichment.Generator)
	}

	if c.Enrichment.RetryCount < 0 {
		return fmt.Errorf("ENRICHMENT_RETRY_COUNT must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ViewRefresh <= 0 {
		return fmt.Errorf("VIEW_REFRESH must be positive")
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Server.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

// ShouldWarnAboutCORS reports whether any CORS origin is a wildcard.
func (c *Config) ShouldWarnAboutCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
