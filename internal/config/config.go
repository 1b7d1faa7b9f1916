// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package config

import (
	"time"

	"github.com/tomtom215/sideline/internal/logging"
)

// Stream backends.
const (
	BackendNATS   = "nats"
	BackendMemory = "memory"
)

// Producer modes.
const (
	ProducerModeInProcess = "inprocess"
	ProducerModeProcess   = "process"
)

// Commentary generators.
const (
	GeneratorTemplate = "template"
	GeneratorHTTP     = "http"
)

// Config holds all application configuration.
type Config struct {
	Stream     StreamConfig     `koanf:"stream"`
	Session    SessionConfig    `koanf:"session"`
	Producer   ProducerConfig   `koanf:"producer"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// StreamConfig configures the shared ordered record stream.
type StreamConfig struct {
	// Backend selects the stream implementation: nats or memory.
	Backend string `koanf:"backend"`

	// URL is the NATS server connection URL (ignored when EmbeddedServer is true).
	URL string `koanf:"url"`

	// EmbeddedServer starts an in-process NATS server with JetStream.
	EmbeddedServer bool `koanf:"embedded_server"`

	// StoreDir is the JetStream storage directory of the embedded server.
	StoreDir string `koanf:"store_dir"`

	// MaxMemory is the JetStream memory limit of the embedded server in bytes.
	MaxMemory int64 `koanf:"max_memory"`

	// MaxStore is the JetStream disk limit of the embedded server in bytes.
	MaxStore int64 `koanf:"max_store"`

	// TelemetryStream holds raw producer output.
	TelemetryStream  string `koanf:"telemetry_stream"`
	TelemetrySubject string `koanf:"telemetry_subject"`

	// CommentaryStream holds enriched records. Session workers read this stream.
	CommentaryStream  string `koanf:"commentary_stream"`
	CommentarySubject string `koanf:"commentary_subject"`

	// PositionTTL is how long a position token stays valid between polls.
	PositionTTL time.Duration `koanf:"position_ttl"`

	// MaxAge is the retention period of both streams.
	MaxAge time.Duration `koanf:"max_age"`

	// MaxRecords bounds the number of retained records per stream.
	MaxRecords int64 `koanf:"max_records"`

	// DuplicateWindow is the JetStream Nats-Msg-Id deduplication window.
	DuplicateWindow time.Duration `koanf:"duplicate_window"`

	// Publisher circuit breaker.
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// SessionConfig configures per-session consumption.
type SessionConfig struct {
	// MaxLines caps both the commentary and telemetry logs of a session.
	MaxLines int `koanf:"max_lines"`

	// PollInterval is the idle sleep after an empty poll.
	PollInterval time.Duration `koanf:"poll_interval"`

	// PollLimit is the maximum number of records fetched per poll.
	PollLimit int `koanf:"poll_limit"`

	// StopTimeout bounds how long StopSession waits for a worker to exit.
	StopTimeout time.Duration `koanf:"stop_timeout"`
}

// ProducerConfig configures per-session telemetry producers.
type ProducerConfig struct {
	// Mode selects inprocess (goroutine) or process (child process) producers.
	Mode string `koanf:"mode"`

	// Command is the simulator binary launched in process mode.
	Command string `koanf:"command"`

	// Args are extra arguments passed to Command.
	Args []string `koanf:"args"`

	// Dataset is a play-by-play CSV file. Empty uses the built-in game.
	Dataset string `koanf:"dataset"`

	// EmitInterval is the delay between two rows.
	EmitInterval time.Duration `koanf:"emit_interval"`

	// RunDuration is how long a producer emits before exiting.
	RunDuration time.Duration `koanf:"run_duration"`
}

// EnrichmentConfig configures the commentary enrichment router.
type EnrichmentConfig struct {
	// Enabled runs the enrichment router in this process.
	Enabled bool `koanf:"enabled"`

	// Generator selects template or http.
	Generator string `koanf:"generator"`

	// Endpoint is the completion URL of the http generator.
	Endpoint string `koanf:"endpoint"`

	// Model is passed through to the http generator.
	Model string `koanf:"model"`

	// Timeout bounds one generator request.
	Timeout time.Duration `koanf:"timeout"`

	// MaxTokens and Temperature are passed through to the http generator.
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`

	// RateLimit is the maximum generator requests per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// Router settings.
	RetryCount       int           `koanf:"retry_count"`
	RetryInterval    time.Duration `koanf:"retry_interval"`
	PoisonQueueTopic string        `koanf:"poison_queue_topic"`
	CloseTimeout     time.Duration `koanf:"close_timeout"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// ViewRefresh is the websocket view push interval.
	ViewRefresh time.Duration `koanf:"view_refresh"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToLoggingConfig converts to the logging package configuration.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// UsesNATS reports whether the stream backend is NATS JetStream.
func (c *Config) UsesNATS() bool {
	return c.Stream.Backend == BackendNATS
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Stream: StreamConfig{
			Backend:                 BackendNATS,
			URL:                     "nats://127.0.0.1:4222",
			EmbeddedServer:          true,
			StoreDir:                "/data/nats/jetstream",
			MaxMemory:               256 << 20, // 256MB
			MaxStore:                1 << 30,   // 1GB
			TelemetryStream:         "SPORTS_TELEMETRY",
			TelemetrySubject:        "telemetry.raw",
			CommentaryStream:        "SPORTS_COMMENTARY",
			CommentarySubject:       "commentary.enriched",
			PositionTTL:             5 * time.Minute,
			MaxAge:                  24 * time.Hour,
			MaxRecords:              100000,
			DuplicateWindow:         2 * time.Minute,
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		Session: SessionConfig{
			MaxLines:     50,
			PollInterval: 2 * time.Second,
			PollLimit:    1,
			StopTimeout:  5 * time.Second,
		},
		Producer: ProducerConfig{
			Mode:         ProducerModeInProcess,
			Command:      "sideline-simulator",
			Args:         []string{},
			Dataset:      "",
			EmitInterval: 15 * time.Second,
			RunDuration:  5 * time.Minute,
		},
		Enrichment: EnrichmentConfig{
			Enabled:          true,
			Generator:        GeneratorTemplate,
			Endpoint:         "",
			Model:            "",
			Timeout:          10 * time.Second,
			MaxTokens:        50,
			Temperature:      0,
			RateLimit:        5,
			RateBurst:        9,
			RetryCount:       3,
			RetryInterval:    200 * time.Millisecond,
			PoisonQueueTopic: "commentary.poison",
			CloseTimeout:     10 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ViewRefresh:     3 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without file or environment overrides.
func Default() *Config {
	return defaultConfig()
}
