// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sideline/config.yaml",
	"/etc/sideline/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"producer.args",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML values are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Stream
	"stream_backend":           "stream.backend",
	"nats_url":                 "stream.url",
	"nats_embedded":            "stream.embedded_server",
	"nats_store_dir":           "stream.store_dir",
	"nats_max_memory":          "stream.max_memory",
	"nats_max_store":           "stream.max_store",
	"telemetry_stream":         "stream.telemetry_stream",
	"telemetry_subject":        "stream.telemetry_subject",
	"commentary_stream":        "stream.commentary_stream",
	"commentary_subject":       "stream.commentary_subject",
	"stream_position_ttl":      "stream.position_ttl",
	"stream_max_age":           "stream.max_age",
	"stream_max_records":       "stream.max_records",
	"stream_duplicate_window":  "stream.duplicate_window",
	"stream_breaker_threshold": "stream.breaker_failure_threshold",
	"stream_breaker_timeout":   "stream.breaker_timeout",

	// Session
	"session_max_lines":     "session.max_lines",
	"session_poll_interval": "session.poll_interval",
	"session_poll_limit":    "session.poll_limit",
	"session_stop_timeout":  "session.stop_timeout",

	// Producer
	"producer_mode":          "producer.mode",
	"producer_command":       "producer.command",
	"producer_args":          "producer.args",
	"producer_dataset":       "producer.dataset",
	"producer_emit_interval": "producer.emit_interval",
	"producer_run_duration":  "producer.run_duration",

	// Enrichment
	"enrichment_enabled":        "enrichment.enabled",
	"enrichment_generator":      "enrichment.generator",
	"enrichment_endpoint":       "enrichment.endpoint",
	"enrichment_model":          "enrichment.model",
	"enrichment_timeout":        "enrichment.timeout",
	"enrichment_max_tokens":     "enrichment.max_tokens",
	"enrichment_temperature":    "enrichment.temperature",
	"enrichment_rate_limit":     "enrichment.rate_limit",
	"enrichment_rate_burst":     "enrichment.rate_burst",
	"enrichment_retry_count":    "enrichment.retry_count",
	"enrichment_retry_interval": "enrichment.retry_interval",
	"enrichment_poison_topic":   "enrichment.poison_queue_topic",
	"enrichment_close_timeout":  "enrichment.close_timeout",

	// Server
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"view_refresh":        "server.view_refresh",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" so unrelated environment variables are ignored.
//
// Examples:
//   - NATS_URL -> stream.url
//   - SESSION_MAX_LINES -> session.max_lines
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
