// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package config loads and validates Sideline configuration.
//
// Configuration is layered with Koanf v2, in increasing priority:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/sideline/config.yaml
//  3. Environment variables, mapped explicitly (see envMappings)
//
// Example config.yaml:
//
//	stream:
//	  backend: nats
//	  embedded_server: true
//	  store_dir: /data/nats/jetstream
//	session:
//	  max_lines: 50
//	  poll_interval: 2s
//	  poll_limit: 1
//	producer:
//	  mode: inprocess
//	  emit_interval: 15s
//	  run_duration: 5m
//	enrichment:
//	  generator: template
//	server:
//	  port: 8080
//
// Common environment variables:
//
//	STREAM_BACKEND        nats or memory (default: nats)
//	NATS_URL              external NATS server when NATS_EMBEDDED=false
//	SESSION_MAX_LINES     sliding window size (default: 50)
//	SESSION_POLL_INTERVAL idle delay between empty polls (default: 2s)
//	PRODUCER_MODE         inprocess or process (default: inprocess)
//	ENRICHMENT_GENERATOR  template or http (default: template)
//	HTTP_PORT             API port (default: 8080)
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// Load returns a validated *Config or an error describing the first invalid
// setting by its environment variable name.
package config
