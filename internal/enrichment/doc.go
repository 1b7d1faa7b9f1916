// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package enrichment turns raw telemetry into enriched commentary records.

For each raw row the Enricher builds one prompt per (style, language)
pair, styles outer and languages inner, asks a Generator for the text,
prefixes it with the play clock as "(mm:ss) ", and returns an
EnrichedRecord carrying all nine variants in that order.

Generators:

  - TemplateGenerator: deterministic phrasebook rendering, no network
  - HTTPGenerator: JSON completion endpoint, rate limited and guarded by
    a circuit breaker

The Pipeline runs a Watermill router that consumes the raw telemetry
topic and publishes enriched records onto the commentary topic. Rows
without a session ID, or that cannot be decoded, are dropped. Generator
failures are retried and then sent to the poison queue.
*/
package enrichment
