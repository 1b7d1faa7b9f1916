// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package stream provides the shared ordered record stream that carries
telemetry and enriched commentary for every session.

A Source is an append-only ordered log read through short-lived position
tokens. Open returns a token for "latest"; Poll returns up to limit records
at or after a token together with the next token. Tokens expire after the
source's staleness window, or when the record they point at has been
trimmed by retention, and Poll then fails with ErrExpiredPosition.

A Cursor owns exactly one token and hides expiry from its caller: on
ErrExpiredPosition it reopens at latest and retries the poll once. Records
appended during the gap are skipped, so delivery is best effort.

Implementations:

  - MemorySource: in-process log with bounded retention and an injectable
    clock. It also implements Watermill's message.Publisher so the
    enrichment router can publish into it directly.
  - JetStreamSource: NATS JetStream stream read with the direct get API.

Supporting infrastructure for the NATS backend:

  - StreamManager: creates or updates the telemetry and commentary streams
  - EmbeddedServer: in-process NATS server with JetStream
  - Publisher: Watermill NATS publisher guarded by a circuit breaker
  - NewSubscriber: durable Watermill NATS subscriber bound to a stream
*/
package stream
