// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package cache provides bounded in-memory containers used by the session layer.

# Ring

Ring is a generic fixed-capacity log. Pushing onto a full ring overwrites the
oldest entry, so memory per session stays constant no matter how long a
session streams:

	lines := cache.NewRing[string](200)
	lines.Push("(Q1 12:00) Tip-off.")
	recent := lines.Tail(20) // oldest first

Rings are not synchronized. The session state keeps its commentary and
telemetry rings in lockstep under one mutex, which a per-ring lock could not
guarantee.

# Performance Characteristics

  - Push: O(1), no allocation
  - Snapshot and Tail: O(n) copy
  - Reset: O(capacity), zeroes the buffer so evicted values can be collected
*/
package cache
