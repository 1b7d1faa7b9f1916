// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package cache

// Ring is a bounded, append-only log that keeps the most recent entries.
// Once full, each Push overwrites the oldest entry.
//
// Ring is not safe for concurrent use. Callers that update several rings
// together (for example a commentary line and its telemetry row) hold a
// single lock around all of them.
//
// Complexity:
//   - Push: O(1)
//   - Snapshot: O(n)
//   - Memory: O(capacity)
type Ring[T any] struct {
	buf   []T
	start int // index of the oldest entry
	size  int
}

// NewRing creates a ring holding at most capacity entries.
// A non-positive capacity is treated as 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when full.
func (r *Ring[T]) Push(v T) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of entries held.
func (r *Ring[T]) Len() int {
	return r.size
}

// Snapshot returns a copy of the entries, oldest first.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Tail returns a copy of the last n entries, oldest first.
func (r *Ring[T]) Tail(n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > r.size {
		n = r.size
	}
	out := make([]T, n)
	offset := r.size - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(r.start+offset+i)%len(r.buf)]
	}
	return out
}

// Reset removes all entries.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start = 0
	r.size = 0
}
