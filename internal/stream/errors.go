// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import "errors"

var (
	// ErrExpiredPosition is returned by Poll when a position token is no
	// longer valid. Callers reopen at latest and retry.
	ErrExpiredPosition = errors.New("stream position expired")

	// ErrSourceClosed is returned by operations on a closed source.
	ErrSourceClosed = errors.New("stream source closed")

	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher closed")
)
