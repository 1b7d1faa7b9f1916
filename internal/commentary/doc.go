// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package commentary picks the commentary variant a session should display.
//
// Matching is exact on both language and style. There is no fallback to a
// default language or style: a record without a matching variant is skipped
// by the caller.
package commentary
