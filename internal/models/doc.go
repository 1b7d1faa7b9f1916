// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package models defines the data structures shared across Sideline.

Key Components:

  - TelemetryRow: one play-by-play row with a fixed set of named fields
  - RawTelemetry: a row tagged with its session identity, as published by producers
  - EnrichedRecord: a row plus its commentary variants, as read by session workers
  - CommentaryVariant: one (language, style, text) rendering of a play
  - Preferences: a session's selected language and style
  - APIResponse: the standard HTTP response envelope

Wire Format:

Records are JSON. Field names match the play-by-play dataset columns so the
same payload flows from the CSV through producers and enrichment unchanged:

	{
	  "sess_id": "abc",
	  "row": {"time": "15:00", "play_type": "kickoff", ...},
	  "commentary_objs": [
	    {"language": "English", "style": "NFL", "commentary": "(15:00) ..."}
	  ]
	}

Decoding uses goccy/go-json. DecodeEnrichedRecord and DecodeRawTelemetry
return errors wrapping ErrMalformedRecord for payloads that cannot be used.
*/
package models
