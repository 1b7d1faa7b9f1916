// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package session owns per-viewer commentary sessions.

A session is identified by an opaque identity string taken from the
viewer's cookie. Each session has:

  - State: display preferences plus two bounded, jointly appended logs
    (commentary lines and telemetry rows)
  - Worker: a suture service that tails the commentary stream through a
    stream.Cursor and appends the variant matching the current preferences
  - a producer handle that feeds raw telemetry for the session

The Registry maps identities to State and is owned by the Controller,
which implements the start, stop and preference lifecycle:

	registry := session.NewRegistry(cfg.Session.MaxLines)
	ctrl, err := session.NewController(registry, source, launcher, supervisor, session.Config{
	    PollInterval: 2 * time.Second,
	    PollLimit:    1,
	    StopTimeout:  5 * time.Second,
	})
	st, err := ctrl.StartSession(ctx, "viewer-token")
	view := ctrl.ReadView("viewer-token")

Workers run under a suture supervisor. A worker that hits a fatal stream
error records it and returns suture.ErrDoNotRestart; the next StartSession
for that identity launches a replacement.
*/
package session
