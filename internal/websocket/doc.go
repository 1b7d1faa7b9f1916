// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package websocket pushes live session views to browsers over gorilla/websocket.

Each Client follows one viewer session. The Hub ticks every refresh period,
reads the view of every connected session once, and queues it to that
session's clients. A client receives a view on connect and then only when
its view changed.

Messages are JSON:

	{"type": "view", "data": {"session_id": "...", "commentary": [...], "telemetry": [...], "columns": [...]}}
	{"type": "pong"}

Clients may send {"type": "ping"} and get a pong back.

The Hub implements suture.Service and closes every client on shutdown.
*/
package websocket
