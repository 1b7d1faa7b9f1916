// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

/*
Package producer launches the per-session telemetry producers.

A producer publishes one telemetry row per emit interval, tagged with its
session ID, onto the raw telemetry topic, and exits on its own after the
run duration or when the dataset is exhausted. The session controller only
sees a Handle:

	h, err := launcher.Launch(ctx, sessionID)
	...
	if !h.IsAlive() {
		// crashed or finished; relaunch on next start
	}
	_ = h.Terminate()

Two launchers are provided. InProcessLauncher runs an Emitter on a
goroutine. ProcessLauncher starts the sideline-simulator binary as a child
process, which runs the same Emitter against NATS.
*/
package producer
