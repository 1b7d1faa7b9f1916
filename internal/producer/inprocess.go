// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package producer

import (
	"context"

	"github.com/tomtom215/sideline/internal/logging"
)

// InProcessLauncher runs producers as goroutines.
type InProcessLauncher struct {
	emitter Emitter
}

// NewInProcessLauncher creates a launcher that runs emitter per session.
func NewInProcessLauncher(emitter Emitter) (*InProcessLauncher, error) {
	if err := emitter.Validate(); err != nil {
		return nil, err
	}
	return &InProcessLauncher{emitter: emitter}, nil
}

// Kind implements Launcher.
func (l *InProcessLauncher) Kind() string {
	return "inprocess"
}

// Launch implements Launcher.
func (l *InProcessLauncher) Launch(ctx context.Context, sessionID string) (Handle, error) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := &goroutineHandle{exitState: newExitState(), cancel: cancel}

	emitter := l.emitter
	go func() {
		err := emitter.Run(runCtx, sessionID)
		if err != nil {
			logging.Error().Err(err).
				Str("session_id", logging.SanitizeSessionID(sessionID)).
				Msg("In-process producer failed")
		}
		h.finish(err)
	}()

	return h, nil
}

type goroutineHandle struct {
	*exitState
	cancel context.CancelFunc
}

// Terminate implements Handle.
func (h *goroutineHandle) Terminate() error {
	h.cancel()
	<-h.done
	return nil
}
