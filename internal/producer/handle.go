// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package producer

import (
	"context"
)

// Handle is a running producer owned by one session.
type Handle interface {
	// IsAlive reports whether the producer is still running.
	IsAlive() bool

	// Terminate stops the producer and waits for it to exit. It is safe
	// to call on an exited producer.
	Terminate() error

	// Done is closed when the producer exits.
	Done() <-chan struct{}

	// Err returns the exit error once Done is closed.
	Err() error
}

// Launcher starts producers for sessions.
type Launcher interface {
	// Launch starts a producer tagged with sessionID. The producer is not
	// bound to ctx's cancellation.
	Launch(ctx context.Context, sessionID string) (Handle, error)

	// Kind names the launcher for logs and metrics.
	Kind() string
}

// exitState tracks a producer's exit.
type exitState struct {
	done chan struct{}
	err  error
}

func newExitState() *exitState {
	return &exitState{done: make(chan struct{})}
}

func (s *exitState) finish(err error) {
	s.err = err
	close(s.done)
}

func (s *exitState) IsAlive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *exitState) Done() <-chan struct{} {
	return s.done
}

func (s *exitState) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}
