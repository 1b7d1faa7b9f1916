// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package producer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/tomtom215/sideline/internal/logging"
)

// ProcessLauncher runs producers as child processes. Each process gets
// Args followed by --session-id <id>.
type ProcessLauncher struct {
	Command string
	Args    []string
}

// NewProcessLauncher creates a launcher for command. The command is
// resolved on PATH now so a bad configuration fails at startup.
func NewProcessLauncher(command string, args []string) (*ProcessLauncher, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("resolve producer command: %w", err)
	}
	return &ProcessLauncher{Command: path, Args: args}, nil
}

// Kind implements Launcher.
func (l *ProcessLauncher) Kind() string {
	return "process"
}

// Launch implements Launcher.
func (l *ProcessLauncher) Launch(_ context.Context, sessionID string) (Handle, error) {
	args := make([]string, 0, len(l.Args)+2)
	args = append(args, l.Args...)
	args = append(args, "--session-id", sessionID)

	logger := logging.WithComponent("producer").With().
		Str("session_id", logging.SanitizeSessionID(sessionID)).Logger()

	cmd := exec.Command(l.Command, args...)
	cmd.Stdout = logger
	cmd.Stderr = logger

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start producer process: %w", err)
	}

	h := &processHandle{exitState: newExitState(), cmd: cmd}
	go func() {
		err := cmd.Wait()
		h.mu.Lock()
		killed := h.killed
		h.mu.Unlock()
		if killed {
			err = nil
		}
		if err != nil {
			logger.Warn().Err(err).Int("pid", cmd.Process.Pid).Msg("Producer process exited")
		} else {
			logger.Debug().Int("pid", cmd.Process.Pid).Msg("Producer process exited")
		}
		h.finish(err)
	}()

	return h, nil
}

type processHandle struct {
	*exitState
	cmd    *exec.Cmd
	mu     sync.Mutex
	killed bool
}

// Terminate implements Handle by killing the process.
func (h *processHandle) Terminate() error {
	if !h.IsAlive() {
		return nil
	}

	h.mu.Lock()
	h.killed = true
	h.mu.Unlock()

	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill producer process: %w", err)
	}
	<-h.done
	return nil
}
