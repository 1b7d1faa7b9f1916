// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package services

import (
	"context"
	"fmt"
	"time"
)

// PipelineRunner is a component with a Start/Shutdown lifecycle.
// Satisfied by *enrichment.Pipeline.
type PipelineRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	IsRunning() bool
}

// PipelineService runs a PipelineRunner under suture:
//  1. Start(ctx) begins processing
//  2. Serve blocks until ctx is canceled
//  3. Shutdown runs with its own timeout
//
// A Start failure is returned so suture restarts the service with backoff.
type PipelineService struct {
	runner          PipelineRunner
	shutdownTimeout time.Duration
	name            string
}

// NewPipelineService wraps runner. A non-positive timeout means 10s.
func NewPipelineService(runner PipelineRunner, shutdownTimeout time.Duration) *PipelineService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &PipelineService{
		runner:          runner,
		shutdownTimeout: shutdownTimeout,
		name:            "enrichment-pipeline",
	}
}

// Serve implements suture.Service.
func (s *PipelineService) Serve(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil {
		return fmt.Errorf("pipeline start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.runner.Shutdown(shutdownCtx)

	return ctx.Err()
}

// String implements fmt.Stringer for suture logging.
func (s *PipelineService) String() string {
	return s.name
}
