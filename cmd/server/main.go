// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package main is the entry point of the Sideline commentary server.
//
// Sideline streams live play-by-play commentary to browser sessions. Each
// session gets its own telemetry producer, and a per-session stream worker
// reads the shared commentary stream, keeps the records addressed to its
// session and appends the variant matching the viewer's language and style
// to the session's display logs.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config file, environment (Koanf v2)
//  2. Stream backend: embedded or external NATS JetStream, or in-memory
//  3. Producer launcher: in-process emitters or simulator child processes
//  4. Enrichment pipeline: Watermill router turning raw rows into commentary
//  5. Session controller: registry plus lifecycle over the supervisor tree
//  6. HTTP server: REST API, websocket view updates and Prometheus metrics
//
// # Signal Handling
//
// On SIGINT or SIGTERM every session is stopped (producers terminated,
// workers drained), then the supervisor tree and the stream backend shut
// down.
//
// # Example Usage
//
//	STREAM_BACKEND=memory ./sideline
//
//	NATS_EMBEDDED=true PRODUCER_MODE=process \
//	PRODUCER_COMMAND=sideline-simulator ./sideline
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/sideline/internal/api"
	"github.com/tomtom215/sideline/internal/config"
	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/session"
	"github.com/tomtom215/sideline/internal/supervisor"
	"github.com/tomtom215/sideline/internal/supervisor/services"
	ws "github.com/tomtom215/sideline/internal/websocket"
)

// shutdownTimeout bounds session teardown and backend close.
const shutdownTimeout = 30 * time.Second

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLoggingConfig())

	logging.Info().
		Str("stream_backend", cfg.Stream.Backend).
		Str("producer_mode", cfg.Producer.Mode).
		Bool("enrichment", cfg.Enrichment.Enabled).
		Msg("Starting Sideline with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	comps, err := InitStream(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize stream backend")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := comps.Close(ctx); err != nil {
			logging.Error().Err(err).Msg("Error closing stream backend")
		}
	}()

	launcher, err := InitLauncher(cfg, comps.RawPublisher, comps.BrokerURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize producer launcher")
	}

	pipeline, err := InitPipeline(cfg, comps)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize enrichment pipeline")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	controller, err := session.NewController(
		session.NewRegistry(cfg.Session.MaxLines),
		comps.Source,
		launcher,
		tree.SessionHost(),
		session.Config{
			PollInterval: cfg.Session.PollInterval,
			PollLimit:    cfg.Session.PollLimit,
			StopTimeout:  cfg.Session.StopTimeout,
		},
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session controller")
	}

	if pipeline != nil {
		tree.AddStreamService(services.NewPipelineService(pipeline, cfg.Enrichment.CloseTimeout))
		logging.Info().Msg("Enrichment pipeline added to supervisor tree")
	}

	wsHub := ws.NewHub(controller, cfg.Server.ViewRefresh)
	tree.AddAPIService(wsHub)

	handlerOpts := []api.HandlerOption{
		api.WithHub(wsHub),
		api.WithAllowedOrigins(cfg.Server.CORSOrigins),
		api.WithReadinessCheck("stream", comps.Health),
	}
	if pipeline != nil {
		handlerOpts = append(handlerOpts, api.WithReadinessCheck("enrichment", func(context.Context) error {
			if !pipeline.IsRunning() {
				return errors.New("enrichment pipeline is not running")
			}
			return nil
		}))
	}

	router := api.NewRouter(
		api.NewHandler(controller, handlerOpts...),
		api.NewChiMiddlewareFromServer(
			cfg.Server.CORSOrigins,
			cfg.Server.RateLimitReqs,
			cfg.Server.RateLimitWindow,
			cfg.Server.RateLimitDisabled,
		),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	treeCtx, cancelTree := context.WithCancel(context.Background())
	defer cancelTree()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(treeCtx)

	treeDone := false
	select {
	case <-sigCtx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		treeDone = true
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Sessions go first so producers are terminated while the session
	// layer can still remove their workers.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := controller.Shutdown(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("Sessions did not stop cleanly")
	}

	cancelTree()
	if !treeDone {
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}
