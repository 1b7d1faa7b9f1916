// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package main is the telemetry simulator: it replays a play-by-play
// dataset for one session onto the raw telemetry subject of a NATS
// JetStream broker. The server launches one simulator per session when
// PRODUCER_MODE=process.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/producer"
	"github.com/tomtom215/sideline/internal/stream"
)

type options struct {
	sessionID string
	dataset   string
	natsURL   string
	subject   string
	interval  time.Duration
	duration  time.Duration
	logLevel  string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = opts.logLevel
	logCfg.Output = os.Stderr
	logging.Init(logCfg)

	dataset, err := producer.LoadDataset(opts.dataset)
	if err != nil {
		return err
	}

	publisher, err := stream.NewPublisher(stream.DefaultPublisherConfig(opts.natsURL), logging.NewWatermillLogger("simulator"))
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing publisher")
		}
	}()
	publisher.SetCircuitBreaker(stream.NewCircuitBreaker(stream.DefaultBreakerConfig("simulator-publisher")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	emitter := producer.Emitter{
		Publisher: publisher,
		Topic:     opts.subject,
		Dataset:   dataset,
		Interval:  opts.interval,
		Duration:  opts.duration,
	}

	logging.Info().
		Str("session_id", logging.SanitizeSessionID(opts.sessionID)).
		Int("rows", dataset.Len()).
		Dur("interval", opts.interval).
		Msg("Simulator started")

	return emitter.Run(ctx, opts.sessionID)
}

func parseFlags(args []string) (options, error) {
	var opts options

	flagSet := pflag.NewFlagSet("sideline-simulator", pflag.ContinueOnError)
	flagSet.StringVar(&opts.sessionID, "session-id", "", "session the telemetry is addressed to (required)")
	flagSet.StringVar(&opts.dataset, "dataset", "", "play-by-play CSV file (default: built-in game)")
	flagSet.StringVar(&opts.natsURL, "nats-url", "nats://127.0.0.1:4222", "NATS server URL")
	flagSet.StringVar(&opts.subject, "subject", "telemetry.raw", "raw telemetry subject")
	flagSet.DurationVar(&opts.interval, "interval", 15*time.Second, "delay between two plays")
	flagSet.DurationVar(&opts.duration, "duration", 5*time.Minute, "how long to emit before exiting")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level")

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.sessionID == "" {
		return opts, errors.New("--session-id is required")
	}
	if opts.interval <= 0 {
		return opts, errors.New("--interval must be positive")
	}
	return opts, nil
}
