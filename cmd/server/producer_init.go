// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package main

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/sideline/internal/config"
	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/producer"
)

// InitLauncher builds the producer launcher for cfg.Producer.Mode.
func InitLauncher(cfg *config.Config, rawPublisher message.Publisher, brokerURL string) (producer.Launcher, error) {
	if cfg.Producer.Mode == config.ProducerModeProcess {
		launcher, err := producer.NewProcessLauncher(cfg.Producer.Command, simulatorArgs(cfg, brokerURL))
		if err != nil {
			return nil, err
		}
		logging.Info().Str("command", launcher.Command).Msg("Producers run as child processes")
		return launcher, nil
	}

	dataset, err := producer.LoadDataset(cfg.Producer.Dataset)
	if err != nil {
		return nil, err
	}

	launcher, err := producer.NewInProcessLauncher(producer.Emitter{
		Publisher: rawPublisher,
		Topic:     cfg.Stream.TelemetrySubject,
		Dataset:   dataset,
		Interval:  cfg.Producer.EmitInterval,
		Duration:  cfg.Producer.RunDuration,
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("rows", dataset.Len()).
		Dur("interval", cfg.Producer.EmitInterval).
		Msg("Producers run in process")
	return launcher, nil
}

// simulatorArgs passes the producer settings to the simulator binary. The
// launcher appends --session-id.
func simulatorArgs(cfg *config.Config, brokerURL string) []string {
	args := append([]string{}, cfg.Producer.Args...)
	args = append(args,
		"--nats-url", brokerURL,
		"--subject", cfg.Stream.TelemetrySubject,
		"--interval", cfg.Producer.EmitInterval.String(),
		"--duration", cfg.Producer.RunDuration.String(),
	)
	if cfg.Producer.Dataset != "" {
		args = append(args, "--dataset", cfg.Producer.Dataset)
	}
	return args
}
