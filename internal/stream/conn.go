// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// natsOptions builds reconnecting connection options that report through logger.
func natsOptions(cfg ConnConfig, logger watermill.LoggerAdapter) []natsgo.Option {
	opts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}
	if cfg.ReconnectBuffer > 0 {
		opts = append(opts, natsgo.ReconnectBufSize(cfg.ReconnectBuffer))
	}
	return opts
}

// Connect opens a NATS connection and a JetStream context.
func Connect(cfg ConnConfig, logger watermill.LoggerAdapter) (*natsgo.Conn, jetstream.JetStream, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	nc, err := natsgo.Connect(cfg.URL, natsOptions(cfg, logger)...)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}
	return nc, js, nil
}
