// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
)

// Emitter publishes a dataset row by row for one session.
type Emitter struct {
	Publisher message.Publisher
	Topic     string
	Dataset   *Dataset
	Interval  time.Duration
	Duration  time.Duration
}

// Validate checks that the emitter can run.
func (e *Emitter) Validate() error {
	switch {
	case e.Publisher == nil:
		return errors.New("emitter publisher required")
	case e.Topic == "":
		return errors.New("emitter topic required")
	case e.Dataset == nil || e.Dataset.Len() == 0:
		return ErrEmptyDataset
	case e.Interval <= 0:
		return errors.New("emit interval must be positive")
	}
	return nil
}

// Run publishes the first row immediately and one more per interval until
// the run duration elapses, the dataset is exhausted, or ctx is canceled.
// Cancellation is a clean exit.
func (e *Emitter) Run(ctx context.Context, sessionID string) error {
	if err := e.Validate(); err != nil {
		return err
	}

	logger := logging.Ctx(logging.ContextWithSessionID(ctx, sessionID))
	if e.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Duration)
		defer cancel()
	}

	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	for i := 0; i < e.Dataset.Len(); i++ {
		raw := models.RawTelemetry{SessionID: sessionID, TelemetryRow: e.Dataset.Row(i)}
		data, err := raw.Encode()
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}

		msg := message.NewMessage(uuid.NewString(), data)
		if err := e.Publisher.Publish(e.Topic, msg); err != nil {
			return fmt.Errorf("publish row %d: %w", i, err)
		}
		metrics.RecordProducerRow()
		logger.Debug().Int("row", i).Str("play_type", raw.PlayType).Msg("Telemetry row published")

		if i == e.Dataset.Len()-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
