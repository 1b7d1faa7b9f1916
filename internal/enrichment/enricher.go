// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
)

// Enricher builds enriched records from raw telemetry.
type Enricher struct {
	gen Generator
}

// NewEnricher creates an Enricher backed by gen.
func NewEnricher(gen Generator) *Enricher {
	return &Enricher{gen: gen}
}

// Enrich generates all commentary variants for raw. Any generator failure
// fails the whole record.
func (e *Enricher) Enrich(ctx context.Context, raw *models.RawTelemetry) (*models.EnrichedRecord, error) {
	prompts, err := BuildPrompts(raw.TelemetryRow)
	if err != nil {
		return nil, err
	}

	variants := make([]models.CommentaryVariant, 0, len(prompts))
	for _, p := range prompts {
		start := time.Now()
		text, err := e.gen.Generate(ctx, Request{
			Language: p.Language,
			Style:    p.Style,
			Prompt:   p.Text,
			Row:      raw.TelemetryRow,
		})
		metrics.RecordGeneration(time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("generate %s/%s commentary: %w", p.Language, p.Style, err)
		}

		variants = append(variants, models.CommentaryVariant{
			Language: p.Language,
			Style:    p.Style,
			Text:     fmt.Sprintf("(%s) %s", raw.Time, text),
			Prompt:   p.Text,
		})
	}

	return &models.EnrichedRecord{
		SessionID: raw.SessionID,
		Row:       raw.TelemetryRow,
		Variants:  variants,
	}, nil
}
