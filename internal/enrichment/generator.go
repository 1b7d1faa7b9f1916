// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"context"

	"github.com/tomtom215/sideline/internal/models"
)

// Request is one commentary generation call.
type Request struct {
	Language models.Language
	Style    models.Style
	Prompt   string
	Row      models.TelemetryRow
}

// Generator produces commentary text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
