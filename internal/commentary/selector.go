// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package commentary

import (
	"errors"

	"github.com/tomtom215/sideline/internal/models"
)

// ErrNoMatch is returned when no variant matches the preferences.
var ErrNoMatch = errors.New("no commentary variant matches preferences")

// Select returns the text of the first variant whose language and style
// both equal prefs.
func Select(rec *models.EnrichedRecord, prefs models.Preferences) (string, error) {
	if rec == nil {
		return "", ErrNoMatch
	}
	for i := range rec.Variants {
		v := &rec.Variants[i]
		if v.Language == prefs.Language && v.Style == prefs.Style {
			return v.Text, nil
		}
	}
	return "", ErrNoMatch
}
