// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package api

import (
	"github.com/tomtom215/sideline/internal/models"
	"github.com/tomtom215/sideline/internal/session"
)

// PreferencesRequest changes one or both display preferences. An omitted
// field keeps its current value.
type PreferencesRequest struct {
	Language *string `json:"language,omitempty" validate:"omitempty,language"`
	Style    *string `json:"style,omitempty" validate:"omitempty,style"`
}

// Empty reports whether the request changes nothing.
func (p *PreferencesRequest) Empty() bool {
	return p.Language == nil && p.Style == nil
}

// Update converts a validated request to a session update.
func (p *PreferencesRequest) Update() session.PreferencesUpdate {
	var update session.PreferencesUpdate
	if p.Language != nil {
		l := models.Language(*p.Language)
		update.Language = &l
	}
	if p.Style != nil {
		s := models.Style(*p.Style)
		update.Style = &s
	}
	return update
}
