// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package models

import (
	"fmt"
)

// Language is a commentary language.
type Language string

// Supported languages.
const (
	English Language = "English"
	Spanish Language = "Spanish"
	German  Language = "German"
)

// Style is a commentary style.
type Style string

// Supported styles.
const (
	StyleNFL     Style = "NFL"
	StyleTweeter Style = "tweeter"
	StylePoetic  Style = "poetic"
)

// AnonymousSession is the identity used when a request carries no identity cookie.
const AnonymousSession = "anonymous"

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{English, Spanish, German}
}

// Styles returns all supported styles.
func Styles() []Style {
	return []Style{StyleNFL, StyleTweeter, StylePoetic}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case English, Spanish, German:
		return true
	}
	return false
}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	switch s {
	case StyleNFL, StyleTweeter, StylePoetic:
		return true
	}
	return false
}

// Preferences selects which commentary variant a session displays.
type Preferences struct {
	Language Language `json:"language"`
	Style    Style    `json:"style"`
}

// DefaultPreferences returns English NFL commentary.
func DefaultPreferences() Preferences {
	return Preferences{Language: English, Style: StyleNFL}
}

// Validate checks that both fields are supported values.
func (p Preferences) Validate() error {
	if !p.Language.Valid() {
		return fmt.Errorf("unsupported language %q", p.Language)
	}
	if !p.Style.Valid() {
		return fmt.Errorf("unsupported style %q", p.Style)
	}
	return nil
}
