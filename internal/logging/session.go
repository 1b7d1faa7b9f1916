// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package logging

import (
	"github.com/rs/zerolog"
)

// SessionLogger provides domain-specific logging for one viewer session.
// The identity is masked once at construction.
type SessionLogger struct {
	logger zerolog.Logger
}

// NewSessionLogger creates a logger bound to a component and a session identity.
func NewSessionLogger(component, sessionID string) *SessionLogger {
	return NewSessionLoggerWithLogger(Logger(), component, sessionID)
}

// NewSessionLoggerWithLogger creates a SessionLogger on top of a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSessionLoggerWithLogger(logger zerolog.Logger, component, sessionID string) *SessionLogger {
	return &SessionLogger{
		logger: logger.With().
			Str("component", component).
			Str("session_id", SanitizeSessionID(sessionID)).
			Logger(),
	}
}

// Logger returns the underlying zerolog logger.
func (l *SessionLogger) Logger() *zerolog.Logger {
	return &l.logger
}

// LogWorkerStarted logs that a stream worker began consuming.
func (l *SessionLogger) LogWorkerStarted(pollLimit int) {
	l.logger.Info().Int("poll_limit", pollLimit).Msg("stream worker started")
}

// LogWorkerStopped logs a cooperative worker stop.
func (l *SessionLogger) LogWorkerStopped(appended int64) {
	l.logger.Info().Int64("appended", appended).Msg("stream worker stopped")
}

// LogWorkerFailed logs a fatal stream failure that ends the worker.
func (l *SessionLogger) LogWorkerFailed(err error) {
	l.logger.Error().Err(err).Msg("stream worker failed, not restarting")
}

// LogCursorRenewed logs a transparent cursor reopen after expiry.
func (l *SessionLogger) LogCursorRenewed() {
	l.logger.Debug().Msg("stream position expired, reopened at latest")
}

// LogMalformedRecord logs a record that could not be decoded.
func (l *SessionLogger) LogMalformedRecord(err error) {
	l.logger.Debug().Err(err).Msg("skipping malformed record")
}

// LogNoMatch logs a record without a variant for the current preferences.
func (l *SessionLogger) LogNoMatch(language, style string) {
	l.logger.Debug().Str("language", language).Str("style", style).Msg("no commentary variant for preferences")
}

// LogProducerLaunched logs a producer launch.
func (l *SessionLogger) LogProducerLaunched(kind string, relaunch bool) {
	l.logger.Info().Str("producer", kind).Bool("relaunch", relaunch).Msg("telemetry producer launched")
}

// LogProducerTerminated logs a producer termination requested by a stop.
func (l *SessionLogger) LogProducerTerminated(err error) {
	if err != nil {
		l.logger.Warn().Err(err).Msg("telemetry producer terminate returned error")
		return
	}
	l.logger.Info().Msg("telemetry producer terminated")
}
