// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

// Package services adapts Sideline components to suture.Service.
//
//   - HTTPServerService wraps an *http.Server
//   - PipelineService wraps a Start/Shutdown component such as the
//     enrichment pipeline
//
// Each wrapper implements String() so suture can name it in logs.
package services
