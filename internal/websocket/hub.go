// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/metrics"
	"github.com/tomtom215/sideline/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeView = "view"
	MessageTypePing = "ping"
	MessageTypePong = "pong"
)

// DefaultRefresh is the view push period when none is configured.
const DefaultRefresh = 3 * time.Second

// Message represents a WebSocket message
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ViewSource provides session display snapshots.
// Satisfied by *session.Controller.
type ViewSource interface {
	ReadView(id string) models.SessionView
}

// Hub tracks connected clients and pushes each one its session's view on
// every refresh tick. Unchanged views are not resent.
type Hub struct {
	views   ViewSource
	refresh time.Duration

	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	done     chan struct{}
	doneOnce sync.Once
}

// NewHub creates a hub that reads views from views every refresh.
func NewHub(views ViewSource, refresh time.Duration) *Hub {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &Hub{
		views:      views,
		refresh:    refresh,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Done is closed once the hub has shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

// String implements fmt.Stringer for suture logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

// RunWithContext runs the hub until ctx is canceled, then closes every
// client. Lifecycle events are handled before ticks so a new client is
// registered before the next push.
func (h *Hub) RunWithContext(ctx context.Context) error {
	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case <-ticker.C:
			h.pushViews()
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	logging.Info().
		Str("session_id", logging.SanitizeSessionID(client.sessionID)).
		Int("total_clients", total).
		Msg("websocket client connected")

	if payload, err := h.encodeView(client.sessionID); err == nil {
		client.push(payload)
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Dec()
		logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
	}
}

// pushViews reads each connected session's view once and offers it to
// that session's clients in client ID order.
func (h *Hub) pushViews() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	payloads := make(map[string][]byte)
	for _, c := range clients {
		payload, ok := payloads[c.sessionID]
		if !ok {
			var err error
			payload, err = h.encodeView(c.sessionID)
			if err != nil {
				logging.Error().Err(err).Msg("failed to encode session view")
				continue
			}
			payloads[c.sessionID] = payload
		}
		c.push(payload)
	}
}

func (h *Hub) encodeView(sessionID string) ([]byte, error) {
	view := h.views.ReadView(sessionID)
	data, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	h.mu.RLock()
	count := len(h.clients)
	h.mu.RUnlock()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients", count).
		Msg("websocket hub shutting down")

	h.closeAllClients()
	h.doneOnce.Do(func() { close(h.done) })
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
