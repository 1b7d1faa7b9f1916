// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package session

import (
	"sort"
	"sync"
)

// Registry maps session identities to their State.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*State
	maxLines int
}

// NewRegistry creates an empty registry whose sessions keep maxLines
// entries per log.
func NewRegistry(maxLines int) *Registry {
	return &Registry{
		sessions: make(map[string]*State),
		maxLines: maxLines,
	}
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.sessions[id]
	return st, ok
}

// GetOrCreate returns the session for id, creating it with default
// preferences if absent.
func (r *Registry) GetOrCreate(id string) *State {
	if st, ok := r.Get(id); ok {
		return st
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.sessions[id]; ok {
		return st
	}
	st := NewState(id, r.maxLines)
	r.sessions[id] = st
	return st
}

// Put stores st under its identity, replacing any existing session.
func (r *Registry) Put(st *State) {
	r.mu.Lock()
	r.sessions[st.ID()] = st
	r.mu.Unlock()
}

// Remove deletes the session for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns all identities in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
