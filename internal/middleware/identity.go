// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package middleware

import (
	"context"
	"net/http"

	"github.com/tomtom215/sideline/internal/logging"
	"github.com/tomtom215/sideline/internal/models"
)

// Identity cookies, in lookup order.
const (
	SecureIdentityCookie   = "access-token"
	UnsecureIdentityCookie = "access-token-unsecure"
)

type identityKey struct{}

// ResolveSessionID returns the session identity carried by r's cookies, or
// models.AnonymousSession when neither identity cookie is set.
func ResolveSessionID(r *http.Request) string {
	for _, name := range []string{SecureIdentityCookie, UnsecureIdentityCookie} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return models.AnonymousSession
}

// SessionIdentity stores the resolved session identity in the request
// context, for both handlers and the logging context.
func SessionIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ResolveSessionID(r)
		ctx := context.WithValue(r.Context(), identityKey{}, id)
		ctx = logging.ContextWithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext returns the identity stored by SessionIdentity.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(identityKey{}).(string); ok {
		return id
	}
	return models.AnonymousSession
}
