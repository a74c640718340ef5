// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package auditid tags every request with a unique ID which is sent back to the client and
// attached to the log lines of the request.
package auditid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderAuditID is the response header carrying the ID, named like the one of the Kubernetes API server.
const HeaderAuditID = "Audit-ID"

type contextKey struct{}

// NewRequestWithAuditID is public for use in unit tests. Production code should use WithAuditID().
func NewRequestWithAuditID(r *http.Request, newAuditIDFunc func() string) (*http.Request, string) {
	auditID := newAuditIDFunc()
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, auditID)), auditID
}

// FromContext returns the audit ID of the request, or the empty string.
func FromContext(ctx context.Context) string {
	auditID, _ := ctx.Value(contextKey{}).(string)
	return auditID
}

func WithAuditID(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Add a randomly generated request ID to the context for this request.
		r, auditID := NewRequestWithAuditID(r, func() string {
			return uuid.New().String()
		})

		// Send the Audit-ID response header.
		w.Header().Set(HeaderAuditID, auditID)

		handler.ServeHTTP(w, r)
	})
}
