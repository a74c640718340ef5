// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package endpoint contains the HTTP handlers of the server.
package endpoint

import (
	"context"
	"net/http"

	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/httputil/httperr"
	"go.kubeldap.dev/internal/identity"
	"go.kubeldap.dev/internal/metrics"
	"go.kubeldap.dev/internal/plog"
)

// DefaultRealm is the realm of the Basic authentication challenge.
const DefaultRealm = "kubernetes"

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
	GetAttributes(ctx context.Context, username string, attributes []string) (*directory.Entry, error)
}

type IdentityMapper interface {
	RequiredAttributes() []string
	ToIdentity(ctx context.Context, entry *directory.Entry) (*identity.Identity, error)
}

type TokenIssuer interface {
	Issue(id *identity.Identity) (string, error)
}

type authHandler struct {
	authenticator Authenticator
	mapper        IdentityMapper
	issuer        TokenIssuer
	realm         string
	recorder      metrics.Recorder
}

// NewAuthHandler returns the handler which exchanges Basic credentials for a signed token.
//
// Responses other than 200 have no body. A wrong password, an unknown user and a directory which
// cannot be reached all result in 401.
func NewAuthHandler(
	authenticator Authenticator,
	mapper IdentityMapper,
	issuer TokenIssuer,
	realm string,
	recorder metrics.Recorder,
) http.Handler {
	if realm == "" {
		realm = DefaultRealm
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	h := &authHandler{
		authenticator: authenticator,
		mapper:        mapper,
		issuer:        issuer,
		realm:         realm,
		recorder:      recorder,
	}
	return httperr.HandlerFunc(h.serve)
}

func (h *authHandler) serve(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		return httperr.Newf(http.StatusMethodNotAllowed, "%s (try GET)", r.Method)
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return httperr.Unauthorized(h.realm)
	}

	username, password, err := ParseBasicAuthHeader(header)
	if err != nil {
		return httperr.Wrap(http.StatusBadRequest, "bad request", err)
	}

	ctx := r.Context()
	ok, err := h.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		h.recorder.RecordAuthentication(metrics.ResultError)
		return httperr.Wrap(http.StatusInternalServerError, "authentication failed", err)
	}
	if !ok {
		h.recorder.RecordAuthentication(metrics.ResultFailure)
		return httperr.Unauthorized(h.realm)
	}

	token, err := h.token(ctx, username)
	if err != nil {
		h.recorder.RecordAuthentication(metrics.ResultError)
		// The cause may name the user, so it is only logged at debug level.
		plog.DebugErr("could not issue token for authenticated user", err)
		return httperr.Status(http.StatusInternalServerError)
	}

	h.recorder.RecordAuthentication(metrics.ResultSuccess)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(token))
	return nil
}

func (h *authHandler) token(ctx context.Context, username string) (string, error) {
	entry, err := h.authenticator.GetAttributes(ctx, username, h.mapper.RequiredAttributes())
	if err != nil {
		return "", err
	}

	id, err := h.mapper.ToIdentity(ctx, entry)
	if err != nil {
		return "", err
	}

	plog.Trace("issuing token", "groupCount", len(id.Groups))
	plog.All("issuing token", "username", id.Username, "groups", id.Groups)
	return h.issuer.Issue(id)
}
