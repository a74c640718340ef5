// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"fmt"

	"go.kubeldap.dev/internal/plog"
)

// Handle owns the single directory connection shared by all requests.
//
// The bind state of an LDAP connection is global to the connection, so a caller gets exclusive use
// of it for one whole operation. Callers waiting for their turn give up when their context is done.
// The connection is dialed on first use and dialed again after it was closed, e.g. by a network
// error. A failed operation is never repeated.
//
// The turn is held while dialing, binding and reading a whole search result, so a slow directory
// serializes every request behind the one in progress, each bounded by the connection timeout.
type Handle struct {
	dialer     Dialer
	requireTLS bool

	turn chan struct{}

	// only accessed while holding turn
	conn   Conn
	secure bool
}

// NewHandle returns a Handle which dials lazily. When requireTLS is false, connections without TLS
// are treated as secure.
func NewHandle(dialer Dialer, requireTLS bool) *Handle {
	return &Handle{
		dialer:     dialer,
		requireTLS: requireTLS,
		turn:       make(chan struct{}, 1),
	}
}

// acquire waits for exclusive use of the connection. The returned release func must be called
// exactly once.
func (h *Handle) acquire(ctx context.Context) (Conn, bool, func(), error) {
	select {
	case h.turn <- struct{}{}:
	case <-ctx.Done():
		return nil, false, nil, ctx.Err()
	}
	release := func() { <-h.turn }

	if h.conn == nil || h.conn.IsClosing() {
		if h.conn != nil {
			plog.Debug("directory connection was closed, dialing again")
			if err := h.conn.Close(); err != nil {
				plog.DebugErr("could not close stale directory connection", err)
			}
			h.conn = nil
		}

		conn, err := h.dialer.Dial(ctx)
		if err != nil {
			release()
			return nil, false, nil, fmt.Errorf("error dialing directory: %w", err)
		}

		_, isTLS := conn.TLSConnectionState()
		h.conn = conn
		h.secure = isTLS || !h.requireTLS
		plog.Debug("dialed directory", "tls", isTLS, "requireTLS", h.requireTLS)
	}

	return h.conn, h.secure, release, nil
}

// Close closes the current connection, if any, after in-flight operations have finished.
func (h *Handle) Close(ctx context.Context) error {
	select {
	case h.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-h.turn }()

	if h.conn == nil {
		return nil
	}
	err := h.conn.Close()
	h.conn = nil
	if err != nil {
		return fmt.Errorf("error closing directory connection: %w", err)
	}
	return nil
}
