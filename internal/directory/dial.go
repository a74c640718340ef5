// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/go-ldap/ldap/v3"

	"go.kubeldap.dev/internal/crypto/ptls"
	"go.kubeldap.dev/internal/plog"
)

const (
	defaultLDAPPort  = uint16(389)
	defaultLDAPSPort = uint16(636)
	defaultTimeout   = 30 * time.Second
)

// Conn abstracts the LDAP connection (mostly for testing).
type Conn interface {
	Bind(username, password string) error

	SearchAsync(ctx context.Context, searchRequest *ldap.SearchRequest, bufferSize int) ldap.Response

	TLSConnectionState() (tls.ConnectionState, bool)

	IsClosing() bool

	Close() error
}

// Our Conn type is subset of the ldap.Client interface, which is implemented by ldap.Conn.
var _ Conn = &ldap.Conn{}

// Dialer is a factory of Conn.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc makes it easy to use a func as a Dialer.
type DialerFunc func(ctx context.Context) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context) (Conn, error) {
	return f(ctx)
}

// Protocol selects how the transport to the directory is established.
type Protocol string

const (
	// TLS dials ldaps, port 636 by default.
	TLS Protocol = "TLS"
	// StartTLS dials ldap and upgrades the connection before any other operation, port 389 by default.
	StartTLS Protocol = "StartTLS"
	// Plain dials ldap without TLS, port 389 by default.
	Plain Protocol = "Plain"
)

type DialConfig struct {
	// Host is the hostname or "hostname:port" of the LDAP server.
	Host string

	Protocol Protocol

	// PEM-encoded CA bundle to trust. Empty means the host's root CA set.
	CABundle []byte

	// Timeout bounds connecting and every operation on the connection. Zero means 30s.
	Timeout time.Duration
}

type dialer struct {
	addr      hostPort
	protocol  Protocol
	tlsConfig *tls.Config
	timeout   time.Duration
}

// NewDialer validates the configuration and returns the production Dialer.
func NewDialer(c DialConfig) (Dialer, error) {
	defaultPort := defaultLDAPPort
	switch c.Protocol {
	case TLS:
		defaultPort = defaultLDAPSPort
	case StartTLS, Plain:
	default:
		return nil, fmt.Errorf("unknown connection protocol %q", c.Protocol)
	}

	addr, err := parseHostPort(c.Host, defaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", c.Host, err)
	}

	rootCAs, err := ptls.RootCAs(c.CABundle)
	if err != nil {
		return nil, err
	}
	tlsConfig := ptls.DefaultLDAP(rootCAs)
	tlsConfig.ServerName = addr.host

	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &dialer{addr: addr, protocol: c.Protocol, tlsConfig: tlsConfig, timeout: timeout}, nil
}

// Dial connects to the directory. Unfortunately, the go-ldap library does not support dialing with
// a context.Context, so we implement it ourselves, heavily inspired by ldap.DialURL.
func (d *dialer) Dial(ctx context.Context) (Conn, error) {
	netDialer := &net.Dialer{Timeout: d.timeout}

	var (
		c     net.Conn
		isTLS bool
		err   error
	)
	if d.protocol == TLS {
		tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: d.tlsConfig.Clone()}
		c, err = tlsDialer.DialContext(ctx, "tcp", d.addr.endpoint())
		isTLS = true
	} else {
		c, err = netDialer.DialContext(ctx, "tcp", d.addr.endpoint())
	}
	if err != nil {
		return nil, ldap.NewError(ldap.ErrorNetwork, err)
	}

	conn := ldap.NewConn(c, isTLS)
	conn.SetTimeout(d.timeout)
	conn.Start()

	if d.protocol == StartTLS {
		if err := conn.StartTLS(d.tlsConfig.Clone()); err != nil {
			if closeErr := conn.Close(); closeErr != nil {
				plog.DebugErr("could not close connection after failed StartTLS", closeErr)
			}
			return nil, err
		}
	}

	return conn, nil
}
