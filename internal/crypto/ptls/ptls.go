// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ptls holds the TLS profiles used for serving HTTPS and for dialing the directory.
package ptls

import (
	"crypto/tls"
	"crypto/x509"

	"go.kubeldap.dev/internal/constable"
)

const errNoCertificatesInBundle = constable.Error("could not parse any PEM certificates from CA bundle")

// Default is the profile for HTTPS serving. rootCAs may be nil to use the host's root CA set.
func Default(rootCAs *x509.CertPool) *tls.Config {
	return &tls.Config{
		// TLS 1.0 and 1.1 are vulnerable to POODLE and BEAST and use weak ciphers.
		MinVersion: tls.VersionTLS12,

		// only AEADs with ECDHE, ignored when TLS 1.3 is negotiated
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256, tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384, tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305, tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
		},

		NextProtos: []string{"h2", "http/1.1"},

		RootCAs: rootCAs,
	}
}

// DefaultLDAP is the profile for directory connections. It additionally allows the ECDHE CBC
// suites which some Active Directory deployments still require.
func DefaultLDAP(rootCAs *x509.CertPool) *tls.Config {
	c := Default(rootCAs)
	c.NextProtos = nil // LDAP does not use ALPN
	c.CipherSuites = append(c.CipherSuites,
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA, tls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA, tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	)
	return c
}

// RootCAs parses a PEM bundle. An empty bundle returns nil, meaning the host's root CA set.
func RootCAs(pemBundle []byte) (*x509.CertPool, error) {
	if len(pemBundle) == 0 {
		return nil, nil
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBundle) {
		return nil, errNoCertificatesInBundle
	}
	return pool, nil
}
