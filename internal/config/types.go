// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"go.kubeldap.dev/internal/plog"
)

// Config contains knobs to setup an instance of kube-ldap.
type Config struct {
	Log     plog.LogSpec `json:"log"`
	Server  ServerSpec   `json:"server"`
	LDAP    LDAPSpec     `json:"ldap"`
	Mapping MappingSpec  `json:"mapping"`
	Token   TokenSpec    `json:"token"`
	Metrics MetricsSpec  `json:"metrics"`
}

// ServerSpec configures the HTTP listener.
type ServerSpec struct {
	// Address to listen on, ":8443" by default.
	Address string `json:"address,omitempty"`
	// TLSCertificateFile and TLSKeyFile enable HTTPS. Both or neither must be set.
	TLSCertificateFile string `json:"tlsCertificateFile,omitempty"`
	TLSKeyFile         string `json:"tlsKeyFile,omitempty"`
	// CACertificateFile is served on /cacert.
	CACertificateFile string `json:"caCertificateFile,omitempty"`
	// Realm of the Basic authentication challenge, "kubernetes" by default.
	Realm string `json:"realm,omitempty"`
	// ShutdownTimeout bounds the graceful shutdown, 30s by default.
	ShutdownTimeout *metav1.Duration `json:"shutdownTimeout,omitempty"`
}

// LDAPSpec configures the directory connection and the user search.
type LDAPSpec struct {
	// Host is "hostname" or "hostname:port".
	Host string `json:"host"`
	// Protocol is one of TLS (default), StartTLS or Plain.
	Protocol string `json:"protocol,omitempty"`
	// CABundleFile is a PEM bundle of CAs trusted for the directory. Empty means the system roots.
	CABundleFile string `json:"caBundleFile,omitempty"`
	// RequireTLS refuses to bind or search over connections without TLS, true by default.
	RequireTLS *bool `json:"requireTLS,omitempty"`
	// Timeout bounds connecting and each request to the directory, 30s by default.
	Timeout *metav1.Duration `json:"timeout,omitempty"`

	BaseDN string `json:"baseDN"`
	BindDN string `json:"bindDN,omitempty"`
	// BindPasswordFile is read once at startup. Trailing newlines are removed.
	BindPasswordFile string `json:"bindPasswordFile,omitempty"`

	// UserFilter locates a user, "%s" is replaced by the escaped username.
	UserFilter string `json:"userFilter,omitempty"`

	NestedGroups NestedGroupsSpec `json:"nestedGroups,omitempty"`
}

type NestedGroupsSpec struct {
	Enabled bool `json:"enabled,omitempty"`
	// Filter of the membership query, "%s" is replaced by the escaped user DN.
	Filter string `json:"filter,omitempty"`
}

// MappingSpec names the directory attributes of the Kubernetes identity.
type MappingSpec struct {
	Username string   `json:"username,omitempty"`
	UID      string   `json:"uid,omitempty"`
	Groups   string   `json:"groups,omitempty"`
	Extra    []string `json:"extra,omitempty"`
}

type TokenSpec struct {
	// SigningKeyFile holds a PEM private key or an HMAC secret of at least 32 bytes.
	SigningKeyFile string `json:"signingKeyFile"`
	// Lifetime of issued tokens, 12h by default.
	Lifetime *metav1.Duration `json:"lifetime,omitempty"`
}

type MetricsSpec struct {
	Enabled bool `json:"enabled,omitempty"`
}
